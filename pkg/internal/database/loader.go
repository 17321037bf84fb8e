package database

import (
	"context"
	"time"

	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"git.solsynth.dev/hypernet/threads/pkg/internal/seed"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func Connect(dsn, prefix string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{TablePrefix: prefix},
		Logger: logger.New(&log.Logger, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to open database")
	}
	return db, nil
}

// Loader reads and writes snapshots from a relational backend.
type Loader struct {
	db *gorm.DB
}

func NewLoader(db *gorm.DB) *Loader {
	return &Loader{db: db}
}

func (v *Loader) Load(ctx context.Context) (seed.Snapshot, error) {
	var snapshot seed.Snapshot
	tx := v.db.WithContext(ctx)

	var users []UserRecord
	if err := tx.Order("id ASC").Find(&users).Error; err != nil {
		return snapshot, errors.Wrap(err, "unable to load users")
	}
	var posts []PostRecord
	if err := tx.Order("id DESC").Find(&posts).Error; err != nil {
		return snapshot, errors.Wrap(err, "unable to load posts")
	}
	var follows []FollowRecord
	if err := tx.Find(&follows).Error; err != nil {
		return snapshot, errors.Wrap(err, "unable to load follows")
	}

	snapshot.Users = lo.Map(users, func(item UserRecord, _ int) models.User {
		return item.ToModel()
	})
	snapshot.Posts = AssemblePosts(posts, lo.SliceToMap(snapshot.Users, func(item models.User) (uint, models.User) {
		return item.ID, item
	}))
	snapshot.Edges = lo.Map(follows, func(item FollowRecord, _ int) models.FollowEdge {
		return item.ToModel()
	})

	log.Info().
		Int("users", len(snapshot.Users)).
		Int("posts", len(snapshot.Posts)).
		Int("edges", len(snapshot.Edges)).
		Msg("Loaded snapshot from database...")
	return snapshot, nil
}

// Import upserts a snapshot in one transaction, used to persist a session or prime a fresh database.
func (v *Loader) Import(ctx context.Context, snapshot seed.Snapshot) error {
	return v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := clause.OnConflict{UpdateAll: true}
		if users := lo.Map(snapshot.Users, func(item models.User, _ int) UserRecord {
			return NewUserRecord(item)
		}); len(users) > 0 {
			if err := tx.Clauses(upsert).CreateInBatches(users, 100).Error; err != nil {
				return errors.Wrap(err, "unable to import users")
			}
		}
		if posts := NewPostRecords(snapshot.Posts); len(posts) > 0 {
			if err := tx.Clauses(upsert).CreateInBatches(posts, 100).Error; err != nil {
				return errors.Wrap(err, "unable to import posts")
			}
		}
		if err := tx.Where("1 = 1").Delete(&FollowRecord{}).Error; err != nil {
			return errors.Wrap(err, "unable to clear follows")
		}
		if follows := lo.Map(snapshot.Edges, func(item models.FollowEdge, _ int) FollowRecord {
			return NewFollowRecord(item)
		}); len(follows) > 0 {
			if err := tx.CreateInBatches(follows, 100).Error; err != nil {
				return errors.Wrap(err, "unable to import follows")
			}
		}
		return nil
	})
}
