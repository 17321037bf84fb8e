package database

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AutoMaintainRange lists every table the loader reads and writes.
var AutoMaintainRange = []any{
	&UserRecord{},
	&PostRecord{},
	&FollowRecord{},
}

func RunMigration(source *gorm.DB) error {
	for _, model := range AutoMaintainRange {
		if err := source.AutoMigrate(model); err != nil {
			return errors.Wrapf(err, "unable to migrate %T", model)
		}
	}

	log.Info().Int("tables", len(AutoMaintainRange)).Msg("Database auto migration finished...")
	return nil
}
