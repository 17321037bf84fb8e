package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	pkg "git.solsynth.dev/hypernet/threads/pkg/internal"
	"git.solsynth.dev/hypernet/threads/pkg/internal/cache"
	"git.solsynth.dev/hypernet/threads/pkg/internal/database"
	"git.solsynth.dev/hypernet/threads/pkg/internal/grpc"
	"git.solsynth.dev/hypernet/threads/pkg/internal/http"
	"git.solsynth.dev/hypernet/threads/pkg/internal/seed"
	"git.solsynth.dev/hypernet/threads/pkg/internal/services"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString(" _____ _                        _\n|_   _| |__  _ __ ___  __ _  __| |___\n  | | | '_ \\| '__/ _ \\/ _` |/ _` / __|\n  | | | | | | | |  __/ (_| | (_| \\__ \\\n  |_| |_| |_|_|  \\___|\\__,_|\\__,_|___/"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Hypernet.Threads"), pkg.AppVersion)
	fmt.Printf("The social graph and feed core in Hypernet\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	if viper.GetBool("debug.enabled") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx := context.Background()

	// Prepare stores
	lookup, err := services.ParseCommentLookup(viper.GetString("feed.comment_lookup"))
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when reading comment lookup mode.")
	}

	cacheStore, err := cache.NewStore(viper.GetInt64("cache.max_cost"))
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing cache.")
	}

	var detector services.LanguageDetector
	if viper.GetBool("feed.detect_language") {
		detector = services.NewLanguageDetector()
		log.Info().Msg("Language detector loaded.")
	}

	var deliverer services.Deliverer = services.LogDeliverer{}
	if addr := viper.GetString("delivery.redis"); len(addr) > 0 {
		if rdb, err := services.NewRedisDeliverer(ctx, addr); err != nil {
			log.Error().Err(err).Msg("An error occurred when connecting to redis. Notifications will only be logged.")
		} else {
			deliverer = rdb
			defer rdb.Close()
			log.Info().Str("addr", addr).Msg("Redis delivery channel connected.")
		}
	}

	stack := services.NewStack(services.StackConfig{
		Cache:     cacheStore,
		Detector:  detector,
		Lookup:    lookup,
		Deliverer: deliverer,
	})

	// Load seed
	loader, err := newSeedLoader()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when preparing seed loader.")
	}
	if snapshot, err := loader.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when loading seed.")
	} else {
		stack.Hydrate(snapshot)
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	schedule := viper.GetString("delivery.schedule")
	if len(schedule) == 0 {
		schedule = "@every 10s"
	}
	if _, err := quartz.AddFunc(schedule, stack.Delivery.FlushTimedTask); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when scheduling notification delivery.")
	}
	quartz.Start()

	// Server
	server := http.NewServer(stack)
	go server.Listen()

	rpc := grpc.NewGrpc(stack)
	go func() {
		if err := rpc.Listen(); err != nil {
			log.Fatal().Err(err).Msg("An error occurred when starting gRPC server...")
		}
	}()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	<-quartz.Stop().Done()
	stack.Delivery.FlushTimedTask()
	rpc.Stop()
	_ = server.Shutdown()

	if viper.GetString("seed.source") == "database" && viper.GetBool("seed.persist") {
		persistSnapshot(stack)
	}
}

func newSeedLoader() (seed.Loader, error) {
	switch source := viper.GetString("seed.source"); source {
	case "", "fake":
		return seed.FakeLoader{
			Users: viper.GetInt("seed.users"),
			Posts: viper.GetInt("seed.posts"),
			Seed:  uint64(viper.GetInt64("seed.seed")),
		}, nil
	case "empty":
		return seed.StaticLoader{}, nil
	case "file":
		return seed.FileLoader{Path: viper.GetString("seed.file")}, nil
	case "database":
		db, err := database.Connect(viper.GetString("database.dsn"), viper.GetString("database.prefix"))
		if err != nil {
			return nil, err
		}
		if err := database.RunMigration(db); err != nil {
			return nil, fmt.Errorf("unable to run database auto migration: %v", err)
		}
		return database.NewLoader(db), nil
	default:
		return nil, fmt.Errorf("unknown seed source: %s", source)
	}
}

func persistSnapshot(stack *services.Stack) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(viper.GetString("database.dsn"), viper.GetString("database.prefix"))
	if err != nil {
		log.Error().Err(err).Msg("An error occurred when connecting to database for persisting.")
		return
	}
	if err := database.NewLoader(db).Import(ctx, stack.Snapshot()); err != nil {
		log.Error().Err(err).Msg("An error occurred when persisting snapshot.")
	} else {
		log.Info().Msg("Snapshot persisted.")
	}
}
