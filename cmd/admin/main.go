package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"lingo-days/internal/adapter"
	"lingo-days/internal/cache"
	"lingo-days/internal/config"
	"lingo-days/internal/database"
	"lingo-days/internal/logger"
	"lingo-days/internal/repository"
	"lingo-days/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:           "lingo-admin",
	Short:         "Operator tasks for the Lingo Days backend",
	Long:          "lingo-admin runs database migrations, loads lesson content and resets learner progress.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		appConfig = cfg
		return logger.Initialize(cfg.Logger)
	},
}

var appConfig *config.Config

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(importVocabCmd)
	rootCmd.AddCommand(resetProgressCmd)
}

func main() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func openDB(ctx context.Context) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return database.NewSQLXPostgresDB(ctx, appConfig)
}

// newAdminService wires the admin service. Cache flushes are skipped when Redis is not configured.
func newAdminService(db *sqlx.DB) service.AdminService {
	cacheAdapter := adapter.NewNoopCache()
	if appConfig.Redis.Address != "" {
		client, err := cache.NewRedisClient(appConfig.Redis)
		if err != nil {
			logger.Get().Warn("Redis unreachable, cached lessons will expire on their own", zap.Error(err))
		} else {
			cacheAdapter = adapter.NewRedisCacheAdapter(client)
		}
	}

	return service.NewAdminService(
		repository.NewSQLXLessonRepository(db),
		repository.NewSQLXProgressRepository(db),
		repository.NewSQLXProfileRepository(db),
		repository.NewSQLXUserRepository(db),
		repository.NewTransactionManagerAdapter(db),
		service.NewLessonCache(cacheAdapter, appConfig.Cache.LessonTTL),
	)
}
