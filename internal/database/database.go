package database

import (
	"context"
	"fmt"

	"lingo-days/internal/config"
	"lingo-days/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
)

// NewSQLXPostgresDB opens the connection pool and verifies it with a ping.
func NewSQLXPostgresDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.DB.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL database: %w", err)
	}

	logger.Get().Info("Connected to PostgreSQL",
		zap.String("host", cfg.DB.Host),
		zap.String("database", cfg.DB.DBName),
		zap.Int("max_open_conns", cfg.DB.MaxOpenConns))
	return db, nil
}
