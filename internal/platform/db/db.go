package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"compeval/internal/platform/config"
)

// Connect establishes the pool with a bounded retry loop: managed databases
// routinely refuse the first connections after a cold start. Only initial
// establishment retries; once the pool is handed out, failures surface to
// callers immediately.
func Connect(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConns = 5
	poolCfg.MinConns = 1

	var lastErr error
	for attempt := 1; attempt <= cfg.DBConnectRetries; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err
		slog.Warn("db connect failed", "attempt", attempt, "maxAttempts", cfg.DBConnectRetries, "err", err)
		if attempt == cfg.DBConnectRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.DBConnectBackoff * time.Duration(attempt)):
		}
	}
	return nil, fmt.Errorf("db connect failed after %d attempts: %w", cfg.DBConnectRetries, lastErr)
}
