package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool builds the pool without dialing: pgxpool connects on first use, so the site
// can start (and serve fallback content) while Postgres is down. Use Ping to check.
func NewPool(dbURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dbURL)

	if err != nil {
		return nil, err
	}

	cfg.MaxConns = 5
	cfg.ConnConfig.ConnectTimeout = 3 * time.Second

	return pgxpool.NewWithConfig(context.Background(), cfg)
}

func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)

	defer cancel()

	return pool.Ping(ctx)
}
