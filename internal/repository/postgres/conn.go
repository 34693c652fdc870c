package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Postgres struct {
	pg           *pgxpool.Pool
	queryTimeout time.Duration
	log          *slog.Logger
}

func New(pool *pgxpool.Pool, queryTimeout time.Duration) *Postgres {
	return &Postgres{
		pg:           pool,
		queryTimeout: queryTimeout,
		log:          slog.With("component", "db"),
	}
}

func (p *Postgres) Ping(ctx context.Context) error {
	timeout := 5 * time.Second

	ticker := time.NewTicker(timeout)
	defer ticker.Stop()

	var err error
	// Ping 3 times with a specified time interval.
	for i := 1; i <= 3; i++ {
		// If the ping process is not successful, it hangs indefinitely, so
		// it's important to limit the context with a timeout.
		pingCtx, cancel := context.WithTimeout(ctx, timeout-time.Millisecond*10)
		if err = p.pg.Ping(pingCtx); err == nil {
			cancel()

			return nil
		} else {
			p.log.Info("ping attempt was not successful", "attempt", i)
		}
		cancel()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return err
}

// withTimeout bounds a single record lookup; callers hold no transaction.
func (p *Postgres) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, p.queryTimeout)
}
