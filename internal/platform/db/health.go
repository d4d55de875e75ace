package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Health describes the reachability of the assessment store. The engine
// refuses to serve writes when the store is down, so health is surfaced on
// its own endpoint rather than inferred from request failures.
type Health struct {
	Healthy   bool          `json:"healthy"`
	Latency   time.Duration `json:"latency_ns"`
	OpenConns int32         `json:"open_conns"`
	IdleConns int32         `json:"idle_conns"`
	Error     string        `json:"error,omitempty"`
}

// CheckHealth pings the database with a short deadline and reports pool stats.
func CheckHealth(ctx context.Context, pool *pgxpool.Pool) Health {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := pool.Ping(ctx)
	stat := pool.Stat()

	h := Health{
		Healthy:   err == nil,
		Latency:   time.Since(start),
		OpenConns: stat.TotalConns(),
		IdleConns: stat.IdleConns(),
	}
	if err != nil {
		h.Error = err.Error()
	}
	return h
}
