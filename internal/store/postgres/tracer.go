package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"ops-backend/internal/metrics"
)

type tracerKey struct{}

type traceData struct {
	start time.Time
	sql   string
}

// queryTracer feeds every executed statement into the store metrics
type queryTracer struct{}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, tracerKey{}, &traceData{start: time.Now(), sql: data.SQL})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	td, ok := ctx.Value(tracerKey{}).(*traceData)
	if !ok {
		return
	}
	metrics.ObserveOp("postgres", "query", td.start, data.Err)
}
