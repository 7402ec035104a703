package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/staffdir"
)

// Ensure LoggingBatchWriter implements staffdir.BatchWriter.
var _ staffdir.BatchWriter = (*LoggingBatchWriter)(nil)

// LoggingBatchWriter wraps a BatchWriter with logging.
type LoggingBatchWriter struct {
	next   staffdir.BatchWriter
	logger *slog.Logger
}

// NewLoggingBatchWriter creates a new LoggingBatchWriter.
func NewLoggingBatchWriter(next staffdir.BatchWriter, logger *slog.Logger) *LoggingBatchWriter {
	return &LoggingBatchWriter{next: next, logger: logger}
}

// WriteBatch delegates to the wrapped writer and logs the batch.
func (w *LoggingBatchWriter) WriteBatch(ctx context.Context, prefix string, batch []*staffdir.Contact) (err error) {
	defer func(begin time.Time) {
		w.logger.Debug("write batch",
			"prefix", prefix,
			"count", len(batch),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteBatch(ctx, prefix, batch)
}
