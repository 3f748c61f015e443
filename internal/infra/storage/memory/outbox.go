package memory

import (
	"context"
	"log/slog"
	"sync"

	appoutbox "stayhub/internal/app/outbox"
)

// OutboxLog is the broker-less stand-in: it keeps the tail of recorded events
// and logs each one so local runs still show what would have been published.
type OutboxLog struct {
	Logger *slog.Logger

	mu      sync.Mutex
	records []appoutbox.EventRecord
}

const outboxLogTail = 256

func NewOutboxLog(logger *slog.Logger) *OutboxLog {
	return &OutboxLog{Logger: logger}
}

func (o *OutboxLog) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	o.records = append(o.records, record)
	if len(o.records) > outboxLogTail {
		o.records = o.records[len(o.records)-outboxLogTail:]
	}
	o.mu.Unlock()
	if o.Logger != nil {
		o.Logger.InfoContext(ctx, "outbox event recorded",
			slog.String("event", record.Name),
			slog.String("aggregate", record.Aggregate),
		)
	}
	return nil
}

func (o *OutboxLog) Flush(ctx context.Context) error {
	return nil
}

// Tail returns the most recent recorded events, newest last.
func (o *OutboxLog) Tail() []appoutbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]appoutbox.EventRecord(nil), o.records...)
}
