package match

import (
	"context"
	"log/slog"
	"sync"
)

// PublishLog is an interface for publishing order book logs (opens and matches).
// Publish is called synchronously from Submit after the book state is updated.
type PublishLog interface {
	Publish(...*OrderBookLog)
}

// MemoryPublishLog stores logs in memory, useful for testing.
type MemoryPublishLog struct {
	mu   sync.RWMutex
	Logs []*OrderBookLog
}

// NewMemoryPublishLog creates a new MemoryPublishLog.
func NewMemoryPublishLog() *MemoryPublishLog {
	return &MemoryPublishLog{
		Logs: make([]*OrderBookLog, 0),
	}
}

// Publish appends copies of the logs to the in-memory slice.
func (m *MemoryPublishLog) Publish(logs ...*OrderBookLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, log := range logs {
		cpy := new(OrderBookLog)
		*cpy = *log
		m.Logs = append(m.Logs, cpy)
	}
}

// Count returns the number of logs stored.
func (m *MemoryPublishLog) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Logs)
}

// Get returns the log at the specified index.
func (m *MemoryPublishLog) Get(index int) *OrderBookLog {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.Logs[index]
}

// All returns a copy of all logs stored.
func (m *MemoryPublishLog) All() []*OrderBookLog {
	m.mu.RLock()
	defer m.mu.RUnlock()

	logs := make([]*OrderBookLog, len(m.Logs))
	copy(logs, m.Logs)
	return logs
}

// DiscardPublishLog discards all logs, useful for benchmarking.
type DiscardPublishLog struct {
}

// NewDiscardPublishLog creates a new DiscardPublishLog.
func NewDiscardPublishLog() *DiscardPublishLog {
	return &DiscardPublishLog{}
}

// Publish does nothing.
func (p *DiscardPublishLog) Publish(logs ...*OrderBookLog) {

}

// LogPublishLog writes every event to a slog.Logger at debug level.
type LogPublishLog struct {
	logger *slog.Logger
}

// NewLogPublishLog creates a LogPublishLog writing to l.
func NewLogPublishLog(l *slog.Logger) *LogPublishLog {
	return &LogPublishLog{logger: l}
}

// Publish logs each event.
func (p *LogPublishLog) Publish(logs ...*OrderBookLog) {
	ctx := context.Background()
	if !p.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	for _, log := range logs {
		p.logger.LogAttrs(ctx, slog.LevelDebug, "book event",
			slog.Uint64("seq_id", log.SequenceID),
			slog.String("type", string(log.Type)),
			slog.String("side", log.Side.String()),
			slog.String("price", log.Price.String()),
			slog.Int64("size", log.Size),
			slog.Uint64("order_id", log.OrderID),
			slog.Uint64("maker_order_id", log.MakerOrderID),
		)
	}
}
