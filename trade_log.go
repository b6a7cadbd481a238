package match

import (
	fifo "github.com/eapache/queue"
)

// TradeLog is a bounded FIFO of the most recent trades.
// Appending beyond capacity evicts the single oldest trade.
type TradeLog struct {
	capacity int
	trades   *fifo.Queue
}

// NewTradeLog creates a TradeLog holding at most capacity trades.
// A non-positive capacity falls back to DefaultTradeLogCapacity.
func NewTradeLog(capacity int) *TradeLog {
	if capacity <= 0 {
		capacity = DefaultTradeLogCapacity
	}
	return &TradeLog{
		capacity: capacity,
		trades:   fifo.New(),
	}
}

// Append adds a trade, evicting the oldest one when the log is full.
func (l *TradeLog) Append(trade Trade) {
	l.trades.Add(trade)
	for l.trades.Length() > l.capacity {
		l.trades.Remove()
	}
}

// Trades returns the retained trades in chronological order, oldest first.
func (l *TradeLog) Trades() []Trade {
	result := make([]Trade, l.trades.Length())
	for i := range result {
		result[i] = l.trades.Get(i).(Trade)
	}
	return result
}

// Last returns the most recent trade.
func (l *TradeLog) Last() (Trade, bool) {
	if l.trades.Length() == 0 {
		return Trade{}, false
	}
	return l.trades.Get(-1).(Trade), true
}

// Len returns the number of retained trades.
func (l *TradeLog) Len() int {
	return l.trades.Length()
}

// Cap returns the maximum number of retained trades.
func (l *TradeLog) Cap() int {
	return l.capacity
}
