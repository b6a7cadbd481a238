package match

import (
	"sync/atomic"
	"time"
)

// Clock supplies timestamps for orders and trades.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns wall-clock time in UTC.
var SystemClock Clock = ClockFunc(func() time.Time { return time.Now().UTC() })

// Sequencer supplies time-priority sequence numbers.
// Values must be non-decreasing; the OrderBook bumps repeated values so
// that no two orders ever share a sequence.
type Sequencer interface {
	NextSequence() uint64
}

// CounterSequencer yields 1, 2, 3, ...
type CounterSequencer struct {
	n atomic.Uint64
}

func (s *CounterSequencer) NextSequence() uint64 {
	return s.n.Add(1)
}

// ClockSequencer derives sequences from a clock at microsecond resolution.
// Orders submitted within the same microsecond yield equal values.
type ClockSequencer struct {
	Clock Clock
}

func (s ClockSequencer) NextSequence() uint64 {
	return uint64(s.Clock.Now().UnixMicro())
}
