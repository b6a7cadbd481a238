package match

import (
	"testing"

	"github.com/quagmt/udecimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregatedBookReplay(t *testing.T) {
	ab := NewAggregatedBook()

	logs := []*OrderBookLog{
		{SequenceID: 1, Type: LogTypeOpen, Side: Sell, Price: px("101"), Size: 10, OrderID: 1},
		{SequenceID: 2, Type: LogTypeOpen, Side: Sell, Price: px("102"), Size: 5, OrderID: 2},
		{SequenceID: 3, Type: LogTypeOpen, Side: Buy, Price: px("99"), Size: 3, OrderID: 3},
		{SequenceID: 4, Type: LogTypeMatch, Side: Buy, Price: px("101"), Size: 4, OrderID: 4, MakerOrderID: 1},
	}
	for _, log := range logs {
		require.NoError(t, ab.Replay(log))
	}

	assert.Equal(t, uint64(4), ab.SequenceID())
	assert.Equal(t, int64(6), ab.Depth(Sell, px("101")))
	assert.Equal(t, int64(3), ab.Depth(Buy, px("99")))
	assert.Equal(t, int64(0), ab.Depth(Buy, px("101")))
	assertLevels(t, ab.Levels(Sell, 0), "101", 6, "102", 5)
	assertLevels(t, ab.Levels(Sell, 1), "101", 6)

	t.Run("duplicate is ignored", func(t *testing.T) {
		require.NoError(t, ab.Replay(logs[3]))
		assert.Equal(t, int64(6), ab.Depth(Sell, px("101")))
	})

	t.Run("gap is reported", func(t *testing.T) {
		err := ab.Replay(&OrderBookLog{SequenceID: 6, Type: LogTypeOpen, Side: Buy, Price: px("98"), Size: 1})
		assert.ErrorIs(t, err, ErrSequenceGap)
		assert.Equal(t, uint64(4), ab.SequenceID())
	})

	t.Run("level reaching zero is removed", func(t *testing.T) {
		require.NoError(t, ab.Replay(&OrderBookLog{SequenceID: 5, Type: LogTypeMatch, Side: Buy, Price: px("101"), Size: 6}))
		assertLevels(t, ab.Levels(Sell, 0), "102", 5)
		assert.Equal(t, 1, ab.LevelCount(Sell))
	})

	t.Run("negative level is rejected", func(t *testing.T) {
		err := ab.Replay(&OrderBookLog{SequenceID: 6, Type: LogTypeMatch, Side: Sell, Price: px("99"), Size: 4})
		assert.ErrorIs(t, err, ErrNegativeLevel)
		assert.Equal(t, int64(3), ab.Depth(Buy, px("99")))
		assert.Equal(t, uint64(5), ab.SequenceID())
	})
}

func TestAggregatedBookOrdering(t *testing.T) {
	ab := NewAggregatedBook()
	for i, p := range []string{"99.5", "101", "98", "100"} {
		require.NoError(t, ab.Replay(&OrderBookLog{SequenceID: uint64(i + 1), Type: LogTypeOpen, Side: Buy, Price: px(p), Size: 1}))
	}

	assertLevels(t, ab.Levels(Buy, 0), "101", 1, "100", 1, "99.5", 1, "98", 1)

	best, ok := ab.Best(Buy)
	assert.True(t, ok)
	assert.True(t, best.Price.Equal(px("101")))

	_, ok = ab.Best(Sell)
	assert.False(t, ok)
}

func TestAggregatedBookRebuild(t *testing.T) {
	publishLog := NewMemoryPublishLog()
	book := NewOrderBook(publishLog)

	_, _ = book.Submit(Sell, px("101"), 10)
	_, _ = book.Submit(Buy, px("99"), 10)

	depth, err := book.Depth(50)
	require.NoError(t, err)
	mark := publishLog.Count()

	_, _ = book.Submit(Buy, px("101"), 4)
	_, _ = book.Submit(Sell, px("98"), 12)

	downstream := NewAggregatedBook()
	require.NoError(t, downstream.OnRebuild(depth))
	assert.Equal(t, depth.UpdateID, downstream.SequenceID())

	// replaying the whole stream skips what the snapshot already covers
	for i, log := range publishLog.All() {
		require.NoError(t, downstream.Replay(log), "log %d (after mark %d)", i, mark)
	}

	assert.Equal(t, book.BidLevels(), downstream.Levels(Buy, 0))
	assert.Equal(t, book.AskLevels(), downstream.Levels(Sell, 0))

	assert.ErrorIs(t, downstream.OnRebuild(nil), ErrInvalidParam)
	err = downstream.OnRebuild(&Depth{Bids: []Level{{Price: udecimal.MustFromInt64(1, 0), Size: 0}}})
	assert.ErrorIs(t, err, ErrNegativeLevel)
}

func TestCalculateDepthChange(t *testing.T) {
	open := CalculateDepthChange(&OrderBookLog{Type: LogTypeOpen, Side: Buy, Price: px("10"), Size: 3})
	assert.Equal(t, Buy, open.Side)
	assert.Equal(t, int64(3), open.SizeDiff)

	match := CalculateDepthChange(&OrderBookLog{Type: LogTypeMatch, Side: Buy, Price: px("10"), Size: 3})
	assert.Equal(t, Sell, match.Side)
	assert.Equal(t, int64(-3), match.SizeDiff)

	assert.Equal(t, int64(0), CalculateDepthChange(&OrderBookLog{Type: "unknown"}).SizeDiff)
}
