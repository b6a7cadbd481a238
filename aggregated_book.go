package match

import (
	"fmt"

	"github.com/igrmk/treemap/v2"
	"github.com/quagmt/udecimal"
)

// AggregatedBook maintains a simplified view of the order book,
// tracking only price levels and their aggregated sizes (depth).
// The OrderBook keeps one internally, and downstream consumers can
// rebuild the same view by replaying the published OrderBookLog events.
type AggregatedBook struct {
	seqID uint64 // Last processed SequenceID for gap detection and deduplication
	ask   *treemap.TreeMap[udecimal.Decimal, int64]
	bid   *treemap.TreeMap[udecimal.Decimal, int64]
}

// NewAggregatedBook creates a new AggregatedBook instance with empty ask and bid sides.
// Both trees iterate best price first: asks ascending, bids descending.
func NewAggregatedBook() *AggregatedBook {
	return &AggregatedBook{
		ask: treemap.NewWithKeyCompare[udecimal.Decimal, int64](func(a, b udecimal.Decimal) bool {
			return a.LessThan(b)
		}),
		bid: treemap.NewWithKeyCompare[udecimal.Decimal, int64](func(a, b udecimal.Decimal) bool {
			return a.GreaterThan(b)
		}),
	}
}

// SequenceID returns the last processed sequence ID.
// Used for synchronization and gap detection during rebuild.
func (ab *AggregatedBook) SequenceID() uint64 {
	return ab.seqID
}

// Replay applies an OrderBookLog event to update the aggregated book state.
// Events already applied are skipped; a missing event returns ErrSequenceGap.
func (ab *AggregatedBook) Replay(log *OrderBookLog) error {
	if log.SequenceID <= ab.seqID {
		return nil
	}
	if log.SequenceID != ab.seqID+1 {
		return fmt.Errorf("replay seq %d after %d: %w", log.SequenceID, ab.seqID, ErrSequenceGap)
	}

	if err := ab.apply(CalculateDepthChange(log)); err != nil {
		return err
	}
	ab.seqID = log.SequenceID
	return nil
}

// OnRebuild resets the aggregated book from a depth snapshot.
// This should be called before replaying events that follow depth.UpdateID.
func (ab *AggregatedBook) OnRebuild(depth *Depth) error {
	if depth == nil {
		return ErrInvalidParam
	}

	ab.ask.Clear()
	ab.bid.Clear()
	for _, lvl := range depth.Asks {
		if lvl.Size <= 0 {
			return fmt.Errorf("rebuild ask %s: %w", lvl.Price, ErrNegativeLevel)
		}
		ab.ask.Set(lvl.Price, lvl.Size)
	}
	for _, lvl := range depth.Bids {
		if lvl.Size <= 0 {
			return fmt.Errorf("rebuild bid %s: %w", lvl.Price, ErrNegativeLevel)
		}
		ab.bid.Set(lvl.Price, lvl.Size)
	}
	ab.seqID = depth.UpdateID
	return nil
}

// Depth returns the aggregated size at a specific price level for the given side.
// Returns zero if the price level does not exist.
func (ab *AggregatedBook) Depth(side Side, price udecimal.Decimal) int64 {
	size, _ := ab.tree(side).Get(price)
	return size
}

// Levels returns up to limit price levels of the given side, best price first.
// A limit of 0 returns every level.
func (ab *AggregatedBook) Levels(side Side, limit uint32) []Level {
	tree := ab.tree(side)

	n := tree.Len()
	if limit > 0 && int(limit) < n {
		n = int(limit)
	}

	result := make([]Level, 0, n)
	for it := tree.Iterator(); it.Valid() && len(result) < n; it.Next() {
		result = append(result, Level{Price: it.Key(), Size: it.Value()})
	}
	return result
}

// Best returns the best price level of the given side.
func (ab *AggregatedBook) Best(side Side) (Level, bool) {
	it := ab.tree(side).Iterator()
	if !it.Valid() {
		return Level{}, false
	}
	return Level{Price: it.Key(), Size: it.Value()}, true
}

// LevelCount returns the number of price levels on the given side.
func (ab *AggregatedBook) LevelCount(side Side) int {
	return ab.tree(side).Len()
}

// apply adds change.SizeDiff to the level, deleting it when it reaches zero.
func (ab *AggregatedBook) apply(change DepthChange) error {
	if change.SizeDiff == 0 {
		return nil
	}

	tree := ab.tree(change.Side)
	current, _ := tree.Get(change.Price)
	next := current + change.SizeDiff

	switch {
	case next < 0:
		return fmt.Errorf("%s %s: %d%+d: %w", change.Side, change.Price, current, change.SizeDiff, ErrNegativeLevel)
	case next == 0:
		tree.Del(change.Price)
	default:
		tree.Set(change.Price, next)
	}
	return nil
}

func (ab *AggregatedBook) tree(side Side) *treemap.TreeMap[udecimal.Decimal, int64] {
	if side == Buy {
		return ab.bid
	}
	return ab.ask
}
