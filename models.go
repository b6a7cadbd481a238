package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/quagmt/udecimal"
)

type Side int8

const (
	Buy  Side = 1
	Sell Side = 2
)

// String returns the lower-case name of the side.
func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	}
	return fmt.Sprintf("side(%d)", int8(s))
}

// Opposite returns the side an order of this side trades against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// ParseSide converts "buy" or "sell" (case-insensitive) into a Side.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "bid":
		return Buy, nil
	case "sell", "ask":
		return Sell, nil
	}
	return 0, fmt.Errorf("parse side %q: %w", s, ErrInvalidParam)
}

// Order represents the state of a resting limit order.
type Order struct {
	ID        uint64           `json:"id"`
	Side      Side             `json:"side"`
	Price     udecimal.Decimal `json:"price"`
	Size      int64            `json:"size"`     // Remaining size
	Sequence  uint64           `json:"sequence"` // Time priority, lower wins on equal price
	Timestamp int64            `json:"timestamp"` // Unix nano, creation time

	// Intrusive linked list pointers (ignored by JSON)
	next *Order
	prev *Order
}

// Trade is an immutable record of a single execution between a taker and a maker.
// Price is always the maker's price.
type Trade struct {
	ID           uint64           `json:"id"`
	TakerOrderID uint64           `json:"taker_order_id"`
	MakerOrderID uint64           `json:"maker_order_id"`
	TakerSide    Side             `json:"taker_side"`
	Price        udecimal.Decimal `json:"price"`
	Size         int64            `json:"size"`
	CreatedAt    time.Time        `json:"created_at"`
}

func (t Trade) String() string {
	return fmt.Sprintf("TRADE: %d @ %s (Orders %d & %d)", t.Size, t.Price.StringFixed(2), t.TakerOrderID, t.MakerOrderID)
}

// SubmitResult is returned by OrderBook.Submit.
type SubmitResult struct {
	OrderID   uint64  `json:"order_id"`
	Sequence  uint64  `json:"sequence"`
	Trades    []Trade `json:"trades"`
	Remaining int64   `json:"remaining"` // Size left resting on the book, 0 if fully filled
}

// Filled returns the total size executed by the submission.
func (r *SubmitResult) Filled() int64 {
	var filled int64
	for _, t := range r.Trades {
		filled += t.Size
	}
	return filled
}

// Level is an aggregated price level.
type Level struct {
	Price udecimal.Decimal `json:"price"`
	Size  int64            `json:"size"`
}

type Depth struct {
	UpdateID uint64  `json:"update_id"`
	Asks     []Level `json:"asks"`
	Bids     []Level `json:"bids"`
}

// DepthChange represents a change in the order book depth.
type DepthChange struct {
	Side     Side
	Price    udecimal.Decimal
	SizeDiff int64
}

// BookStats contains statistics about the order book queues
type BookStats struct {
	AskDepthCount int64 `json:"ask_depth_count"`
	AskOrderCount int64 `json:"ask_order_count"`
	BidDepthCount int64 `json:"bid_depth_count"`
	BidOrderCount int64 `json:"bid_order_count"`
	TradeCount    uint64 `json:"trade_count"`
}
