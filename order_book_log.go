package match

import (
	"time"

	"github.com/quagmt/udecimal"
)

type LogType string

const (
	LogTypeOpen  LogType = "open"
	LogTypeMatch LogType = "match"
)

// OrderBookLog represents an event in the order book.
// SequenceID is a globally increasing ID for every event, used for ordering,
// deduplication, and rebuild synchronization in downstream systems.
type OrderBookLog struct {
	SequenceID   uint64           `json:"seq_id"`
	TradeID      uint64           `json:"trade_id,omitempty"` // Sequential trade ID, only set for Match events
	Type         LogType          `json:"type"`
	Side         Side             `json:"side"` // Taker side for Match events
	Price        udecimal.Decimal `json:"price"`
	Size         int64            `json:"size"`
	OrderID      uint64           `json:"order_id"`
	MakerOrderID uint64           `json:"maker_order_id,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// NewOpenLog creates an event for an order that starts resting with the given size.
func NewOpenLog(seqID uint64, order *Order, createdAt time.Time) *OrderBookLog {
	return &OrderBookLog{
		SequenceID: seqID,
		Type:       LogTypeOpen,
		Side:       order.Side,
		Price:      order.Price,
		Size:       order.Size,
		OrderID:    order.ID,
		CreatedAt:  createdAt,
	}
}

// NewMatchLog creates an event for a single execution.
func NewMatchLog(seqID uint64, trade Trade) *OrderBookLog {
	return &OrderBookLog{
		SequenceID:   seqID,
		TradeID:      trade.ID,
		Type:         LogTypeMatch,
		Side:         trade.TakerSide,
		Price:        trade.Price,
		Size:         trade.Size,
		OrderID:      trade.TakerOrderID,
		MakerOrderID: trade.MakerOrderID,
		CreatedAt:    trade.CreatedAt,
	}
}
