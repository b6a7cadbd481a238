package match

// OrderBookSnapshot contains copies of every resting order of an OrderBook.
type OrderBookSnapshot struct {
	SeqID   uint64  `json:"seq_id"`   // Current OrderBookLog sequence ID
	TradeID uint64  `json:"trade_id"` // Current Trade sequence ID
	Bids    []Order `json:"bids"`     // Ordered list of bids (best price first)
	Asks    []Order `json:"asks"`     // Ordered list of asks (best price first)
}
