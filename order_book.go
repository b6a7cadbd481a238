package match

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/quagmt/udecimal"
)

// OrderBook is a single-instrument continuous limit order book with price-time priority.
//
// An OrderBook is not safe for concurrent use. Each Submit runs to completion,
// including every matching iteration, before any other method may be called.
// Callers that need several submitters must serialize them behind one lock or
// one goroutine that owns the book.
type OrderBook struct {
	orderID      atomic.Uint64 // Last assigned order ID
	seqID        atomic.Uint64 // Globally increasing sequence ID for OrderBookLog production
	tradeID      atomic.Uint64 // Sequential trade ID counter, only incremented for Match events
	lastSequence uint64        // Last time-priority sequence handed to an order
	bidQueue     *queue
	askQueue     *queue
	levels       *AggregatedBook
	tradeLog     *TradeLog
	publishLog   PublishLog
	clock        Clock
	sequencer    Sequencer
}

// Option configures an OrderBook.
type Option func(*OrderBook)

// WithClock sets the clock used for order and trade timestamps.
func WithClock(c Clock) Option {
	return func(book *OrderBook) {
		book.clock = c
	}
}

// WithSequencer sets the source of time-priority sequence numbers.
func WithSequencer(s Sequencer) Option {
	return func(book *OrderBook) {
		book.sequencer = s
	}
}

// WithTradeLogCapacity sets how many recent trades are retained.
func WithTradeLogCapacity(capacity int) Option {
	return func(book *OrderBook) {
		book.tradeLog = NewTradeLog(capacity)
	}
}

// NewOrderBook creates a new order book instance.
// A nil publishLog discards events.
func NewOrderBook(publishLog PublishLog, opts ...Option) *OrderBook {
	if publishLog == nil {
		publishLog = NewDiscardPublishLog()
	}

	book := &OrderBook{
		bidQueue:   NewBuyerQueue(),
		askQueue:   NewSellerQueue(),
		levels:     NewAggregatedBook(),
		tradeLog:   NewTradeLog(DefaultTradeLogCapacity),
		publishLog: publishLog,
		clock:      SystemClock,
		sequencer:  &CounterSequencer{},
	}

	for _, opt := range opts {
		opt(book)
	}

	return book
}

// Submit places a limit order. The order is matched against the opposite side
// and any remaining size rests on the book.
// Returns ErrInvalidOrder, without touching the book, if side, price or size is invalid.
func (book *OrderBook) Submit(side Side, price udecimal.Decimal, size int64) (*SubmitResult, error) {
	if (side != Buy && side != Sell) || price.Cmp(udecimal.Zero) <= 0 || size <= 0 {
		logger.LogAttrs(context.Background(), slog.LevelDebug, "order rejected",
			slog.String("side", side.String()),
			slog.String("price", price.String()),
			slog.Int64("size", size),
		)
		return nil, ErrInvalidOrder
	}

	now := book.clock.Now()
	order := &Order{
		ID:        book.orderID.Add(1),
		Side:      side,
		Price:     price,
		Size:      size,
		Sequence:  book.nextSequence(),
		Timestamp: now.UnixNano(),
	}

	logs := book.handleLimitOrder(order)

	result := &SubmitResult{
		OrderID:   order.ID,
		Sequence:  order.Sequence,
		Trades:    make([]Trade, 0, len(logs)),
		Remaining: order.Size,
	}
	for _, log := range logs {
		if log.Type == LogTypeMatch {
			result.Trades = append(result.Trades, Trade{
				ID:           log.TradeID,
				TakerOrderID: log.OrderID,
				MakerOrderID: log.MakerOrderID,
				TakerSide:    log.Side,
				Price:        log.Price,
				Size:         log.Size,
				CreatedAt:    log.CreatedAt,
			})
		}
	}

	if len(logs) > 0 {
		book.publishLog.Publish(logs...)
	}

	return result, nil
}

// nextSequence returns a sequence strictly greater than any previously assigned.
func (book *OrderBook) nextSequence() uint64 {
	seq := book.sequencer.NextSequence()
	if seq <= book.lastSequence {
		seq = book.lastSequence + 1
	}
	book.lastSequence = seq
	return seq
}

// handleLimitOrder matches the order against the opposite queue and adds the remaining size to the book.
// A partially filled maker is reduced in place and keeps its time priority.
func (book *OrderBook) handleLimitOrder(order *Order) []*OrderBookLog {
	var myQueue, targetQueue *queue
	if order.Side == Buy {
		myQueue = book.bidQueue
		targetQueue = book.askQueue
	} else {
		myQueue = book.askQueue
		targetQueue = book.bidQueue
	}

	logs := make([]*OrderBookLog, 0, 8)
	now := book.clock.Now()

	for order.Size > 0 {
		tOrd := targetQueue.peekHeadOrder()
		if tOrd == nil {
			break
		}

		if order.Side == Buy && order.Price.LessThan(tOrd.Price) ||
			order.Side == Sell && order.Price.GreaterThan(tOrd.Price) {
			break
		}

		size := min(order.Size, tOrd.Size)
		trade := Trade{
			ID:           book.tradeID.Add(1),
			TakerOrderID: order.ID,
			MakerOrderID: tOrd.ID,
			TakerSide:    order.Side,
			Price:        tOrd.Price,
			Size:         size,
			CreatedAt:    now,
		}

		targetQueue.decreaseOrderSize(tOrd.ID, size)
		order.Size -= size

		log := NewMatchLog(book.seqID.Add(1), trade)
		book.applyLog(log)
		book.tradeLog.Append(trade)
		logs = append(logs, log)
	}

	if order.Size > 0 {
		myQueue.insertOrder(order)
		log := NewOpenLog(book.seqID.Add(1), order, now)
		book.applyLog(log)
		logs = append(logs, log)
	}

	return logs
}

// applyLog folds an event into the aggregated levels.
// Failure means the levels disagree with the queues, which is a bug.
func (book *OrderBook) applyLog(log *OrderBookLog) {
	if err := book.levels.Replay(log); err != nil {
		panic("match: aggregated book out of sync: " + err.Error())
	}
}

// BidLevels returns every bid price level, highest price first.
func (book *OrderBook) BidLevels() []Level {
	return book.levels.Levels(Buy, 0)
}

// AskLevels returns every ask price level, lowest price first.
func (book *OrderBook) AskLevels() []Level {
	return book.levels.Levels(Sell, 0)
}

// Depth returns the order book depth up to the specified limit per side.
func (book *OrderBook) Depth(limit uint32) (*Depth, error) {
	if limit == 0 {
		return nil, ErrInvalidParam
	}

	return &Depth{
		UpdateID: book.seqID.Load(),
		Asks:     book.levels.Levels(Sell, limit),
		Bids:     book.levels.Levels(Buy, limit),
	}, nil
}

// BestBid returns the highest bid level.
func (book *OrderBook) BestBid() (Level, bool) {
	return book.levels.Best(Buy)
}

// BestAsk returns the lowest ask level.
func (book *OrderBook) BestAsk() (Level, bool) {
	return book.levels.Best(Sell)
}

// Spread returns best ask minus best bid. ok is false when either side is empty.
func (book *OrderBook) Spread() (spread udecimal.Decimal, ok bool) {
	bid, ok := book.BestBid()
	if !ok {
		return udecimal.Zero, false
	}
	ask, ok := book.BestAsk()
	if !ok {
		return udecimal.Zero, false
	}
	return ask.Price.Sub(bid.Price), true
}

// Trades returns the recent trades, oldest first.
func (book *OrderBook) Trades() []Trade {
	return book.tradeLog.Trades()
}

// Stats returns usage statistics for the order book.
func (book *OrderBook) Stats() *BookStats {
	return &BookStats{
		AskDepthCount: book.askQueue.depthCount(),
		AskOrderCount: book.askQueue.orderCount(),
		BidDepthCount: book.bidQueue.depthCount(),
		BidOrderCount: book.bidQueue.orderCount(),
		TradeCount:    book.tradeID.Load(),
	}
}

// Snapshot copies the current resting orders of both sides in priority order.
func (book *OrderBook) Snapshot() *OrderBookSnapshot {
	return &OrderBookSnapshot{
		SeqID:   book.seqID.Load(),
		TradeID: book.tradeID.Load(),
		Bids:    book.bidQueue.toSnapshot(),
		Asks:    book.askQueue.toSnapshot(),
	}
}
