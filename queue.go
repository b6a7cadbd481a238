package match

import (
	"github.com/huandu/skiplist"
	"github.com/quagmt/udecimal"
)

// priceUnit holds every resting order at one price, oldest sequence first.
type priceUnit struct {
	price     udecimal.Decimal
	totalSize int64
	head      *Order
	tail      *Order
	count     int64
}

type queue struct {
	side        Side
	totalOrders int64
	depths      int64
	depthList   *skiplist.SkipList
	orders      map[uint64]*Order
}

// NewBuyerQueue creates a new queue for buy orders (bids).
// The orders are sorted by price in descending order (highest price first).
func NewBuyerQueue() *queue {
	return &queue{
		side: Buy,
		depthList: skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			d1, _ := lhs.(udecimal.Decimal)
			d2, _ := rhs.(udecimal.Decimal)
			return d2.Cmp(d1)
		})),
		orders: make(map[uint64]*Order),
	}
}

// NewSellerQueue creates a new queue for sell orders (asks).
// The orders are sorted by price in ascending order (lowest price first).
func NewSellerQueue() *queue {
	return &queue{
		side: Sell,
		depthList: skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			d1, _ := lhs.(udecimal.Decimal)
			d2, _ := rhs.(udecimal.Decimal)
			return d1.Cmp(d2)
		})),
		orders: make(map[uint64]*Order),
	}
}

// order finds an order by its ID.
func (q *queue) order(id uint64) *Order {
	return q.orders[id]
}

// unit returns the price level holding the given price, or nil.
func (q *queue) unit(price udecimal.Decimal) (*skiplist.Element, *priceUnit) {
	el := q.depthList.Get(price)
	if el == nil {
		return nil, nil
	}
	unit, _ := el.Value.(*priceUnit)
	return el, unit
}

// insertOrder inserts an order into the queue at its time priority.
// Orders normally arrive in sequence order, so the walk from the tail stops immediately.
func (q *queue) insertOrder(order *Order) {
	_, unit := q.unit(order.Price)
	if unit == nil {
		unit = &priceUnit{price: order.Price}
		q.depthList.Set(order.Price, unit)
		q.depths++
	}

	after := unit.tail
	for after != nil && after.Sequence > order.Sequence {
		after = after.prev
	}

	if after == nil {
		// Push Front
		order.prev = nil
		order.next = unit.head
		if unit.head != nil {
			unit.head.prev = order
		}
		unit.head = order
		if unit.tail == nil {
			unit.tail = order
		}
	} else {
		order.prev = after
		order.next = after.next
		if after.next != nil {
			after.next.prev = order
		} else {
			unit.tail = order
		}
		after.next = order
	}

	unit.totalSize += order.Size
	unit.count++
	q.orders[order.ID] = order
	q.totalOrders++
}

// removeOrder removes an order from the queue by ID.
// It also cleans up the price unit if it becomes empty.
func (q *queue) removeOrder(id uint64) {
	order, ok := q.orders[id]
	if !ok {
		return
	}

	el, unit := q.unit(order.Price)
	if unit == nil {
		return
	}

	if order.prev != nil {
		order.prev.next = order.next
	} else {
		unit.head = order.next
	}

	if order.next != nil {
		order.next.prev = order.prev
	} else {
		unit.tail = order.prev
	}

	order.next = nil
	order.prev = nil

	unit.totalSize -= order.Size
	unit.count--
	delete(q.orders, id)
	q.totalOrders--

	if unit.count == 0 {
		q.depthList.RemoveElement(el)
		q.depths--
	}
}

// decreaseOrderSize reduces the size of a resting order in place, preserving its priority.
// An order reduced to zero is removed from the queue.
func (q *queue) decreaseOrderSize(id uint64, diff int64) {
	order, ok := q.orders[id]
	if !ok {
		return
	}

	if diff >= order.Size {
		q.removeOrder(id)
		order.Size -= diff
		return
	}

	_, unit := q.unit(order.Price)
	if unit != nil {
		unit.totalSize -= diff
	}
	order.Size -= diff
}

// peekHeadOrder returns the order at the front of the queue (best price) without removing it.
func (q *queue) peekHeadOrder() *Order {
	el := q.depthList.Front()
	if el == nil {
		return nil
	}

	unit, _ := el.Value.(*priceUnit)
	return unit.head
}

// popHeadOrder removes and returns the order at the front of the queue.
func (q *queue) popHeadOrder() *Order {
	ord := q.peekHeadOrder()

	if ord != nil {
		q.removeOrder(ord.ID)
	}

	return ord
}

// orderCount returns the total number of orders in the queue.
func (q *queue) orderCount() int64 {
	return q.totalOrders
}

// depthCount returns the number of price levels in the queue.
func (q *queue) depthCount() int64 {
	return q.depths
}

// toSnapshot copies the queue into a slice of Order values in priority order.
func (q *queue) toSnapshot() []Order {
	snapshots := make([]Order, 0, q.totalOrders)

	for elem := q.depthList.Front(); elem != nil; elem = elem.Next() {
		unit := elem.Value.(*priceUnit)

		for order := unit.head; order != nil; order = order.next {
			snapshots = append(snapshots, Order{
				ID:        order.ID,
				Side:      order.Side,
				Price:     order.Price,
				Size:      order.Size,
				Sequence:  order.Sequence,
				Timestamp: order.Timestamp,
			})
		}
	}

	return snapshots
}

// levels returns the per-price totals tracked by the queue itself, best price first.
func (q *queue) levels() []Level {
	result := make([]Level, 0, q.depths)
	for elem := q.depthList.Front(); elem != nil; elem = elem.Next() {
		unit := elem.Value.(*priceUnit)
		result = append(result, Level{Price: unit.price, Size: unit.totalSize})
	}
	return result
}
