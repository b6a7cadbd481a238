// Package generator produces random limit orders around a mid price.
package generator

import (
	"math"
	"math/rand"

	"github.com/quagmt/udecimal"

	match "github.com/0x5487/clob-simulator"
)

// tick is the price precision in decimal places.
const tick = 2

// Request is a limit order ready to be submitted to an OrderBook.
type Request struct {
	Side  match.Side
	Price udecimal.Decimal
	Size  int64
}

type Options struct {
	MidPrice    float64
	PriceStdDev float64
	MaxSize     int64
	Seed        int64
}

// Generator is not safe for concurrent use.
type Generator struct {
	rng     *rand.Rand
	mid     float64
	stdDev  float64
	maxSize int64
}

func New(opts Options) *Generator {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = 1
	}
	return &Generator{
		rng:     rand.New(rand.NewSource(opts.Seed)),
		mid:     opts.MidPrice,
		stdDev:  opts.PriceStdDev,
		maxSize: maxSize,
	}
}

// Next returns a random order. Buy prices are folded at or below the mid price
// and sell prices at or above it, so the book keeps a spread most of the time.
func (g *Generator) Next() Request {
	side := match.Buy
	if g.rng.Intn(2) == 1 {
		side = match.Sell
	}

	offset := math.Abs(g.rng.NormFloat64() * g.stdDev)
	price := g.mid + offset
	if side == match.Buy {
		price = g.mid - offset
	}

	return Request{
		Side:  side,
		Price: toTick(price),
		Size:  g.rng.Int63n(g.maxSize) + 1,
	}
}

// toTick rounds to two decimals and clamps to one tick.
func toTick(price float64) udecimal.Decimal {
	cents := int64(math.Round(price * 100))
	if cents < 1 {
		cents = 1
	}
	return udecimal.MustFromInt64(cents, tick)
}
