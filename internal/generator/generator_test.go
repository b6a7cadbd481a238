package generator

import (
	"testing"

	"github.com/quagmt/udecimal"
	"github.com/stretchr/testify/assert"

	match "github.com/0x5487/clob-simulator"
)

func TestGenerator(t *testing.T) {
	g := New(Options{MidPrice: 100, PriceStdDev: 1.5, MaxSize: 100, Seed: 42})
	mid := udecimal.MustFromInt64(100, 0)

	var buys, sells int
	for i := 0; i < 1000; i++ {
		req := g.Next()

		assert.GreaterOrEqual(t, req.Size, int64(1))
		assert.LessOrEqual(t, req.Size, int64(100))
		assert.Equal(t, 1, req.Price.Cmp(udecimal.Zero))

		switch req.Side {
		case match.Buy:
			buys++
			assert.True(t, req.Price.Cmp(mid) <= 0, "buy above mid: %s", req.Price)
		case match.Sell:
			sells++
			assert.True(t, req.Price.Cmp(mid) >= 0, "sell below mid: %s", req.Price)
		default:
			t.Fatalf("unexpected side %v", req.Side)
		}
	}

	assert.Greater(t, buys, 400)
	assert.Greater(t, sells, 400)
}

func TestGeneratorIsDeterministic(t *testing.T) {
	a := New(Options{MidPrice: 100, PriceStdDev: 1.5, MaxSize: 10, Seed: 7})
	b := New(Options{MidPrice: 100, PriceStdDev: 1.5, MaxSize: 10, Seed: 7})

	for i := 0; i < 50; i++ {
		ra, rb := a.Next(), b.Next()
		assert.Equal(t, ra.Side, rb.Side)
		assert.True(t, ra.Price.Equal(rb.Price))
		assert.Equal(t, ra.Size, rb.Size)
	}
}

func TestToTick(t *testing.T) {
	assert.True(t, toTick(101.004).Equal(udecimal.MustParse("101")))
	assert.True(t, toTick(99.456).Equal(udecimal.MustParse("99.46")))
	assert.True(t, toTick(-3).Equal(udecimal.MustParse("0.01")))
	assert.True(t, toTick(0.001).Equal(udecimal.MustParse("0.01")))
}
