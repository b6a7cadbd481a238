package match

import (
	"math/rand"
	"testing"

	"github.com/quagmt/udecimal"
)

func BenchmarkSubmit(b *testing.B) {
	book := NewOrderBook(NewDiscardPublishLog())

	// Use fixed seed for repeatability
	rng := rand.New(rand.NewSource(42))
	midPrice := int64(10000)

	// Pre-compute prices to reduce allocations in hot loop
	// 1000 ticks: prices from 9500 to 10500
	priceCache := make([]udecimal.Decimal, 1001)
	for i := int64(0); i <= 1000; i++ {
		priceCache[i] = udecimal.MustFromInt64(midPrice-500+i, 0)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var priceIdx int
		side := Buy

		// 80/20 Distribution
		if rng.Intn(100) < 80 {
			// 80% in Top 10 ticks, crossing the mid
			offset := rng.Intn(20) - 10
			priceIdx = 500 + offset
		} else {
			offset := rng.Intn(490) + 11
			priceIdx = 500 - offset
		}
		if rng.Intn(2) == 0 {
			side = Sell
			priceIdx = 1000 - priceIdx
		}

		_, _ = book.Submit(side, priceCache[priceIdx], int64(rng.Intn(10)+1))
	}
}
