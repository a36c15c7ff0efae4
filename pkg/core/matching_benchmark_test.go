package core

import (
	"math/rand"
	"testing"

	"github.com/nikolaydubina/fpdecimal"
)

// BenchmarkLimitOrderInsert measures resting inserts with no matching
func BenchmarkLimitOrderInsert(b *testing.B) {
	book := NewOrderBook()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		price := fpdecimal.FromFloat(100.0 + float64(i%100)*0.1)
		_, _ = book.AddLimitOrder(Buy, price, 10)
	}
}

// BenchmarkLimitOrderMatching measures crossing limit orders against a
// populated book
func BenchmarkLimitOrderMatching(b *testing.B) {
	book := NewOrderBook()

	for i := 0; i < 100; i++ {
		price := fpdecimal.FromFloat(100.0 + float64(i)*0.1)
		_, _ = book.AddLimitOrder(Sell, price, 1+int64(i%5))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = book.AddLimitOrder(Buy, fpdecimal.FromFloat(100.5), 2)

		// Keep liquidity around so later iterations still match
		if i%50 == 49 {
			b.StopTimer()
			for j := 0; j < 100; j++ {
				price := fpdecimal.FromFloat(100.0 + float64(j)*0.1)
				_, _ = book.AddLimitOrder(Sell, price, 1+int64(j%5))
			}
			b.StartTimer()
		}
	}
}

// BenchmarkMarketOrderMatching measures market orders against a deep book
func BenchmarkMarketOrderMatching(b *testing.B) {
	book := NewOrderBook()

	for i := 0; i < 1000; i++ {
		price := fpdecimal.FromFloat(100.0 + float64(i%100)*0.1)
		_, _ = book.AddLimitOrder(Sell, price, 100)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = book.AddMarketOrder(Buy, 3)

		if i%1000 == 999 {
			b.StopTimer()
			for j := 0; j < 100; j++ {
				price := fpdecimal.FromFloat(100.0 + float64(j)*0.1)
				_, _ = book.AddLimitOrder(Sell, price, 100)
			}
			b.StartTimer()
		}
	}
}

// BenchmarkRandomFlow mirrors the synthetic throughput workload: uniform
// side, price in a narrow band, quantity in [1,100]
func BenchmarkRandomFlow(b *testing.B) {
	book := NewOrderBook()
	rng := rand.New(rand.NewSource(42))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		side := Buy
		if rng.Float64() < 0.5 {
			side = Sell
		}
		price := fpdecimal.FromFloat(100.0 + (rng.Float64()*2-1)*0.5)
		quantity := 1 + rng.Int63n(100)

		_, _ = book.AddLimitOrder(side, price, quantity)
	}
}

// BenchmarkCancelOrder measures O(1) cancellation under churn
func BenchmarkCancelOrder(b *testing.B) {
	book := NewOrderBook()

	ids := make([]uint64, b.N)
	for i := 0; i < b.N; i++ {
		price := fpdecimal.FromFloat(100.0 + float64(i%500)*0.1)
		id, _ := book.AddLimitOrder(Buy, price, 10)
		ids[i] = id
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book.CancelOrder(ids[i])
	}
}
