package core

import (
	"container/heap"

	"github.com/nikolaydubina/fpdecimal"
)

// priceHeap is a binary heap of candidate best prices for one side of the
// book: max-oriented for bids, min-oriented for asks. The heap tolerates
// duplicate and stale entries; the side's price-to-level map is the source of
// truth for liquidity and stale entries are discarded lazily while scanning
// for the best live price (removing an arbitrary interior element would be
// O(n), skipping it during a scan is amortized O(log n)).
type priceHeap struct {
	prices []fpdecimal.Decimal
	max    bool
}

func newPriceHeap(max bool) *priceHeap {
	return &priceHeap{max: max}
}

func (h *priceHeap) Len() int { return len(h.prices) }

func (h *priceHeap) Less(i, j int) bool {
	if h.max {
		return h.prices[j].LessThan(h.prices[i])
	}
	return h.prices[i].LessThan(h.prices[j])
}

func (h *priceHeap) Swap(i, j int) {
	h.prices[i], h.prices[j] = h.prices[j], h.prices[i]
}

func (h *priceHeap) Push(x any) {
	h.prices = append(h.prices, x.(fpdecimal.Decimal))
}

func (h *priceHeap) Pop() any {
	last := len(h.prices) - 1
	price := h.prices[last]
	h.prices = h.prices[:last]
	return price
}

// push records a price as a candidate best price. Duplicates are permitted.
func (h *priceHeap) push(price fpdecimal.Decimal) {
	heap.Push(h, price)
}

// top returns the most aggressive candidate without removing it
func (h *priceHeap) top() (fpdecimal.Decimal, bool) {
	if len(h.prices) == 0 {
		return fpdecimal.Zero, false
	}
	return h.prices[0], true
}

// pop removes and returns the most aggressive candidate
func (h *priceHeap) pop() (fpdecimal.Decimal, bool) {
	if len(h.prices) == 0 {
		return fpdecimal.Zero, false
	}
	return heap.Pop(h).(fpdecimal.Decimal), true
}

func (h *priceHeap) len() int {
	return len(h.prices)
}
