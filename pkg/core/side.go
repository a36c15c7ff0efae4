package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nikolaydubina/fpdecimal"
)

// sideBook owns one side of the order book: the price-to-level mapping and
// the heap of candidate best prices. Every price present in the mapping has
// been pushed into the heap at least once; the converse does not hold, as the
// heap may carry duplicates and prices whose levels have since emptied.
type sideBook struct {
	side   Side
	levels map[fpdecimal.Decimal]*orderQueue
	heap   *priceHeap
}

func newSideBook(side Side) *sideBook {
	return &sideBook{
		side:   side,
		levels: make(map[fpdecimal.Decimal]*orderQueue),
		heap:   newPriceHeap(side == Buy),
	}
}

func (sb *sideBook) level(price fpdecimal.Decimal) *orderQueue {
	return sb.levels[price]
}

// getOrCreateLevel returns the queue at the given price, creating the level
// and registering its price with the heap when absent
func (sb *sideBook) getOrCreateLevel(price fpdecimal.Decimal) *orderQueue {
	if q, ok := sb.levels[price]; ok {
		return q
	}

	q := newOrderQueue(price)
	sb.levels[price] = q
	sb.heap.push(price)
	return q
}

// deleteLevel removes an emptied level from the mapping. Its price stays in
// the heap until a later scan discards it.
func (sb *sideBook) deleteLevel(price fpdecimal.Decimal) {
	delete(sb.levels, price)
}

func (sb *sideBook) pushPrice(price fpdecimal.Decimal) {
	sb.heap.push(price)
}

// peekBest returns the best price that currently has a non-empty level.
// Stale and duplicate heap entries encountered before the answer are popped
// for good.
func (sb *sideBook) peekBest() (fpdecimal.Decimal, bool) {
	for {
		price, ok := sb.heap.top()
		if !ok {
			return fpdecimal.Zero, false
		}

		if q, live := sb.levels[price]; live && !q.isEmpty() {
			return price, true
		}

		sb.heap.pop()
	}
}

// popBest is peekBest plus removal of the returned price from the heap. The
// caller re-pushes the price if the level retains liquidity afterwards.
func (sb *sideBook) popBest() (fpdecimal.Decimal, bool) {
	for {
		price, ok := sb.heap.pop()
		if !ok {
			return fpdecimal.Zero, false
		}

		if q, live := sb.levels[price]; live && !q.isEmpty() {
			return price, true
		}
	}
}

// sortedPrices returns all live prices best-to-worst
func (sb *sideBook) sortedPrices() []fpdecimal.Decimal {
	prices := make([]fpdecimal.Decimal, 0, len(sb.levels))
	for price := range sb.levels {
		prices = append(prices, price)
	}

	if sb.side == Buy {
		sort.Slice(prices, func(i, j int) bool { return prices[j].LessThan(prices[i]) })
	} else {
		sort.Slice(prices, func(i, j int) bool { return prices[i].LessThan(prices[j]) })
	}

	return prices
}

// depth returns up to n levels as (price, total quantity), best-to-worst
func (sb *sideBook) depth(n int) []Quote {
	prices := sb.sortedPrices()
	if n < len(prices) {
		prices = prices[:n]
	}

	result := make([]Quote, 0, len(prices))
	for _, price := range prices {
		result = append(result, Quote{
			Price:    price,
			Quantity: sb.levels[price].totalQuantity(),
		})
	}
	return result
}

// String implements fmt.Stringer interface
func (sb *sideBook) String() string {
	builder := strings.Builder{}
	for _, price := range sb.sortedPrices() {
		q := sb.levels[price]
		builder.WriteString(fmt.Sprintf("\n%s -> orders: %d, quantity: %d", price.String(), q.len(), q.totalQuantity()))
	}
	return builder.String()
}
