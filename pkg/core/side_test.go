package core

import (
	"testing"
	"time"

	"github.com/nikolaydubina/fpdecimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restAt(t *testing.T, sb *sideBook, id uint64, price float64, quantity int64) {
	t.Helper()
	order, err := NewLimitOrder(id, sb.side, fpdecimal.FromFloat(price), quantity, time.Now())
	require.NoError(t, err)
	sb.getOrCreateLevel(order.Price()).append(order)
}

func TestSideBook_PeekBestAsk(t *testing.T) {
	sb := newSideBook(Sell)

	restAt(t, sb, 1, 101.0, 100)
	restAt(t, sb, 2, 100.0, 50)
	restAt(t, sb, 3, 102.0, 200)

	price, ok := sb.peekBest()
	require.True(t, ok)
	assert.Equal(t, fpdecimal.FromFloat(100.0), price)
}

func TestSideBook_PeekBestBid(t *testing.T) {
	sb := newSideBook(Buy)

	restAt(t, sb, 1, 99.0, 100)
	restAt(t, sb, 2, 100.0, 50)
	restAt(t, sb, 3, 98.0, 200)

	price, ok := sb.peekBest()
	require.True(t, ok)
	assert.Equal(t, fpdecimal.FromFloat(100.0), price)
}

func TestSideBook_PeekBestEmpty(t *testing.T) {
	sb := newSideBook(Buy)

	_, ok := sb.peekBest()
	assert.False(t, ok)

	_, ok = sb.popBest()
	assert.False(t, ok)
}

func TestSideBook_LazyCleanupDiscardsStalePrices(t *testing.T) {
	sb := newSideBook(Sell)

	restAt(t, sb, 1, 100.0, 100)
	restAt(t, sb, 2, 101.0, 100)

	// Empty out the best level without touching the heap, as cancellation does
	level := sb.level(fpdecimal.FromFloat(100.0))
	_, err := level.popFront()
	require.NoError(t, err)
	sb.deleteLevel(fpdecimal.FromFloat(100.0))

	assert.Equal(t, 2, sb.heap.len())

	price, ok := sb.peekBest()
	require.True(t, ok)
	assert.Equal(t, fpdecimal.FromFloat(101.0), price)

	// The stale entry was evicted during the scan
	assert.Equal(t, 1, sb.heap.len())
}

func TestSideBook_PopBestSkipsDuplicates(t *testing.T) {
	sb := newSideBook(Sell)

	restAt(t, sb, 1, 100.0, 100)
	// Matching re-pushes prices of partially consumed levels, so duplicates
	// accumulate
	sb.pushPrice(fpdecimal.FromFloat(100.0))
	sb.pushPrice(fpdecimal.FromFloat(100.0))

	price, ok := sb.popBest()
	require.True(t, ok)
	assert.Equal(t, fpdecimal.FromFloat(100.0), price)

	// Level still live: remaining duplicates still resolve to it
	price, ok = sb.popBest()
	require.True(t, ok)
	assert.Equal(t, fpdecimal.FromFloat(100.0), price)
}

func TestSideBook_Depth(t *testing.T) {
	sb := newSideBook(Sell)

	restAt(t, sb, 1, 102.0, 300)
	restAt(t, sb, 2, 100.0, 100)
	restAt(t, sb, 3, 101.0, 200)
	restAt(t, sb, 4, 100.0, 50)

	depth := sb.depth(2)
	require.Len(t, depth, 2)
	assert.Equal(t, fpdecimal.FromFloat(100.0), depth[0].Price)
	assert.Equal(t, int64(150), depth[0].Quantity)
	assert.Equal(t, fpdecimal.FromFloat(101.0), depth[1].Price)
	assert.Equal(t, int64(200), depth[1].Quantity)

	assert.Len(t, sb.depth(10), 3)
}

func TestSideBook_DepthBidsDescending(t *testing.T) {
	sb := newSideBook(Buy)

	restAt(t, sb, 1, 98.0, 100)
	restAt(t, sb, 2, 99.0, 200)

	depth := sb.depth(5)
	require.Len(t, depth, 2)
	assert.Equal(t, fpdecimal.FromFloat(99.0), depth[0].Price)
	assert.Equal(t, fpdecimal.FromFloat(98.0), depth[1].Price)
}
