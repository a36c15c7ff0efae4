package core

import (
	"testing"

	"github.com/nikolaydubina/fpdecimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceHeap_MinOrientation(t *testing.T) {
	h := newPriceHeap(false)

	for _, p := range []float64{101.0, 99.5, 100.0, 102.5} {
		h.push(fpdecimal.FromFloat(p))
	}

	var popped []string
	for {
		price, ok := h.pop()
		if !ok {
			break
		}
		popped = append(popped, price.String())
	}

	assert.Equal(t, []string{"99.500", "100.000", "101.000", "102.500"}, popped)
}

func TestPriceHeap_MaxOrientation(t *testing.T) {
	h := newPriceHeap(true)

	for _, p := range []float64{101.0, 99.5, 100.0, 102.5} {
		h.push(fpdecimal.FromFloat(p))
	}

	var popped []string
	for {
		price, ok := h.pop()
		if !ok {
			break
		}
		popped = append(popped, price.String())
	}

	assert.Equal(t, []string{"102.500", "101.000", "100.000", "99.500"}, popped)
}

func TestPriceHeap_Duplicates(t *testing.T) {
	h := newPriceHeap(false)

	h.push(fpdecimal.FromFloat(100.0))
	h.push(fpdecimal.FromFloat(100.0))
	h.push(fpdecimal.FromFloat(99.0))

	assert.Equal(t, 3, h.len())

	price, ok := h.pop()
	require.True(t, ok)
	assert.Equal(t, fpdecimal.FromFloat(99.0), price)

	price, ok = h.pop()
	require.True(t, ok)
	assert.Equal(t, fpdecimal.FromFloat(100.0), price)

	price, ok = h.pop()
	require.True(t, ok)
	assert.Equal(t, fpdecimal.FromFloat(100.0), price)
}

func TestPriceHeap_Empty(t *testing.T) {
	h := newPriceHeap(true)

	_, ok := h.top()
	assert.False(t, ok)

	_, ok = h.pop()
	assert.False(t, ok)
}
