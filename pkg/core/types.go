package core

import (
	"encoding/json"
	"time"

	"github.com/nikolaydubina/fpdecimal"
)

// Trade is an immutable record of one execution. The price is always the
// resting order's price; the aggressor never trades at its own limit.
type Trade struct {
	BuyOrderID  uint64
	SellOrderID uint64
	Price       fpdecimal.Decimal
	Quantity    int64
	Timestamp   time.Time
}

// MarshalJSON implements Marshaler interface
func (t Trade) MarshalJSON() ([]byte, error) {
	customStruct := struct {
		BuyOrderID  uint64    `json:"buyOrderID"`
		SellOrderID uint64    `json:"sellOrderID"`
		Price       string    `json:"price"`
		Quantity    int64     `json:"quantity"`
		Timestamp   time.Time `json:"timestamp"`
	}{
		BuyOrderID:  t.BuyOrderID,
		SellOrderID: t.SellOrderID,
		Price:       t.Price.String(),
		Quantity:    t.Quantity,
		Timestamp:   t.Timestamp,
	}
	return json.Marshal(customStruct)
}

// Quote is one visible level of the book: a price and the total resting
// quantity at that price.
type Quote struct {
	Price    fpdecimal.Decimal
	Quantity int64
}

// MarshalJSON implements Marshaler interface
func (q Quote) MarshalJSON() ([]byte, error) {
	customStruct := struct {
		Price    string `json:"price"`
		Quantity int64  `json:"quantity"`
	}{
		Price:    q.Price.String(),
		Quantity: q.Quantity,
	}
	return json.Marshal(customStruct)
}

// orderRef locates a resting order: its side, price level and queue node.
// An entry exists in the order index if and only if the order is resting.
type orderRef struct {
	side  Side
	price fpdecimal.Decimal
	node  *orderNode
}
