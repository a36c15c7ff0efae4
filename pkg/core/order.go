package core

import (
	"encoding/json"
	"time"

	"github.com/nikolaydubina/fpdecimal"
)

// Side represents buy or sell side of the order
type Side int

// Order sides
const (
	Sell Side = iota
	Buy
)

// String returns side as string
func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Opposite returns the other side of the book
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// OrderType represents type of the order
type OrderType string

// Order types
const (
	TypeMarket OrderType = "MARKET"
	TypeLimit  OrderType = "LIMIT"
)

// Order stores information about a single order. Market orders carry a zero
// price, meaning "execute at the best available price". The quantity field is
// the remaining amount and decreases as fills occur; an order with zero
// remaining quantity never rests on the book.
type Order struct {
	id        uint64
	orderType OrderType
	side      Side
	price     fpdecimal.Decimal
	quantity  int64
	timestamp time.Time
}

// NewLimitOrder creates a limit order with the given limit price
func NewLimitOrder(orderID uint64, side Side, price fpdecimal.Decimal, quantity int64, timestamp time.Time) (*Order, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if price.LessThanOrEqual(fpdecimal.Zero) {
		return nil, ErrInvalidPrice
	}

	return &Order{
		id:        orderID,
		orderType: TypeLimit,
		side:      side,
		price:     price,
		quantity:  quantity,
		timestamp: timestamp,
	}, nil
}

// NewMarketOrder creates a market order with no price constraint
func NewMarketOrder(orderID uint64, side Side, quantity int64, timestamp time.Time) (*Order, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	return &Order{
		id:        orderID,
		orderType: TypeMarket,
		side:      side,
		price:     fpdecimal.Zero,
		quantity:  quantity,
		timestamp: timestamp,
	}, nil
}

// ID returns the order id
func (o *Order) ID() uint64 {
	return o.id
}

// Side returns side of the Order
func (o *Order) Side() Side {
	return o.side
}

// Price returns the limit price; zero for market orders
func (o *Order) Price() fpdecimal.Decimal {
	return o.price
}

// Quantity returns the remaining quantity
func (o *Order) Quantity() int64 {
	return o.quantity
}

// Timestamp returns the submission time. It is informational only; FIFO
// priority is established by queue position, not by comparing timestamps.
func (o *Order) Timestamp() time.Time {
	return o.timestamp
}

// OrderType returns the type of the Order
func (o *Order) OrderType() OrderType {
	return o.orderType
}

// IsMarketOrder returns true if Order is MARKET
func (o *Order) IsMarketOrder() bool {
	return o.orderType == TypeMarket
}

// IsLimitOrder returns true if Order is LIMIT
func (o *Order) IsLimitOrder() bool {
	return o.orderType == TypeLimit
}

// DecreaseQuantity reduces the remaining quantity after a fill
func (o *Order) DecreaseQuantity(quantity int64) {
	o.quantity -= quantity
}

// crosses reports whether the order accepts the given opposite-side price.
// Market orders accept any price.
func (o *Order) crosses(bookPrice fpdecimal.Decimal) bool {
	if o.IsMarketOrder() {
		return true
	}

	if o.side == Buy {
		return bookPrice.LessThanOrEqual(o.price)
	}
	return bookPrice.GreaterThanOrEqual(o.price)
}

// MarshalJSON implements custom JSON marshaling for Order
func (o *Order) MarshalJSON() ([]byte, error) {
	type OrderJSON struct {
		ID        uint64    `json:"id"`
		OrderType OrderType `json:"orderType"`
		Side      string    `json:"side"`
		Price     string    `json:"price"`
		Quantity  int64     `json:"quantity"`
		Timestamp time.Time `json:"timestamp"`
	}

	return json.Marshal(OrderJSON{
		ID:        o.id,
		OrderType: o.orderType,
		Side:      o.side.String(),
		Price:     o.price.String(),
		Quantity:  o.quantity,
		Timestamp: o.timestamp,
	})
}

// String implements Stringer interface
func (o *Order) String() string {
	j, _ := o.MarshalJSON()
	return string(j)
}
