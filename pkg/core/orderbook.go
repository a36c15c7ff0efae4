package core

import (
	"strings"
	"time"

	"github.com/nikolaydubina/fpdecimal"
	"github.com/rs/zerolog"
)

// DefaultDepthLevels is the number of levels Depth reports when the caller
// does not ask for a specific count.
const DefaultDepthLevels = 5

// OrderBook is a single-instrument limit order book with price-time
// priority: best price first, FIFO among orders at the same price. All
// methods are synchronous and run to completion; the book itself performs no
// locking, so callers sharing one instance across goroutines must serialize
// access externally.
type OrderBook struct {
	bids   *sideBook
	asks   *sideBook
	orders map[uint64]orderRef
	trades []Trade
	nextID uint64
	logger zerolog.Logger
}

// BookOption configures an OrderBook
type BookOption func(*OrderBook)

// WithLogger attaches a logger for debug-level trade and cancel events
func WithLogger(logger zerolog.Logger) BookOption {
	return func(ob *OrderBook) {
		ob.logger = logger
	}
}

// NewOrderBook creates an empty order book
func NewOrderBook(opts ...BookOption) *OrderBook {
	ob := &OrderBook{
		bids:   newSideBook(Buy),
		asks:   newSideBook(Sell),
		orders: make(map[uint64]orderRef),
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(ob)
	}

	return ob
}

// orderParams carries the optional attributes of a submission
type orderParams struct {
	id        uint64
	hasID     bool
	timestamp time.Time
}

// OrderOption configures a single order submission
type OrderOption func(*orderParams)

// WithOrderID submits the order under a caller-chosen id instead of a
// generated one. Submission fails if the id already identifies a resting
// order.
func WithOrderID(id uint64) OrderOption {
	return func(p *orderParams) {
		p.id = id
		p.hasID = true
	}
}

// WithTimestamp overrides the submission timestamp
func WithTimestamp(t time.Time) OrderOption {
	return func(p *orderParams) {
		p.timestamp = t
	}
}

// AddLimitOrder submits a limit order, matches it against the opposite side
// and rests any unfilled remainder on the book. It returns the order id.
func (ob *OrderBook) AddLimitOrder(side Side, price fpdecimal.Decimal, quantity int64, opts ...OrderOption) (uint64, error) {
	params, err := ob.resolveParams(opts)
	if err != nil {
		return 0, err
	}

	order, err := NewLimitOrder(params.id, side, price, quantity, params.timestamp)
	if err != nil {
		return 0, err
	}

	ob.match(order)

	if order.Quantity() > 0 {
		ob.rest(order)
	}

	return order.ID(), nil
}

// AddMarketOrder submits a market order. It matches against the best
// available prices until filled or the opposite side is exhausted; any
// unfilled remainder is discarded, never rested. It returns the order id.
func (ob *OrderBook) AddMarketOrder(side Side, quantity int64, opts ...OrderOption) (uint64, error) {
	params, err := ob.resolveParams(opts)
	if err != nil {
		return 0, err
	}

	order, err := NewMarketOrder(params.id, side, quantity, params.timestamp)
	if err != nil {
		return 0, err
	}

	ob.match(order)

	if order.Quantity() > 0 {
		ob.logger.Debug().
			Uint64("order_id", order.ID()).
			Int64("discarded", order.Quantity()).
			Msg("market order remainder discarded")
	}

	return order.ID(), nil
}

// CancelOrder removes a resting order from the book. It returns false when
// the id is unknown, already fully executed or already canceled; a cancel
// losing that race is an expected outcome, not an error.
func (ob *OrderBook) CancelOrder(id uint64) bool {
	ref, ok := ob.orders[id]
	if !ok {
		return false
	}

	side := ob.sideBookFor(ref.side)
	level := side.level(ref.price)
	if level == nil || level.remove(ref.node) != nil {
		delete(ob.orders, id)
		return false
	}

	if level.isEmpty() {
		side.deleteLevel(ref.price)
	}

	delete(ob.orders, id)

	ob.logger.Debug().
		Uint64("order_id", id).
		Str("side", ref.side.String()).
		Str("price", ref.price.String()).
		Msg("order canceled")

	return true
}

// BestBid returns the highest bid price and the total quantity resting at it
func (ob *OrderBook) BestBid() (Quote, bool) {
	return ob.bestOf(ob.bids)
}

// BestAsk returns the lowest ask price and the total quantity resting at it
func (ob *OrderBook) BestAsk() (Quote, bool) {
	return ob.bestOf(ob.asks)
}

// Depth returns up to levels price levels of the given side, best-to-worst.
// A non-positive levels value reports DefaultDepthLevels.
func (ob *OrderBook) Depth(side Side, levels int) []Quote {
	if levels <= 0 {
		levels = DefaultDepthLevels
	}
	return ob.sideBookFor(side).depth(levels)
}

// Trades returns a copy of the full execution history in trade order
func (ob *OrderBook) Trades() []Trade {
	trades := make([]Trade, len(ob.trades))
	copy(trades, ob.trades)
	return trades
}

// GetOrder returns a copy of the resting order with the given id, or nil if
// it is not on the book. Mutating the returned order has no effect on book
// state.
func (ob *OrderBook) GetOrder(id uint64) *Order {
	ref, ok := ob.orders[id]
	if !ok {
		return nil
	}
	order := *ref.node.order
	return &order
}

// OpenOrders returns the number of orders currently resting on the book
func (ob *OrderBook) OpenOrders() int {
	return len(ob.orders)
}

// String implements fmt.Stringer interface
func (ob *OrderBook) String() string {
	builder := strings.Builder{}
	builder.WriteString("Ask:")
	builder.WriteString(ob.asks.String())
	builder.WriteString("\nBid:")
	builder.WriteString(ob.bids.String())
	builder.WriteString("\n")
	return builder.String()
}

// private methods

// resolveParams applies submission options, fills in defaults and rejects
// duplicate caller-supplied ids before any structure is touched
func (ob *OrderBook) resolveParams(opts []OrderOption) (orderParams, error) {
	var params orderParams
	for _, opt := range opts {
		opt(&params)
	}

	if params.hasID {
		if _, exists := ob.orders[params.id]; exists {
			return params, ErrDuplicateOrderID
		}
	} else {
		params.id = ob.nextFreeID()
	}

	if params.timestamp.IsZero() {
		params.timestamp = time.Now()
	}

	return params, nil
}

// nextFreeID advances the monotonic counter, skipping ids that a caller has
// already placed on the book
func (ob *OrderBook) nextFreeID() uint64 {
	for {
		ob.nextID++
		if _, taken := ob.orders[ob.nextID]; !taken {
			return ob.nextID
		}
	}
}

func (ob *OrderBook) sideBookFor(side Side) *sideBook {
	if side == Buy {
		return ob.bids
	}
	return ob.asks
}

// match sweeps the opposite side best-price-first, trading FIFO within each
// level, until the incoming order is exhausted, liquidity runs out, or the
// incoming limit price stops crossing.
func (ob *OrderBook) match(incoming *Order) {
	opposite := ob.sideBookFor(incoming.Side().Opposite())

	for incoming.Quantity() > 0 {
		price, ok := opposite.popBest()
		if !ok {
			break
		}

		if !incoming.crosses(price) {
			// Restore the price for future orders
			opposite.pushPrice(price)
			break
		}

		level := opposite.level(price)

		for incoming.Quantity() > 0 {
			resting, err := level.front()
			if err != nil {
				break
			}

			traded := min(incoming.Quantity(), resting.Quantity())
			ob.recordTrade(incoming, resting, price, traded)

			incoming.DecreaseQuantity(traded)
			resting.DecreaseQuantity(traded)
			level.reduce(traded)

			if resting.Quantity() == 0 {
				// Fully consumed, never re-enqueued
				level.popFront()
				delete(ob.orders, resting.ID())
			}
		}

		if level.isEmpty() {
			opposite.deleteLevel(price)
		} else {
			opposite.pushPrice(price)
		}
	}
}

// rest inserts the order, or its remainder after matching, on its own side
func (ob *OrderBook) rest(order *Order) {
	if order.IsMarketOrder() {
		// Unreachable through the public API: market orders never rest
		panic(ErrRestingMarketOrder)
	}

	side := ob.sideBookFor(order.Side())
	level := side.getOrCreateLevel(order.Price())
	node := level.append(order)

	ob.orders[order.ID()] = orderRef{
		side:  order.Side(),
		price: order.Price(),
		node:  node,
	}
}

// recordTrade appends one execution at the resting order's price
func (ob *OrderBook) recordTrade(incoming, resting *Order, price fpdecimal.Decimal, quantity int64) {
	buyID, sellID := resting.ID(), incoming.ID()
	if incoming.Side() == Buy {
		buyID, sellID = incoming.ID(), resting.ID()
	}

	ob.trades = append(ob.trades, Trade{
		BuyOrderID:  buyID,
		SellOrderID: sellID,
		Price:       price,
		Quantity:    quantity,
		Timestamp:   time.Now(),
	})

	ob.logger.Debug().
		Uint64("buy_order_id", buyID).
		Uint64("sell_order_id", sellID).
		Str("price", price.String()).
		Int64("quantity", quantity).
		Msg("trade executed")
}

func (ob *OrderBook) bestOf(side *sideBook) (Quote, bool) {
	price, ok := side.peekBest()
	if !ok {
		return Quote{}, false
	}

	return Quote{
		Price:    price,
		Quantity: side.level(price).totalQuantity(),
	}, true
}
