package core

import (
	"github.com/nikolaydubina/fpdecimal"
)

// orderNode is a member of an orderQueue's doubly linked list. A pointer to
// the node is the handle used for O(1) cancellation; once the node is
// unlinked its queue field is cleared, which makes stale handles detectable.
type orderNode struct {
	order *Order
	prev  *orderNode
	next  *orderNode
	queue *orderQueue
}

// orderQueue is the FIFO sequence of resting orders at a single price level.
// Append and pop-front are O(1); removal of an arbitrary member is O(1) given
// its node. The total resting quantity is cached and updated incrementally so
// depth reporting does not traverse the list.
type orderQueue struct {
	price    fpdecimal.Decimal
	head     *orderNode
	tail     *orderNode
	size     int
	totalQty int64
}

func newOrderQueue(price fpdecimal.Decimal) *orderQueue {
	return &orderQueue{price: price}
}

// append inserts the order at the tail and returns its node handle
func (q *orderQueue) append(order *Order) *orderNode {
	node := &orderNode{order: order, queue: q}

	if q.tail == nil {
		q.head = node
		q.tail = node
	} else {
		node.prev = q.tail
		q.tail.next = node
		q.tail = node
	}

	q.size++
	q.totalQty += order.Quantity()
	return node
}

// front returns the earliest-inserted order without removing it
func (q *orderQueue) front() (*Order, error) {
	if q.head == nil {
		return nil, ErrEmptyQueue
	}
	return q.head.order, nil
}

// popFront removes and returns the earliest-inserted order
func (q *orderQueue) popFront() (*Order, error) {
	if q.head == nil {
		return nil, ErrEmptyQueue
	}

	node := q.head
	q.unlink(node)
	return node.order, nil
}

// remove unlinks the referenced member regardless of its position
func (q *orderQueue) remove(node *orderNode) error {
	if node.queue != q {
		return ErrStaleHandle
	}

	q.unlink(node)
	return nil
}

func (q *orderQueue) unlink(node *orderNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		q.head = node.next
	}

	if node.next != nil {
		node.next.prev = node.prev
	} else {
		q.tail = node.prev
	}

	node.prev = nil
	node.next = nil
	node.queue = nil

	q.size--
	q.totalQty -= node.order.Quantity()
}

// reduce lowers the cached total after a partial fill of a resting member
func (q *orderQueue) reduce(quantity int64) {
	q.totalQty -= quantity
}

func (q *orderQueue) isEmpty() bool {
	return q.head == nil
}

// totalQuantity returns the sum of remaining quantities of all members
func (q *orderQueue) totalQuantity() int64 {
	return q.totalQty
}

func (q *orderQueue) len() int {
	return q.size
}
