// Package ring implements a bounded, slot-based byte ring used to hand
// frames from log call sites to a transport worker.
package ring

import (
	"encoding/binary"
	"io"
	"sync"
)

const sizePrefix = 2

// Ring stores up to capacity items of at most itemSize bytes each. Writers
// never block; readers wait for items, copy them out and acknowledge them once
// delivered. Read but unacknowledged items can be rewound and read again.
type Ring struct {
	data          []byte
	readCond      sync.Cond // Awaited by readers, notified by writers.
	writeCond     sync.Cond // Awaited by drainers, notified by readers.
	mu            sync.Mutex
	slotSize      int
	startIdx      int
	awaitingAck   int
	length        int
	capacity      int
	itemsWritten  uint64
	itemsRead     uint64
	closed        bool
	closedWriting bool
}

func New(capacity int, itemSize int) (r *Ring) {
	if capacity < 1 {
		capacity = 1
	}

	slotSize := sizePrefix + itemSize

	r = &Ring{
		data:     make([]byte, slotSize*capacity),
		slotSize: slotSize,
		capacity: capacity,
	}

	r.readCond.L = &r.mu
	r.writeCond.L = &r.mu

	return
}

// MaxItemSize is the largest item Put accepts.
func (r *Ring) MaxItemSize() int {
	return r.slotSize - sizePrefix
}

// Put copies b into the next free slot. It returns false without blocking
// when the ring is full, closed for writing, or b is too large.
func (r *Ring) Put(b []byte) bool {
	if len(b) > r.MaxItemSize() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closedWriting || r.length >= r.capacity {
		return false
	}

	slot := r.slot(r.index(r.length))
	binary.BigEndian.PutUint16(slot, uint16(len(b)))
	copy(slot[sizePrefix:], b)

	r.length++
	r.itemsWritten++
	r.readCond.Signal()
	return true
}

// Wait blocks until there is at least one unread item. It returns io.EOF
// once writing is closed and everything has been read, and io.ErrClosedPipe
// after Close.
func (r *Ring) Wait() (unread int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for r.unread() == 0 && !r.closed {
		if r.closedWriting {
			return 0, io.EOF
		}

		r.readCond.Wait()
	}

	if r.closed {
		return 0, io.ErrClosedPipe
	}

	return r.unread(), nil
}

// Read copies the next unread item into dst and marks it as read. The item
// stays in the ring until Ack; Rewind makes it unread again. Delivery of the
// copy happens outside the ring's lock, so Put never waits on a transport.
func (r *Ring) Read(dst []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.unread() == 0 {
		return 0, io.EOF
	}

	slot := r.slot(r.index(r.awaitingAck))
	size := int(binary.BigEndian.Uint16(slot))

	if len(dst) < size {
		return 0, io.ErrShortBuffer
	}

	n = copy(dst, slot[sizePrefix:sizePrefix+size])
	r.awaitingAck++
	r.itemsRead++
	return
}

// Ack releases the oldest read item.
func (r *Ring) Ack() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.awaitingAck == 0 {
		return
	}

	r.awaitingAck--
	r.length--
	r.startIdx = r.index(1)
	r.writeCond.Broadcast()
}

// Rewind marks every read but unacknowledged item as unread again.
func (r *Ring) Rewind() (count int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count = r.awaitingAck
	r.awaitingAck = 0

	if count > 0 {
		r.readCond.Broadcast()
	}

	return
}

// WaitUntilEmpty blocks until every item has been acknowledged.
func (r *Ring) WaitUntilEmpty() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for r.length > 0 && !r.closed {
		r.writeCond.Wait()
	}

	if r.closed {
		return io.ErrClosedPipe
	}

	return nil
}

func (r *Ring) CloseWriting() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.closedWriting {
		r.closedWriting = true
		r.readCond.Broadcast()
	}
}

func (r *Ring) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.closed {
		r.closed = true
		r.closedWriting = true
		r.readCond.Broadcast()
		r.writeCond.Broadcast()
	}
}

func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.length
}

func (r *Ring) Unread() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.unread()
}

func (r *Ring) ItemsWritten() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.itemsWritten
}

func (r *Ring) ItemsRead() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.itemsRead
}

func (r *Ring) unread() int {
	return r.length - r.awaitingAck
}

func (r *Ring) slot(index int) []byte {
	index *= r.slotSize
	return r.data[index : index+r.slotSize]
}

func (r *Ring) index(offset int) int {
	return (r.startIdx + offset) % r.capacity
}
