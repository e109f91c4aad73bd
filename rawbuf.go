package vec

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// ErrCapacityOverflow is returned when a requested capacity is negative or
// would exceed the addressable range for the element type.
var ErrCapacityOverflow = errors.New("vec: capacity overflow")

// RawBuffer owns a storage block for up to Cap() elements of type T. The
// block is logically uninitialized: the buffer tracks no element liveness
// and never touches element contents. Callers construct into and destroy
// through the slots it hands out, and must destroy every live element
// before the block is released or replaced.
//
// A RawBuffer must not be duplicated by plain struct assignment; ownership
// moves through Swap (or moveFrom), which empties the source.
type RawBuffer[T any] struct {
	base     unsafe.Pointer // start of the block, nil when capacity is 0
	capacity int

	// mem anchors the allocation so pointers derived from base stay valid.
	mem []T
}

// NewRawBuffer allocates storage for capacity elements of T. A capacity of
// zero allocates nothing and yields the null buffer. Unsatisfiable requests
// (negative capacity, or element size times capacity overflowing the
// addressable range) fail with ErrCapacityOverflow before any state exists.
func NewRawBuffer[T any](capacity int) (RawBuffer[T], error) {
	if capacity == 0 {
		return RawBuffer[T]{}, nil
	}
	if capacity < 0 {
		return RawBuffer[T]{}, errors.Wrapf(ErrCapacityOverflow, "allocate %d elements", capacity)
	}
	if esz := sizeOf[T](); esz > 0 && uintptr(capacity) > uintptr(math.MaxInt)/esz {
		return RawBuffer[T]{}, errors.Wrapf(ErrCapacityOverflow, "allocate %d elements of %d bytes", capacity, esz)
	}
	mem := make([]T, capacity)
	return RawBuffer[T]{
		base:     unsafe.Pointer(&mem[0]),
		capacity: capacity,
		mem:      mem,
	}, nil
}

// Cap returns the number of element slots the block can hold.
func (b *RawBuffer[T]) Cap() int {
	return b.capacity
}

// At returns the address of the offset-th slot. offset may equal Cap(): the
// one-past-end address is legal to compute, never to dereference.
func (b *RawBuffer[T]) At(offset int) *T {
	if offset < 0 || offset > b.capacity {
		panic("vec: buffer offset out of range")
	}
	return (*T)(unsafe.Add(b.base, uintptr(offset)*sizeOf[T]()))
}

// Index returns the i-th slot as an already-constructed element. It is a
// thin accessor: i must be below Cap(), and the slot must hold a live
// element, which the buffer has no way to check.
func (b *RawBuffer[T]) Index(i int) *T {
	if i < 0 || i >= b.capacity {
		panic("vec: buffer index out of range")
	}
	return &b.mem[i]
}

// Swap exchanges the two buffers' blocks and capacities in O(1) without
// touching elements.
func (b *RawBuffer[T]) Swap(other *RawBuffer[T]) {
	*b, *other = *other, *b
}

// Release drops the block, returning the buffer to the null state. All
// live elements must have been destroyed by the caller first.
func (b *RawBuffer[T]) Release() {
	*b = RawBuffer[T]{}
}

// moveFrom takes ownership of src's block, emptying src. The receiver's
// previous block is dropped; its elements must already be destroyed.
func (b *RawBuffer[T]) moveFrom(src *RawBuffer[T]) {
	*b = *src
	*src = RawBuffer[T]{}
}

func sizeOf[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}
