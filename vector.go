package vec

import (
	"iter"

	"github.com/pkg/errors"
)

// Vector is a resizable array of T over a single exclusively owned storage
// block. Elements at positions [0, Len()) are live; the rest of the block
// up to Cap() is uninitialized storage. Create instances with New or
// NewWithSize; the zero value is not usable. Not goroutine-safe.
type Vector[T any] struct {
	data  RawBuffer[T]
	size  int
	lc    lifecycle[T]
	grows int // reallocations performed, reported by Metrics
}

// New returns an empty vector with no storage.
func New[T any]() *Vector[T] {
	return &Vector[T]{lc: resolveLifecycle[T]()}
}

// NewWithSize returns a vector of exactly size default-constructed elements
// and capacity equal to size. If any element's construction fails, the
// elements constructed so far are destroyed in reverse order, the storage
// is released, and the error is returned.
func NewWithSize[T any](size int) (*Vector[T], error) {
	v := New[T]()
	buf, err := NewRawBuffer[T](size)
	if err != nil {
		return nil, err
	}
	for i := 0; i < size; i++ {
		elem, err := v.lc.initDefault()
		if err != nil {
			v.lc.destroyRange(&buf, 0, i)
			buf.Release()
			return nil, errors.Wrapf(err, "vec: construct element %d", i)
		}
		*buf.At(i) = elem
	}
	v.data = buf
	v.size = size
	return v, nil
}

// Clone returns a deep copy of v with capacity equal to v.Len(). On an
// element clone failure the copies made so far are destroyed and the error
// is returned; v is never touched.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	buf, err := NewRawBuffer[T](v.size)
	if err != nil {
		return nil, err
	}
	for i := 0; i < v.size; i++ {
		elem, err := v.lc.clone(v.data.Index(i))
		if err != nil {
			v.lc.destroyRange(&buf, 0, i)
			buf.Release()
			return nil, errors.Wrapf(err, "vec: clone element %d", i)
		}
		*buf.At(i) = elem
	}
	return &Vector[T]{data: buf, size: v.size, lc: v.lc}, nil
}

// TakeFrom moves src's contents into v in O(1). v's previous elements are
// destroyed and its storage released; src is left empty (zero length, zero
// capacity) and may be reused or discarded. Never fails.
func (v *Vector[T]) TakeFrom(src *Vector[T]) {
	if v == src {
		return
	}
	v.lc.destroyRange(&v.data, 0, v.size)
	v.data.Release()
	v.data.moveFrom(&src.data)
	v.size = src.size
	v.grows = src.grows
	src.size = 0
	src.grows = 0
}

// Destroy destroys all live elements in reverse order and releases the
// storage, leaving an empty vector. Calling it is only required when the
// element type owns resources; the garbage collector reclaims the storage
// either way. Never fails.
func (v *Vector[T]) Destroy() {
	v.lc.destroyRange(&v.data, 0, v.size)
	v.data.Release()
	v.size = 0
}

// Assign replaces v's contents with a copy of src's.
//
// When src does not fit in v's current capacity the copy is built in a
// temporary and committed by swap, so a failure leaves v untouched. When it
// fits, live slots are overwritten in place: the first min(v.Len(),
// src.Len()) elements element-wise, then the surplus tail is destroyed or
// the extra elements are clone-constructed past the old length. A failure
// on the in-place path is returned with the overwrites already applied,
// since there is no spare storage to stage a rollback in; extra tail
// constructions are undone and the length keeps its old value.
func (v *Vector[T]) Assign(src *Vector[T]) error {
	if v == src {
		return nil
	}
	if src.size > v.data.Cap() {
		tmp, err := src.Clone()
		if err != nil {
			return err
		}
		v.Swap(tmp)
		tmp.Destroy()
		return nil
	}
	n := min(v.size, src.size)
	for i := 0; i < n; i++ {
		elem, err := v.lc.clone(src.data.Index(i))
		if err != nil {
			return errors.Wrapf(err, "vec: assign element %d", i)
		}
		v.lc.assignSlot(v.data.Index(i), elem)
	}
	switch {
	case src.size < v.size:
		v.lc.destroyRange(&v.data, src.size, v.size-src.size)
	case src.size > v.size:
		for i := v.size; i < src.size; i++ {
			elem, err := v.lc.clone(src.data.Index(i))
			if err != nil {
				v.lc.destroyRange(&v.data, v.size, i-v.size)
				return errors.Wrapf(err, "vec: assign element %d", i)
			}
			*v.data.At(i) = elem
		}
	}
	v.size = src.size
	return nil
}

// Reserve grows capacity to at least newCap; it never shrinks and is a
// no-op when newCap <= Cap(). Existing elements are relocated by moving
// when the element type's transfer cannot fail (or it cannot be cloned),
// and by cloning otherwise, so that any failure leaves v unchanged.
func (v *Vector[T]) Reserve(newCap int) error {
	if newCap <= v.data.Cap() {
		return nil
	}
	buf, err := NewRawBuffer[T](newCap)
	if err != nil {
		return err
	}
	if err := v.lc.transfer(&v.data, 0, v.size, &buf, 0); err != nil {
		buf.Release()
		return err
	}
	v.commit(&buf)
	return nil
}

// Resize sets the length to newSize. Shrinking destroys the trailing
// elements in reverse order and never fails. Growing reserves capacity
// first, then default-constructs the new tail; if a construction fails the
// new elements built so far are destroyed and the length keeps its old
// value (capacity may already have grown). Panics on negative newSize.
func (v *Vector[T]) Resize(newSize int) error {
	if newSize < 0 {
		panic("vec: negative size")
	}
	if newSize <= v.size {
		v.lc.destroyRange(&v.data, newSize, v.size-newSize)
		v.size = newSize
		return nil
	}
	if err := v.Reserve(newSize); err != nil {
		return err
	}
	for i := v.size; i < newSize; i++ {
		elem, err := v.lc.initDefault()
		if err != nil {
			v.lc.destroyRange(&v.data, v.size, i-v.size)
			return errors.Wrapf(err, "vec: construct element %d", i)
		}
		*v.data.At(i) = elem
	}
	v.size = newSize
	return nil
}

// PushBack appends value, taking ownership of it: on a growth failure the
// value is destroyed during rollback along with everything else placed in
// the abandoned buffer, and v is unchanged. Callers that need to keep an
// independent copy of a resource-owning value should clone it first.
func (v *Vector[T]) PushBack(value T) error {
	_, err := v.emplace(v.size, func() (T, error) { return value, nil })
	return err
}

// EmplaceBack appends the element produced by ctor, constructing it in
// place at the end of the vector, and returns a pointer to it. On any
// failure v is unchanged.
func (v *Vector[T]) EmplaceBack(ctor func() (T, error)) (*T, error) {
	return v.emplace(v.size, ctor)
}

// PopBack destroys the last element. Panics on an empty vector.
func (v *Vector[T]) PopBack() {
	if v.size == 0 {
		panic("vec: PopBack on empty vector")
	}
	v.lc.dispose(v.data.Index(v.size - 1))
	v.size--
}

// Insert places value at position pos (0 <= pos <= Len(); pos == Len()
// appends), shifting later elements right, and returns a pointer to the
// inserted element. Ownership and failure behavior match Emplace.
func (v *Vector[T]) Insert(pos int, value T) (*T, error) {
	return v.emplace(pos, func() (T, error) { return value, nil })
}

// Emplace inserts the element produced by ctor at position pos and returns
// a pointer to it. When growth is needed the element and the relocated
// neighbors are prepared in a fresh buffer and committed by swap, so any
// failure leaves v unchanged. Without growth, an interior insert shifts
// live elements in place; see emplaceInPlace for the weaker guarantee on
// that path. Panics when pos is outside [0, Len()].
func (v *Vector[T]) Emplace(pos int, ctor func() (T, error)) (*T, error) {
	return v.emplace(pos, ctor)
}

func (v *Vector[T]) emplace(pos int, ctor func() (T, error)) (*T, error) {
	if pos < 0 || pos > v.size {
		panic("vec: insert position out of range")
	}
	if v.size == v.data.Cap() {
		return v.emplaceGrow(pos, ctor)
	}
	return v.emplaceInPlace(pos, ctor)
}

// emplaceGrow inserts into a freshly allocated buffer: the new element is
// constructed at its final slot first, then the prefix [0, pos) and the
// suffix [pos, len) are relocated around it. Any phase's failure destroys
// whatever that phase and the new-element construction had already placed
// in the new buffer and leaves v untouched.
func (v *Vector[T]) emplaceGrow(pos int, ctor func() (T, error)) (*T, error) {
	newCap := 2 * v.data.Cap()
	if newCap == 0 {
		newCap = 1
	}
	buf, err := NewRawBuffer[T](newCap)
	if err != nil {
		return nil, err
	}
	elem, err := ctor()
	if err != nil {
		buf.Release()
		return nil, err
	}
	*buf.At(pos) = elem

	if err := v.lc.transfer(&v.data, 0, pos, &buf, 0); err != nil {
		v.lc.dispose(buf.At(pos))
		buf.Release()
		return nil, err
	}
	if err := v.lc.transfer(&v.data, pos, v.size-pos, &buf, pos+1); err != nil {
		v.lc.destroyRange(&buf, 0, pos)
		v.lc.dispose(buf.At(pos))
		buf.Release()
		return nil, err
	}
	v.commit(&buf)
	v.size++
	return v.data.Index(pos), nil
}

// emplaceInPlace inserts without reallocating. Appends construct directly
// into the next free slot; a ctor failure leaves v unchanged. Interior
// inserts build the value in a temporary, move the current last element
// into the trailing free slot, shift [pos, len-1) right by backward
// move-assignment, and assign the temporary into pos. A move failure
// mid-shift is returned with no rollback: the length has already grown by
// one and elements in the shifted range stay valid but possibly moved-from.
func (v *Vector[T]) emplaceInPlace(pos int, ctor func() (T, error)) (*T, error) {
	elem, err := ctor()
	if err != nil {
		return nil, err
	}
	if pos == v.size {
		*v.data.At(v.size) = elem
		v.size++
		return v.data.Index(pos), nil
	}

	oldSize := v.size
	last, err := v.lc.move(v.data.Index(oldSize - 1))
	if err != nil {
		v.lc.dispose(&elem)
		return nil, errors.Wrapf(err, "vec: move element %d", oldSize-1)
	}
	*v.data.At(oldSize) = last
	v.size = oldSize + 1

	for i := oldSize - 1; i > pos; i-- {
		moved, err := v.lc.move(v.data.Index(i - 1))
		if err != nil {
			v.lc.dispose(&elem)
			return nil, errors.Wrapf(err, "vec: move element %d", i-1)
		}
		v.lc.assignSlot(v.data.Index(i), moved)
	}
	v.lc.assignSlot(v.data.Index(pos), elem)
	return v.data.Index(pos), nil
}

// Erase removes the element at pos by move-assigning each later element one
// slot left, then destroying the vacated last slot; afterwards pos refers
// to the element that followed the removed one. A move failure mid-shift is
// returned with no rollback, since shifting has no prior checkpoint to
// restore: already-shifted elements stay in place, the remainder is valid
// but possibly moved-from, and the length is unchanged. Panics when pos is
// outside [0, Len()).
func (v *Vector[T]) Erase(pos int) error {
	if pos < 0 || pos >= v.size {
		panic("vec: erase position out of range")
	}
	for i := pos; i < v.size-1; i++ {
		moved, err := v.lc.move(v.data.Index(i + 1))
		if err != nil {
			return errors.Wrapf(err, "vec: move element %d", i+1)
		}
		v.lc.assignSlot(v.data.Index(i), moved)
	}
	v.lc.dispose(v.data.Index(v.size - 1))
	v.size--
	return nil
}

// At returns a pointer to the live element at index i, usable for both
// reads and writes. Panics when i is outside [0, Len()).
func (v *Vector[T]) At(i int) *T {
	if i < 0 || i >= v.size {
		panic("vec: index out of range")
	}
	return v.data.Index(i)
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the number of elements v can hold before it must reallocate.
func (v *Vector[T]) Cap() int {
	return v.data.Cap()
}

// Swap exchanges the two vectors' storage, lengths, and statistics in O(1).
// Never fails.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.data.Swap(&other.data)
	v.size, other.size = other.size, v.size
	v.grows, other.grows = other.grows, v.grows
}

// All returns a forward iterator over (index, element) pairs of the live
// range [0, Len()). The sequence is restartable: every range over it walks
// the live range from the start. Elements are yielded by value.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, *v.data.Index(i)) {
				return
			}
		}
	}
}

// Refs is All with mutable access: it yields pointers to the live elements.
// The pointers are invalidated by any operation that grows or replaces the
// storage.
func (v *Vector[T]) Refs() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, v.data.Index(i)) {
				return
			}
		}
	}
}

// commit destroys the old elements, adopts buf as the backing storage, and
// counts the reallocation. buf must already hold the relocated elements.
func (v *Vector[T]) commit(buf *RawBuffer[T]) {
	v.lc.destroyRange(&v.data, 0, v.size)
	v.data.Swap(buf)
	buf.Release()
	v.grows++
}
