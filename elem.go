package vec

import "github.com/pkg/errors"

// Cloner is implemented by element types whose duplication can fail, for
// example because it acquires a resource. Clone must leave the receiver
// untouched.
type Cloner[T any] interface {
	Clone() (T, error)
}

// Mover is implemented by element types whose ownership transfer can fail
// and leave the source torn. A successful Move hands the resource to the
// returned value; the source slot is destroyed by the container afterwards,
// so Move should leave the receiver in a state Dispose tolerates.
//
// Vectors treat Mover types as unsafe to relocate by moving and fall back
// to Clone during growth when one is available.
type Mover[T any] interface {
	Move() (T, error)
}

// Initializer is implemented by element types whose default construction
// can fail. NewWithSize and Resize use it in place of the zero value; it is
// invoked on a zero-valued receiver.
type Initializer[T any] interface {
	InitDefault() (T, error)
}

// Disposer is implemented by element types that hold resources to release
// when an element is destroyed. Dispose must not fail and must tolerate
// zero-valued and moved-from receivers.
type Disposer interface {
	Dispose()
}

// lifecycle holds the element operations of one vector instantiation,
// resolved once at construction time by probing *T's method set.
type lifecycle[T any] struct {
	clone       func(src *T) (T, error)
	move        func(src *T) (T, error)
	initDefault func() (T, error)
	dispose     func(slot *T)

	// moveOnGrow selects the relocation strategy: move when the type's move
	// cannot fail or when it cannot be cloned, clone otherwise.
	moveOnGrow bool
}

func resolveLifecycle[T any]() lifecycle[T] {
	probe := any((*T)(nil))
	_, hasClone := probe.(Cloner[T])
	_, hasMove := probe.(Mover[T])
	_, hasInit := probe.(Initializer[T])
	_, hasDispose := probe.(Disposer)

	lc := lifecycle[T]{
		// Without a Mover the transfer is a plain assignment and cannot
		// fail; without a Cloner moving is the only option.
		moveOnGrow: !hasMove || !hasClone,
	}

	if hasClone {
		lc.clone = func(src *T) (T, error) { return any(src).(Cloner[T]).Clone() }
	} else {
		lc.clone = func(src *T) (T, error) { return *src, nil }
	}

	if hasMove {
		lc.move = func(src *T) (T, error) { return any(src).(Mover[T]).Move() }
	} else {
		lc.move = func(src *T) (T, error) {
			var zero T
			out := *src
			*src = zero
			return out, nil
		}
	}

	if hasInit {
		lc.initDefault = func() (T, error) {
			var zero T
			return any(&zero).(Initializer[T]).InitDefault()
		}
	} else {
		lc.initDefault = func() (T, error) {
			var zero T
			return zero, nil
		}
	}

	if hasDispose {
		lc.dispose = func(slot *T) {
			any(slot).(Disposer).Dispose()
			var zero T
			*slot = zero
		}
	} else {
		lc.dispose = func(slot *T) {
			var zero T
			*slot = zero
		}
	}

	return lc
}

// destroyRange destroys count live elements starting at slot first, in
// reverse order of construction.
func (lc *lifecycle[T]) destroyRange(buf *RawBuffer[T], first, count int) {
	for i := first + count - 1; i >= first; i-- {
		lc.dispose(buf.Index(i))
	}
}

// assignSlot replaces the live element in dst with elem, releasing the old
// element's resources first. elem must already be fully produced so this
// step itself cannot fail.
func (lc *lifecycle[T]) assignSlot(dst *T, elem T) {
	lc.dispose(dst)
	*dst = elem
}

// transfer relocates count elements from src starting at srcOff into dst
// starting at dstOff, moving when moveOnGrow allows it and cloning
// otherwise. On failure it destroys the elements it had already placed in
// dst, in reverse order, and returns the element's error; src slots are
// only mutated by moves that had already succeeded.
func (lc *lifecycle[T]) transfer(src *RawBuffer[T], srcOff, count int, dst *RawBuffer[T], dstOff int) error {
	op, verb := lc.clone, "clone"
	if lc.moveOnGrow {
		op, verb = lc.move, "move"
	}
	for i := 0; i < count; i++ {
		elem, err := op(src.Index(srcOff + i))
		if err != nil {
			lc.destroyRange(dst, dstOff, i)
			return errors.Wrapf(err, "vec: %s element %d", verb, srcOff+i)
		}
		*dst.At(dstOff + i) = elem
	}
	return nil
}
