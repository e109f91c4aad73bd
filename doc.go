// Package vec implements a generic resizable-array container (vector) built
// on raw, logically uninitialized storage.
//
// # Overview
//
// A Vector owns exactly one storage block and a live-element count. The
// block can hold up to Cap() elements but only the first Len() of them are
// live; the rest is uninitialized storage that the vector fills and vacates
// as elements come and go. This layout gives:
//
//   - Amortized O(1) append with doubling growth
//   - Arbitrary-position insert and erase
//   - Explicit capacity control (Reserve, Resize)
//   - Deterministic resource release for element types that own resources
//
// # Basic Usage
//
//	v := vec.New[int]()
//	defer v.Destroy()
//
//	_ = v.PushBack(1)
//	_ = v.PushBack(2)
//	_, _ = v.Insert(1, 99) // [1 99 2]
//	_ = v.Erase(0)         // [99 2]
//
//	for i, x := range v.All() {
//		fmt.Println(i, x)
//	}
//
// # Element Lifecycle
//
// Element types may opt into richer lifecycles through small interfaces,
// probed once when a vector is created:
//
//   - Cloner: fallible duplication, used by Clone and Assign
//   - Mover: fallible ownership transfer, used when elements are relocated
//   - Initializer: fallible default construction, used by NewWithSize and
//     Resize
//   - Disposer: resource release, invoked whenever an element is destroyed
//
// Types implementing none of these are trivial: duplication and transfer
// are plain assignments and never fail.
//
// # Failure Guarantees
//
// Every operation that prepares its result in fresh storage (NewWithSize,
// Clone, Reserve, and any growing PushBack, EmplaceBack, Insert or Emplace)
// commits by swap: if an element operation fails partway, everything placed
// so far is destroyed in reverse order and the vector is left exactly as it
// was. Operations that mutate live slots in place (Assign within capacity,
// interior Insert, Erase) have no spare storage to stage a rollback in; a
// failure there leaves elements valid but possibly moved-from. Each method
// documents which guarantee it gives.
//
// # Thread Safety
//
// A Vector is not safe for concurrent use. Every instance owns its storage
// exclusively and assumes single-threaded access; there is no locked
// variant.
//
// # Performance Characteristics
//
//   - PushBack/EmplaceBack: O(1) amortized
//   - Insert/Erase at position p: O(Len() - p)
//   - Reserve/Resize growth: O(Len())
//   - Swap, TakeFrom, Len, Cap, At: O(1)
package vec
