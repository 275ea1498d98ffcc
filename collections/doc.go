// Package collections provides an eager, keyed [Collection] and a deferred,
// possibly infinite [LazySequence] sharing one vocabulary of chainable
// operators, inspired by Laravel's Illuminate/Collections.
//
// # Overview
//
// [Collection][K, V] is an ordered set of key/value entries. List-like
// collections (Collection[int, V]) are keyed 0, 1, 2, …; map-like collections carry
// caller keys:
//
//	result := collections.New(1, 2, 3, 4, 5, 6, 7, 8, 9, 10).
//	    Filter(func(n, _ int) bool { return n%2 == 0 }).
//	    SortByDesc(func(n int) float64 { return float64(n) }).
//	    Take(3).
//	    Implode(", ", strconv.Itoa) // → "10, 8, 6"
//
// # Immutability
//
// All transformation methods return a *new* Collection, leaving the original
// unchanged. Only [Collection.Push], [Collection.Pop] and [Collection.Put]
// modify their receiver.
//
// # Lazy sequences
//
// A [LazySequence] wraps a producer factory. Operators only compose; entries
// are pulled one at a time when a terminal operation runs, so infinite
// producers are fine as long as something bounds the run:
//
//	squares, err := collections.LazyMap(
//	    collections.Lazy(naturals),
//	    func(n, _ int) int { return n * n },
//	).Take(5).All() // → [0 1 4 9 16]
//
// Each terminal call restarts the producer. Errors from invalid operator
// arguments (a zero chunk size, a spread callback of the wrong arity) are
// returned by the terminal call, never at composition time.
//
// # Type-transforming operations
//
// Go generics do not allow methods to introduce new type parameters, so
// operations that change the key or value type are package-level functions:
//
//	// Method-based (type-preserving):
//	c.Map(func(n, _ int) int { return n * 2 })
//
//	// Package-level (returns *Collection[int, string], fully typed):
//	collections.Map(c, func(n, _ int) string { return strconv.Itoa(n) })
//
// Package-level functions: [Map], [FlatMap], [MapInto], [MapSpread],
// [MapToGroups], [Reduce], [GroupBy], [GroupByField], [KeyBy], [CountBy],
// [Zip], [ZipPairs], [Chunk], [Combine], [Collapse], [CollapseSlices],
// [Sort], [Sum], [Avg], [Min], [Max] and their lazy counterparts
// [LazyMap], [LazyFlatMap], [LazyMapInto], [LazyMapSpread], [LazyGroupBy],
// [LazyGroupByField], [LazyZip], [LazyChunk].
//
// # Macros (runtime extension)
//
// Register named functions at runtime via [RegisterMacro] and call them
// through [Collection.Macro] or [LazySequence.Macro]:
//
//	collections.RegisterMacro("evens", func(col any, _ ...any) any {
//	    c := col.(*collections.Collection[int, int])
//	    return c.Filter(func(n, _ int) bool { return n%2 == 0 })
//	})
//
//	evens, _ := collections.New(1, 2, 3, 4).Macro("evens")
//
// # Configuration
//
// [Configure] sets the zerolog logger used by Dump and the clockwork clock
// used by time-based lazy operators.
//
// # Portability
//
// The API mirrors standard functional-programming patterns
// (map/filter/reduce over pull iterators) that translate directly to other
// languages:
//
//   - JavaScript: generator functions and iterator helpers
//   - Python: generators and itertools
//   - Rust: Iterator adapter chains
package collections
