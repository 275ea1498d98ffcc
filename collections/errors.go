package collections

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Collection and LazySequence operations.
// Match them with errors.Is; returned errors may carry extra context.
var (
	// ErrEmptyCollection is returned when an operation requires at least one
	// element but the collection is empty.
	ErrEmptyCollection = errors.New("collections: operation on empty collection")

	// ErrNoMatchingItems is returned by First / Last when no item satisfies
	// the predicate. It wraps ErrEmptyCollection.
	ErrNoMatchingItems = fmt.Errorf("%w: no items match the given condition", ErrEmptyCollection)

	// ErrIndexOutOfRange is returned when a position is outside [0, Count()-1].
	ErrIndexOutOfRange = errors.New("collections: index out of range")

	// ErrInvalidArgument is returned when an operator receives an argument
	// outside its domain.
	ErrInvalidArgument = errors.New("collections: invalid argument")

	// ErrInvalidChunkSize is returned when Chunk is called with size <= 0.
	ErrInvalidChunkSize = fmt.Errorf("%w: chunk size must be greater than 0", ErrInvalidArgument)

	// ErrArity is returned by MapSpread when a value does not hold exactly as
	// many elements as the callback accepts.
	ErrArity = errors.New("collections: argument count mismatch")

	// ErrKeyType is raised when an operation needs to mint sequential integer
	// keys on a collection whose key type cannot hold them.
	ErrKeyType = errors.New("collections: key type cannot hold sequential integer keys")

	// ErrJSONKeyCollision is returned by MarshalJSON when two distinct keys
	// render to the same JSON member name, such as 1 and "1".
	ErrJSONKeyCollision = errors.New("collections: keys collide as JSON member names")

	// ErrMacroNotFound is returned when an unregistered macro name is called.
	ErrMacroNotFound = errors.New("collections: macro not found")
)
