package collections

import (
	"fmt"
	"reflect"
)

// spreadable is implemented by every Collection so that MapSpread can unpack
// nested collections without knowing their type arguments.
type spreadable interface {
	spreadValues() []any
}

func (c *Collection[K, V]) spreadValues() []any {
	out := make([]any, len(c.values))
	for i, v := range c.values {
		out[i] = v
	}
	return out
}

// MapSpread calls fn with the elements of every value spread as individual
// arguments. Each value must be a slice, an array or a Collection; fn must
// be a func whose first result is assignable to U.
//
//	sums, err := collections.MapSpread[int](
//	    collections.New([]int{1, 2}, []int{3, 4}),
//	    func(a, b int) int { return a + b },
//	) // → [3, 7]
//
// Returns [ErrArity] when a value holds a different number of elements than
// fn accepts, and [ErrInvalidArgument] when fn is not a func or a value
// cannot be spread.
func MapSpread[U any, K comparable, V any](c *Collection[K, V], fn any) (*Collection[K, U], error) {
	call, err := spreader[K, V, U](fn)
	if err != nil {
		return nil, err
	}
	return collect[K, U](&tryMapIter[K, V, U]{source: c.Iter(), fn: call})
}

// LazyMapSpread is the deferred form of [MapSpread]. Invalid arguments are
// reported by the terminal operation.
func LazyMapSpread[U any, K comparable, V any](s *LazySequence[K, V], fn any) *LazySequence[K, U] {
	call, err := spreader[K, V, U](fn)
	if err != nil {
		return failed[K, U](err)
	}
	return &LazySequence[K, U]{source: func() Iterator[K, U] {
		return &tryMapIter[K, V, U]{source: s.source(), fn: call}
	}}
}

// spreader validates fn once and returns a callback applying it to the
// elements of a single value.
func spreader[K comparable, V, U any](fn any) (func(V, K) (U, error), error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, fmt.Errorf("%w: spread callback must be a func, got %T", ErrInvalidArgument, fn)
	}
	ft := fv.Type()
	want := reflect.TypeFor[U]()
	if ft.NumOut() == 0 || !ft.Out(0).AssignableTo(want) {
		return nil, fmt.Errorf("%w: spread callback %s does not return %s", ErrInvalidArgument, ft, want)
	}

	return func(v V, _ K) (U, error) {
		var out U
		args, err := spreadArgs(v)
		if err != nil {
			return out, err
		}
		in, err := callArgs(ft, args)
		if err != nil {
			return out, err
		}
		reflect.ValueOf(&out).Elem().Set(fv.Call(in)[0])
		return out, nil
	}, nil
}

func spreadArgs(v any) ([]any, error) {
	if s, ok := v.(spreadable); ok {
		return s.spreadValues(), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: cannot spread %T", ErrInvalidArgument, v)
}

func callArgs(ft reflect.Type, args []any) ([]reflect.Value, error) {
	n := ft.NumIn()
	if ft.IsVariadic() {
		if len(args) < n-1 {
			return nil, fmt.Errorf("%w: %s needs at least %d arguments, got %d", ErrArity, ft, n-1, len(args))
		}
	} else if len(args) != n {
		return nil, fmt.Errorf("%w: %s needs %d arguments, got %d", ErrArity, ft, n, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var param reflect.Type
		if ft.IsVariadic() && i >= n-1 {
			param = ft.In(n - 1).Elem()
		} else {
			param = ft.In(i)
		}
		if a == nil {
			in[i] = reflect.Zero(param)
			continue
		}
		av := reflect.ValueOf(a)
		if !av.Type().AssignableTo(param) {
			return nil, fmt.Errorf("%w: argument %d is %s, want %s", ErrInvalidArgument, i, av.Type(), param)
		}
		in[i] = av
	}
	return in, nil
}
