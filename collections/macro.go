package collections

import (
	"fmt"
	"slices"
	"sync"
)

// MacroFunc extends both containers with a named operation at runtime.
//
// target is the *Collection[K, V] or *LazySequence[K, V] the macro was
// invoked on, boxed as any because one macro serves every key/value
// instantiation. Assert it to the shape the macro expects.
type MacroFunc func(target any, args ...any) any

type macroTable struct {
	mu    sync.RWMutex
	funcs map[string]MacroFunc
}

func (t *macroTable) lookup(name string) (MacroFunc, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn, ok := t.funcs[name]
	return fn, ok
}

func (t *macroTable) store(name string, fn MacroFunc) (replaced bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.funcs == nil {
		t.funcs = make(map[string]MacroFunc)
	}
	_, replaced = t.funcs[name]
	t.funcs[name] = fn
	return replaced
}

var macros macroTable

// RegisterMacro stores fn under name, replacing (and logging at debug
// level) any macro already registered with that name. Safe for concurrent
// use.
//
//	collections.RegisterMacro("evens", func(target any, _ ...any) any {
//	    c := target.(*collections.Collection[int, int])
//	    return c.Filter(func(n, _ int) bool { return n%2 == 0 })
//	})
//
//	res, _ := collections.New(1, 2, 3, 4, 5).Macro("evens") // {1: 2, 3: 4}
func RegisterMacro(name string, fn MacroFunc) {
	if macros.store(name, fn) {
		logger().Debug().Str("macro", name).Msg("replacing registered macro")
	}
}

// HasMacro reports whether name is registered.
func HasMacro(name string) bool {
	_, ok := macros.lookup(name)
	return ok
}

// MacroNames lists the registered macro names in lexical order.
func MacroNames() []string {
	macros.mu.RLock()
	defer macros.mu.RUnlock()
	names := make([]string, 0, len(macros.funcs))
	for name := range macros.funcs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// FlushMacros forgets every registered macro.
func FlushMacros() {
	macros.mu.Lock()
	defer macros.mu.Unlock()
	macros.funcs = nil
}

// CallMacro runs the macro registered under name against target.
// An unknown name yields [ErrMacroNotFound].
func CallMacro(name string, target any, args ...any) (any, error) {
	fn, ok := macros.lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMacroNotFound, name)
	}
	return fn(target, args...), nil
}

// Macro runs the named macro with c as its target.
func (c *Collection[K, V]) Macro(name string, args ...any) (any, error) {
	return CallMacro(name, c, args...)
}

// Macro runs the named macro with s as its target. Nothing is pulled from s
// unless the macro itself calls a terminal operation.
func (s *LazySequence[K, V]) Macro(name string, args ...any) (any, error) {
	return CallMacro(name, s, args...)
}
