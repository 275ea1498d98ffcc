package arr

import "strings"

// ─────────────────────────────────────────────────────────────────────────────
// Dot-notation access
// ─────────────────────────────────────────────────────────────────────────────

// Get resolves the dot-notation path against target.
// Returns def[0] (or nil) when any segment of the path does not exist.
//
//	Get(m, "user.address.city")        // "London"
//	Get(m, "user.missing", "default")  // "default"
func Get(target any, path string, def ...any) any {
	if v, ok := Lookup(target, path); ok {
		return v
	}
	if len(def) > 0 {
		return def[0]
	}
	return nil
}

// Lookup resolves the dot-notation path against target and reports whether
// every segment was found. An empty path resolves to target itself.
func Lookup(target any, path string) (any, bool) {
	if path == "" {
		return target, true
	}
	current := target
	for _, seg := range strings.Split(path, ".") {
		next, ok := segment(current, seg)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Has reports whether the dot-notation path exists in target.
func Has(target any, path string) bool {
	_, ok := Lookup(target, path)
	return ok
}

// HasAll reports whether all dot-notation paths exist in target.
func HasAll(target any, paths ...string) bool {
	for _, p := range paths {
		if !Has(target, p) {
			return false
		}
	}
	return true
}

// HasAny reports whether any of the dot-notation paths exist in target.
func HasAny(target any, paths ...string) bool {
	for _, p := range paths {
		if Has(target, p) {
			return true
		}
	}
	return false
}
