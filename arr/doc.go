// Package arr resolves dot-notation paths against structured values,
// mirroring Laravel's data_get / Arr::get / Arr::has helpers.
//
// A path is a list of segments separated by dots. Each segment is applied to
// the current value in turn:
//
//   - map[string]any and other maps with string or integer keys: key lookup
//   - structs (or pointers to structs): exported field name, then `json` tag
//   - slices and arrays: a decimal index
//
// Example:
//
//	m := map[string]any{
//	    "user": map[string]any{
//	        "name":    "Alice",
//	        "address": map[string]any{"city": "London"},
//	        "tags":    []string{"admin", "ops"},
//	    },
//	}
//	arr.Get(m, "user.address.city")     // → "London"
//	arr.Get(m, "user.tags.1")           // → "ops"
//	arr.Get(m, "user.age", 0)           // → 0 (default)
//	arr.Has(m, "user.name")             // → true
//
// The collections package uses these helpers for field-based operators such
// as GroupByField, Pluck and Where.
package arr
