package datamodel

import (
	"fmt"
	"sort"
)

// Sep is the path separator token used by Flatten to join nested keys.
// It is not escaped: a key that already contains the literal token is
// indistinguishable from a flattened nesting level in the output.
const Sep = "<--"

// Flatten collapses a nested container into a new single-level container.
// Every entry whose value is mapping-like (a nested *SpaceData or a plain
// map) is replaced by its leaves, keyed by the original keys joined with
// Sep; non-mapping entries are copied through with their key unchanged.
// Attributes of intermediate containers are dropped; only leaf values
// survive. The top-level result carries an empty attribute mapping.
//
// Flattening an already-flat container is a no-op, so the operation is
// idempotent.
func Flatten(sd *SpaceData) *SpaceData {
	out := NewSpaceData(nil)
	for _, key := range sd.Keys() {
		value, _ := sd.Get(key)
		nested, ok := asMapping(value)
		if !ok {
			out.Set(key, copyValue(value))
			continue
		}
		prefix := fmt.Sprint(key) + Sep
		for _, levKey := range nested.Keys() {
			levValue, _ := nested.Get(levKey)
			if sub, ok := asMapping(levValue); ok {
				flat := Flatten(sub)
				for _, key2 := range flat.Keys() {
					leaf, _ := flat.Get(key2)
					out.Set(prefix+fmt.Sprint(levKey)+Sep+fmt.Sprint(key2), leaf)
				}
			} else {
				out.Set(prefix+fmt.Sprint(levKey), copyValue(levValue))
			}
		}
	}
	return out
}

// Flatten replaces the container's entries with their flattened form. The
// new flat structure is built completely before the swap, and the
// container's own attribute mapping is left untouched.
func (sd *SpaceData) Flatten() {
	flat := Flatten(sd)
	sd.keys = nil
	sd.items = make(map[any]any)
	for _, key := range flat.Keys() {
		v, _ := flat.Get(key)
		sd.Set(key, copyValue(v))
	}
}

// asMapping presents mapping-like values uniformly as a *SpaceData view.
// Plain map entries are ordered by their formatted keys so that traversal
// is deterministic.
func asMapping(v any) (*SpaceData, bool) {
	switch m := v.(type) {
	case *SpaceData:
		return m, true
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := NewSpaceData(nil)
		for _, k := range keys {
			out.Set(k, m[k])
		}
		return out, true
	case map[any]any:
		keys := make([]any, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
		})
		out := NewSpaceData(nil)
		for _, k := range keys {
			out.Set(k, m[k])
		}
		return out, true
	default:
		return nil, false
	}
}
