package datamodel

import "sort"

// SpaceData is an ordered mapping from keys to values that also carries an
// attribute mapping. Keys may be any comparable value; values may be
// nested *SpaceData, *DataArray, plain maps, or scalars. Insertion order
// is preserved; setting an existing key replaces its value in place.
//
// Attrs is a separate namespace from the entries: an entry keyed "attrs"
// does not collide with the attribute mapping.
type SpaceData struct {
	// Attrs holds the container's metadata.
	Attrs map[string]any

	keys  []any
	items map[any]any
}

// NewSpaceData returns an empty container. A nil attrs initializes an
// empty attribute mapping; a non-nil attrs is adopted as-is.
func NewSpaceData(attrs map[string]any) *SpaceData {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	return &SpaceData{
		Attrs: attrs,
		items: make(map[any]any),
	}
}

// Set inserts or replaces the value for key. A new key is appended to the
// iteration order; an existing key keeps its position.
func (sd *SpaceData) Set(key, value any) {
	if _, ok := sd.items[key]; !ok {
		sd.keys = append(sd.keys, key)
	}
	sd.items[key] = value
}

// Get returns the value for key.
func (sd *SpaceData) Get(key any) (any, bool) {
	v, ok := sd.items[key]
	return v, ok
}

// Has reports whether key is present.
func (sd *SpaceData) Has(key any) bool {
	_, ok := sd.items[key]
	return ok
}

// Delete removes key and its value. Removing an absent key is a no-op.
func (sd *SpaceData) Delete(key any) {
	if _, ok := sd.items[key]; !ok {
		return
	}
	delete(sd.items, key)
	for i, k := range sd.keys {
		if k == key {
			sd.keys = append(sd.keys[:i], sd.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (sd *SpaceData) Keys() []any {
	keys := make([]any, len(sd.keys))
	copy(keys, sd.keys)
	return keys
}

// Len returns the number of entries.
func (sd *SpaceData) Len() int {
	return len(sd.keys)
}

// Copy returns a deep copy: nested SpaceData and DataArray values are
// copied by value, the attribute mapping is copied one level deep, plain
// scalars are shared.
func (sd *SpaceData) Copy() *SpaceData {
	out := NewSpaceData(copyAttrs(sd.Attrs))
	for _, key := range sd.keys {
		out.Set(key, copyValue(sd.items[key]))
	}
	return out
}

// copyValue copies container and array values; everything else is shared.
func copyValue(v any) any {
	switch val := v.(type) {
	case *SpaceData:
		return val.Copy()
	case *DataArray:
		return val.Copy()
	default:
		return v
	}
}

func copyAttrs(attrs map[string]any) map[string]any {
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

// sortedAttrNames returns the attribute names in sorted order, for
// deterministic iteration over the attrs map.
func sortedAttrNames(attrs map[string]any) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
