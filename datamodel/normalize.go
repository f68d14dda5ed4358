package datamodel

import "fmt"

// ConvertKeysToStr returns a structurally identical container in which
// every key at every level is a string. Keys that are already strings are
// left as-is; other keys are replaced by their formatted representation.
// If stringification makes two keys at the same level collide, the later
// entry wins silently. Nested containers are converted recursively; plain
// nested maps keep their plain-map form; all other values pass through by
// reference. The attribute mapping is shared with the input at every
// level.
//
// The container store requires string identifiers for group and dataset
// names, so export applies this transform before writing.
func ConvertKeysToStr(sd *SpaceData) *SpaceData {
	out := &SpaceData{Attrs: sd.Attrs, items: make(map[any]any)}
	for _, key := range sd.Keys() {
		skey, ok := key.(string)
		if !ok {
			skey = fmt.Sprint(key)
		}
		value, _ := sd.Get(key)
		out.Set(skey, convertNestedKeys(value))
	}
	return out
}

func convertNestedKeys(v any) any {
	switch m := v.(type) {
	case *SpaceData:
		return ConvertKeysToStr(m)
	case map[string]any:
		out := make(map[string]any, len(m))
		for k, mv := range m {
			out[k] = convertNestedKeys(mv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, mv := range m {
			skey, ok := k.(string)
			if !ok {
				skey = fmt.Sprint(k)
			}
			out[skey] = convertNestedKeys(mv)
		}
		return out
	default:
		return v
	}
}
