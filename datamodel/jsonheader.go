package datamodel

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
)

var (
	headerLine = regexp.MustCompile(`(?m)^#(.*)$`)
	jsonBlock  = regexp.MustCompile(`\{\s*(.*)\s*\}`)
)

// endSentinel optionally terminates the embedded JSON block in place of
// relying on the final closing brace. The match is a plain substring
// search, so a literal occurrence of the marker inside the data defeats
// it; the behavior is kept for compatibility with existing files.
const endSentinel = "end JSON"

// ReadJSONMetadata reads the JSON metadata header embedded in the comment
// lines of an ASCII data file. See ParseJSONMetadata.
func ReadJSONMetadata(path string) (*SpaceData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	sd, err := ParseJSONMetadata(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sd, nil
}

// ParseJSONMetadata extracts the JSON object embedded across the
// #-prefixed comment lines of text and decodes it into a SpaceData using
// the columnar-metadata convention:
//
//   - a top-level object containing START_COLUMN declares a column
//     variable: it becomes a nested SpaceData whose attributes are the
//     whole object
//   - a top-level object containing VALUES becomes a DataArray of those
//     values, with the remaining entries as its attributes
//   - anything else is stored as a global attribute
//
// The JSON region is the first brace-delimited block of the joined
// comment text, optionally truncated at a literal "end JSON" marker. The
// decode tolerates comments and trailing commas. If no block is found the
// parse fails with ErrNoJSONHeader.
func ParseJSONMetadata(text []byte) (*SpaceData, error) {
	var joined strings.Builder
	for _, m := range headerLine.FindAllSubmatch(text, -1) {
		joined.Write(m[1])
	}

	block := jsonBlock.FindStringSubmatch(joined.String())
	if block == nil {
		return nil, ErrNoJSONHeader
	}
	js := block[1]
	if i := strings.LastIndex(js, endSentinel); i >= 0 {
		// The sentinel follows the object's own closing brace, so the
		// truncated text still ends in "}".
		js = "{ " + js[:i]
	} else {
		js = "{ " + js + " }"
	}

	var decoded map[string]any
	if err := json.Unmarshal(jsonc.ToJSON([]byte(js)), &decoded); err != nil {
		return nil, fmt.Errorf("decoding JSON header: %w", err)
	}

	sd := NewSpaceData(nil)
	keys := make([]string, 0, len(decoded))
	for key := range decoded {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		obj, ok := decoded[key].(map[string]any)
		if !ok {
			sd.Attrs[key] = decoded[key]
			continue
		}
		if _, has := obj["START_COLUMN"]; has {
			sd.Set(key, NewSpaceData(obj))
			continue
		}
		if values, has := obj["VALUES"]; has {
			attrs := make(map[string]any, len(obj)-1)
			for k, v := range obj {
				if k != "VALUES" {
					attrs[k] = v
				}
			}
			sd.Set(key, NewDataArray(values, attrs))
			continue
		}
		sd.Attrs[key] = decoded[key]
	}
	return sd, nil
}
