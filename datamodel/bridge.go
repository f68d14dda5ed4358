package datamodel

import (
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/robert-malhotra/go-datamodel/store"
)

// FromFile loads a container store file into a SpaceData tree. The store
// handle is opened and closed by this call; use FromGroup to import from a
// handle the caller owns.
func FromFile(path string) (*SpaceData, error) {
	f, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	defer f.Close()
	return FromGroup(f.Root())
}

// FromGroup imports the subtree rooted at g. Group attributes become the
// container's attribute mapping, child groups become nested SpaceData,
// child datasets become DataArray values (an empty dataset becomes a
// DataArray with a nil payload, a limitation of some store back-ends).
// Attribute values that cannot be read are dropped with a warning; a child
// of any kind other than group or dataset aborts the whole import with
// ErrUnknownNodeKind.
func FromGroup(g *store.Group) (*SpaceData, error) {
	sd := NewSpaceData(nil)
	carryAttrsIn(sd.Attrs, g.Path(), g)

	for _, name := range g.Members() {
		kind, err := g.ChildKind(name)
		if err != nil {
			return nil, fmt.Errorf("inspecting %q: %w", name, err)
		}
		switch kind {
		case store.KindGroup:
			sub, err := g.OpenGroup(name)
			if err != nil {
				return nil, fmt.Errorf("opening group %q: %w", name, err)
			}
			child, err := FromGroup(sub)
			if err != nil {
				return nil, err
			}
			sd.Set(name, child)
		case store.KindDataset:
			ds, err := g.OpenDataset(name)
			if err != nil {
				return nil, fmt.Errorf("opening dataset %q: %w", name, err)
			}
			arr := NewDataArray(ds.Value(), nil)
			carryAttrsIn(arr.Attrs(), ds.Path(), ds)
			sd.Set(name, arr)
		default:
			return nil, fmt.Errorf("%s/%s has kind %s: %w",
				store.CleanPath(g.Path()), name, kind, ErrUnknownNodeKind)
		}
	}
	return sd, nil
}

// attrReader is the store surface needed to copy attributes off a node.
type attrReader interface {
	Attrs() []string
	Attr(name string) (interface{}, bool)
}

// carryAttrsIn copies node attributes into dst. The boundary is one
// key/value pair: a value that cannot be read is dropped with a warning
// and the rest of the attributes are still copied.
func carryAttrsIn(dst map[string]any, path string, src attrReader) {
	for _, name := range src.Attrs() {
		value, ok := src.Attr(name)
		if !ok {
			log.Warnf("%s: dropping unreadable attribute %q", path, name)
			continue
		}
		dst[name] = value
	}
}

// ExportOption configures ToFile.
type ExportOption func(*exportOptions)

type exportOptions struct {
	overwrite   bool
	compression int
}

func defaultExportOptions() *exportOptions {
	return &exportOptions{overwrite: true}
}

// WithOverwrite controls whether ToFile may replace an existing file
// (default true).
func WithOverwrite(allow bool) ExportOption {
	return func(o *exportOptions) {
		o.overwrite = allow
	}
}

// WithExportCompression sets the store file compression level (see
// store.WithCompression).
func WithExportCompression(level int) ExportOption {
	return func(o *exportOptions) {
		o.compression = level
	}
}

// ToFile writes a SpaceData tree to a new container store file. If the
// target exists and overwrite is disallowed the export fails with
// store.ErrFileExists; otherwise the file is replaced. The store handle is
// opened and closed by this call; use ToGroup to export into a handle the
// caller owns.
func ToFile(path string, sd *SpaceData, opts ...ExportOption) error {
	options := defaultExportOptions()
	for _, opt := range opts {
		opt(options)
	}

	if !options.overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, store.ErrFileExists)
		}
	}

	f, err := store.Create(path, store.WithCompression(options.compression))
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	if err := ToGroup(f.Root(), sd); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ToGroup exports a SpaceData tree into the store group g. Keys are
// normalized to strings first (callers should have done this already; it
// is re-applied here defensively). Container attributes are written as
// group attributes subject to the store's value-kind restrictions; nested
// SpaceData become child groups; DataArray payloads become datasets, with
// element-wise text re-encoding as a fallback for payloads the store
// rejects. Entries of any other type are skipped with a warning.
func ToGroup(g *store.Group, sd *SpaceData) error {
	norm := ConvertKeysToStr(sd)
	carryAttrsOut(g, g.Path(), norm.Attrs)

	for _, key := range norm.Keys() {
		name := key.(string)
		value, _ := norm.Get(key)
		switch val := value.(type) {
		case *SpaceData:
			sub, err := g.CreateGroup(name)
			if err != nil {
				return fmt.Errorf("creating group %q: %w", name, err)
			}
			if err := ToGroup(sub, val); err != nil {
				return err
			}
		case *DataArray:
			ds, err := g.CreateDataset(name, val.Data())
			if err != nil {
				// The store could not hold the payload's element type
				// (commonly date/time values); re-encode every element
				// as text and retry.
				ds, err = g.CreateDataset(name, stringifyPayload(val.Data()))
				if err != nil {
					return fmt.Errorf("creating dataset %q: %w", name, err)
				}
			}
			carryAttrsOut(ds, ds.Path(), val.Attrs())
		default:
			log.Warnf("%s: not writing %q: %T is not a container or data array",
				g.Path(), name, value)
		}
	}
	return nil
}

// attrWriter is the store surface needed to put attributes on a node.
type attrWriter interface {
	SetAttr(name string, value interface{}) error
}

// carryAttrsOut writes an attribute mapping onto a store node. Values
// outside the allowed kinds, and values the store itself rejects, are
// skipped with a warning; the boundary is one key/value pair.
func carryAttrsOut(dst attrWriter, path string, attrs map[string]any) {
	for _, name := range sortedAttrNames(attrs) {
		value, ok := storableAttrValue(attrs[name])
		if !ok {
			log.Warnf("%s: dropping attribute %q: value type %T is not storable",
				path, name, attrs[name])
			continue
		}
		if err := dst.SetAttr(name, value); err != nil {
			log.Warnf("%s: dropping attribute %q: %v", path, name, err)
		}
	}
}

// storableAttrValue maps an attribute value onto the kinds the store
// accepts: numeric scalars, bools, text, and sequences of those. Date/time
// values are written in RFC 3339 text form; empty text and empty sequences
// become the empty-text placeholder. Anything else is rejected.
func storableAttrValue(value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	if t, ok := value.(time.Time); ok {
		return t.Format(time.RFC3339), true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return value, true
	case reflect.String:
		return value, true
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return "", true
		}
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i).Interface()
			if t, ok := elem.(time.Time); ok {
				out[i] = t.Format(time.RFC3339)
				continue
			}
			ev, ok := storableAttrValue(elem)
			if !ok {
				return nil, false
			}
			out[i] = ev
		}
		return out, true
	default:
		return nil, false
	}
}

// stringifyPayload re-encodes every element of a payload as text,
// preserving the nesting shape. Date/time elements take their RFC 3339
// form; everything else is formatted.
func stringifyPayload(value any) any {
	if value == nil {
		return nil
	}
	if t, ok := value.(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = stringifyPayload(v.Index(i).Interface())
		}
		return out
	}
	return fmt.Sprint(value)
}
