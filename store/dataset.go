package store

import (
	"fmt"
	"path"
	"reflect"
)

// Dataset represents a dataset node in an open store file.
type Dataset struct {
	file *File
	path string
	n    *node
}

// Name returns the dataset name (last component of path).
func (d *Dataset) Name() string {
	return path.Base(d.path)
}

// Path returns the full path to this dataset.
func (d *Dataset) Path() string {
	return d.path
}

// Value returns the dataset payload. A nil payload marks an empty dataset.
func (d *Dataset) Value() interface{} {
	return d.n.Data
}

// Len returns the number of top-level elements in the payload: the slice
// length for sequence payloads, 1 for scalars, 0 for empty datasets.
func (d *Dataset) Len() int {
	if d.n.Data == nil {
		return 0
	}
	v := reflect.ValueOf(d.n.Data)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		return v.Len()
	}
	return 1
}

// Attrs returns the attribute names for this dataset, sorted.
func (d *Dataset) Attrs() []string {
	return attrNames(d.n)
}

// Attr returns an attribute value by name.
func (d *Dataset) Attr(name string) (interface{}, bool) {
	v, ok := d.n.Attrs[name]
	return v, ok
}

// HasAttr returns true if the dataset has an attribute with the given name.
func (d *Dataset) HasAttr(name string) bool {
	_, ok := d.n.Attrs[name]
	return ok
}

// SetAttr sets an attribute on the dataset.
func (d *Dataset) SetAttr(name string, value interface{}) error {
	return setAttr(d.file, d.n, name, value)
}

// checkValue validates a dataset payload or attribute value: scalars and
// (nested) slices of signed/unsigned integers, floats, bools, or strings.
// nil is accepted as an empty payload.
func checkValue(value interface{}) error {
	if value == nil {
		return nil
	}
	return checkReflectValue(reflect.ValueOf(value))
}

func checkReflectValue(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			if elem.Kind() == reflect.Interface {
				if elem.IsNil() {
					return fmt.Errorf("nil element: %w", ErrUnsupportedType)
				}
				elem = elem.Elem()
			}
			if err := checkReflectValue(elem); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%s: %w", v.Type(), ErrUnsupportedType)
	}
}
