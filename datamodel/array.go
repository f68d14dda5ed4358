package datamodel

import (
	"fmt"

	"github.com/robert-malhotra/go-datamodel/internal/codec"
)

// attrsName is the one attribute name every DataArray allows.
const attrsName = "attrs"

// DataArray pairs a payload (a scalar or an n-dimensional array-like
// value) with an attribute mapping. The attribute mapping is the only
// named attribute the type permits by default; further names must be
// registered with AddAttribute before SetAttr will accept them.
type DataArray struct {
	data  any
	attrs map[string]any

	// registered extra attribute names, in registration order
	extraNames []string
	extra      map[string]any
}

// NewDataArray wraps a payload. A nil attrs initializes an empty
// attribute mapping; a non-nil attrs is adopted as-is.
func NewDataArray(data any, attrs map[string]any) *DataArray {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	return &DataArray{data: data, attrs: attrs}
}

// Data returns the payload.
func (a *DataArray) Data() any {
	return a.data
}

// Attrs returns the attribute mapping. The map is live: mutations are
// visible to the array.
func (a *DataArray) Attrs() map[string]any {
	return a.attrs
}

// Allowed returns the allow-listed attribute names, "attrs" first, then
// registered names in registration order.
func (a *DataArray) Allowed() []string {
	out := make([]string, 0, 1+len(a.extraNames))
	out = append(out, attrsName)
	return append(out, a.extraNames...)
}

// SetAttr sets a named attribute on the array object itself. Only "attrs"
// and names registered via AddAttribute are permitted; anything else fails
// with ErrAttributeNotAllowed and leaves the array unchanged.
func (a *DataArray) SetAttr(name string, value any) error {
	if name == attrsName {
		m, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("attrs must be a map[string]any, got %T", value)
		}
		a.attrs = m
		return nil
	}
	if a.extra != nil {
		if _, ok := a.extra[name]; ok {
			a.extra[name] = value
			return nil
		}
	}
	return fmt.Errorf("%q: %w", name, ErrAttributeNotAllowed)
}

// Attr returns the value of a registered attribute name.
func (a *DataArray) Attr(name string) (any, bool) {
	v, ok := a.extra[name]
	return v, ok
}

// AddAttribute registers a new allowed attribute name with an initial
// value. Registering a name twice, or registering "attrs", fails with
// ErrDuplicateAttribute.
func (a *DataArray) AddAttribute(name string, value any) error {
	if name == attrsName {
		return fmt.Errorf("%q: %w", name, ErrDuplicateAttribute)
	}
	if _, ok := a.extra[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrDuplicateAttribute)
	}
	if a.extra == nil {
		a.extra = make(map[string]any)
	}
	a.extraNames = append(a.extraNames, name)
	a.extra[name] = value
	return nil
}

// Copy returns a value copy of the array: the attribute mapping and the
// registered attribute set are copied one level deep. The payload itself
// is shared; payloads are treated as immutable once wrapped.
func (a *DataArray) Copy() *DataArray {
	out := NewDataArray(a.data, copyAttrs(a.attrs))
	for _, name := range a.extraNames {
		out.AddAttribute(name, a.extra[name])
	}
	return out
}

// persistedArray is the serialized form of a DataArray. Registered extra
// attribute names travel with their values so that a restored array stays
// mutable the same way as the original.
type persistedArray struct {
	Data       any            `cbor:"1,keyasint"`
	Attrs      map[string]any `cbor:"2,keyasint"`
	ExtraNames []string       `cbor:"3,keyasint,omitempty"`
	Extra      map[string]any `cbor:"4,keyasint,omitempty"`
}

// MarshalBinary serializes the payload, the attribute mapping, and any
// registered extra attributes as a single unit.
func (a *DataArray) MarshalBinary() ([]byte, error) {
	return codec.Marshal(persistedArray{
		Data:       a.data,
		Attrs:      a.attrs,
		ExtraNames: a.extraNames,
		Extra:      a.extra,
	})
}

// UnmarshalBinary restores an array serialized with MarshalBinary,
// re-registering any extra attribute names present at save time.
// Payload values come back in CBOR's canonical Go types: integers as
// int64/uint64, floats as float64, sequences as []any.
func (a *DataArray) UnmarshalBinary(data []byte) error {
	var p persistedArray
	if err := codec.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decoding data array: %w", err)
	}
	if p.Attrs == nil {
		p.Attrs = make(map[string]any)
	}
	a.data = p.Data
	a.attrs = p.Attrs
	a.extraNames = nil
	a.extra = nil
	for _, name := range p.ExtraNames {
		if err := a.AddAttribute(name, p.Extra[name]); err != nil {
			return fmt.Errorf("restoring attribute %q: %w", name, err)
		}
	}
	return nil
}
