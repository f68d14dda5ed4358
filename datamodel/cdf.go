package datamodel

import (
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// FromCDF loads a NetCDF file (classic CDF or netcdf4) into a SpaceData
// tree: global attributes into Attrs, each variable into a DataArray
// carrying its attribute mapping, subgroups into nested SpaceData. The
// file is opened and closed by this call.
func FromCDF(path string) (*SpaceData, error) {
	g, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer g.Close()
	return fromNetCDFGroup(g)
}

func fromNetCDFGroup(g api.Group) (*SpaceData, error) {
	sd := NewSpaceData(nil)
	copyAttributeMap(sd.Attrs, g.Attributes())

	for _, name := range g.ListVariables() {
		v, err := g.GetVariable(name)
		if err != nil {
			return nil, fmt.Errorf("reading variable %q: %w", name, err)
		}
		arr := NewDataArray(v.Values, nil)
		copyAttributeMap(arr.Attrs(), v.Attributes)
		sd.Set(name, arr)
	}

	for _, name := range g.ListSubgroups() {
		sub, err := g.GetGroup(name)
		if err != nil {
			return nil, fmt.Errorf("opening group %q: %w", name, err)
		}
		child, err := fromNetCDFGroup(sub)
		sub.Close()
		if err != nil {
			return nil, err
		}
		sd.Set(name, child)
	}
	return sd, nil
}

// copyAttributeMap copies a NetCDF attribute map into dst, one key at a
// time; an unreadable value is dropped with a warning rather than
// aborting the import.
func copyAttributeMap(dst map[string]any, attrs api.AttributeMap) {
	if attrs == nil {
		return
	}
	for _, key := range attrs.Keys() {
		value, has := attrs.Get(key)
		if !has {
			log.Warnf("dropping unreadable attribute %q", key)
			continue
		}
		dst[key] = value
	}
}
