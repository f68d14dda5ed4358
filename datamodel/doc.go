// Package datamodel implements a self-describing hierarchical data
// container for scientific datasets: a tree of named groups and labelled
// arrays, each carrying a metadata mapping.
//
// The basic container is SpaceData, an ordered insertion-preserving
// mapping that also carries attributes, analogous to a group in HDF5 or
// netCDF. Data lives in DataArray values, which pair a payload with an
// attribute mapping, analogous to a dataset. SpaceData trees nest to any
// depth; Flatten collapses a nested tree into a single level using
// "<--"-joined path keys, matching the flat data model of formats such as
// NASA CDF.
//
// Containers move between three external representations:
//
//   - a group/attribute/dataset container store (package store), via
//     FromFile/FromGroup and ToFile/ToGroup
//   - NetCDF files, import only, via FromCDF
//   - JSON-headed ASCII files, import only, via ReadJSONMetadata
//
// Example:
//
//	data := datamodel.NewSpaceData(map[string]any{"MissionName": "BigSat1"})
//	data.Set("Counts", datamodel.NewDataArray(
//		[]any{[]any{42, 69, 77}, []any{100, 200, 250}},
//		map[string]any{"Units": "cnts/s"}))
//	err := datamodel.ToFile("test.sdc", data)
package datamodel
