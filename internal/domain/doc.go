// Package domain models the earthquake catalog browsed by the report service.
//
// # Data Source
//
// Events come from a fixed sqlite table named Earthquakes, typically loaded
// from a USGS catalog CSV export (see cmd/seed). The service never writes to
// it; every request reads what it needs and discards it afterwards.
//
// # Dimensions
//
// Events are browsed along three dimensions:
//
//	location   distinct locationSource values, sorted ascending (data driven)
//	magnitude  integer buckets 1..9, bucket n covers [n, n+1)
//	depth      named bands 1..3: Shallow [0,70), Intermediate [70,300), Deep [300,700) km
//
// Bucket sets are static configuration, not derived from the data.
//
// # Navigation
//
// Each dimension is treated as a ring: the predecessor of the first value is
// the last value and the successor of the last value is the first. Pages link
// to both neighbours so a reader can walk every value of a dimension in either
// direction.
package domain
