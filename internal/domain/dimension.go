package domain

import (
	"fmt"
	"strconv"
)

// Dimension is an axis along which events are grouped for browsing.
type Dimension int

const (
	DimensionLocation Dimension = iota
	DimensionMagnitude
	DimensionDepth
)

func (d Dimension) String() string {
	switch d {
	case DimensionLocation:
		return "location"
	case DimensionMagnitude:
		return "magnitude"
	case DimensionDepth:
		return "depth"
	default:
		return fmt.Sprintf("dimension(%d)", int(d))
	}
}

// Noun is the user-facing name used in not-found messages.
func (d Dimension) Noun() string {
	switch d {
	case DimensionLocation:
		return "Location"
	case DimensionMagnitude:
		return "Magnitude group"
	case DimensionDepth:
		return "Depth group"
	default:
		return d.String()
	}
}

// Bucket is a static numeric band of the magnitude or depth dimension.
// IDs are 1-based and contiguous within a dimension.
type Bucket struct {
	ID    int
	Range Range
	Label string
}

// MagnitudeBuckets are the integer bands 1..9, bucket n covering [n, n+1).
var MagnitudeBuckets = func() []Bucket {
	b := make([]Bucket, 0, 9)
	for n := 1; n <= 9; n++ {
		b = append(b, Bucket{
			ID:    n,
			Range: Range{Lower: float64(n), Upper: float64(n + 1)},
			Label: fmt.Sprintf("Magnitude %d", n),
		})
	}
	return b
}()

// DepthBuckets are the named depth bands in km.
var DepthBuckets = []Bucket{
	{ID: 1, Range: Range{Lower: 0, Upper: 70}, Label: "Shallow (0-70 km)"},
	{ID: 2, Range: Range{Lower: 70, Upper: 300}, Label: "Intermediate (70-300 km)"},
	{ID: 3, Range: Range{Lower: 300, Upper: 700}, Label: "Deep (300-700 km)"},
}

// Buckets returns the static bucket set of a numeric dimension, or nil for
// data-driven dimensions.
func (d Dimension) Buckets() []Bucket {
	switch d {
	case DimensionMagnitude:
		return MagnitudeBuckets
	case DimensionDepth:
		return DepthBuckets
	default:
		return nil
	}
}

// LocateLocation returns the position of want in the ascending distinct
// location list, or a NotFoundError when it is absent. Matching is exact.
func LocateLocation(locations []string, want string) (int, error) {
	for i, loc := range locations {
		if loc == want {
			return i, nil
		}
	}
	return -1, &NotFoundError{Dimension: DimensionLocation, Value: want}
}

// LocateBucket parses raw as a bucket id of a numeric dimension and returns
// its zero-based position. Non-integers and ids outside 1..len(buckets) are
// reported as NotFoundError carrying raw unchanged.
func LocateBucket(d Dimension, raw string) (int, error) {
	buckets := d.Buckets()
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 || id > len(buckets) {
		return -1, &NotFoundError{Dimension: d, Value: raw}
	}
	return id - 1, nil
}

// Position is a located value together with its ring neighbours.
type Position[T any] struct {
	Index   int
	Current T
	Prev    T
	Next    T
}

// Navigate resolves seq[i] and its cyclic neighbours.
func Navigate[T any](seq []T, i int) Position[T] {
	prev, next := Neighbors(seq, i)
	return Position[T]{Index: i, Current: seq[i], Prev: prev, Next: next}
}
