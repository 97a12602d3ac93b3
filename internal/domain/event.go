package domain

import "context"

// Event is one row of the Earthquakes table. Values are passed through as
// stored; Time keeps the catalog's text representation.
type Event struct {
	Time           string  `json:"time"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Depth          float64 `json:"depth"`     // km
	Magnitude      float64 `json:"magnitude"` // column "mag"
	Place          string  `json:"place"`
	Type           string  `json:"type"`
	LocationSource string  `json:"locationSource"`
}

// Field names a numeric column that can be range-filtered.
type Field string

const (
	FieldMagnitude Field = "mag"
	FieldDepth     Field = "depth"
)

// Range is a half-open numeric interval [Lower, Upper).
type Range struct {
	Lower float64
	Upper float64
}

// Contains reports whether v lies in [Lower, Upper).
func (r Range) Contains(v float64) bool {
	return v >= r.Lower && v < r.Upper
}

// EventStore is the read-only data source behind every page.
type EventStore interface {
	// ListLocations returns the distinct locationSource values in ascending order.
	ListLocations(ctx context.Context) ([]string, error)

	// EventsByLocation returns all events whose locationSource equals loc.
	EventsByLocation(ctx context.Context, loc string) ([]Event, error)

	// EventsByMagnitude returns all events with magnitude in r.
	EventsByMagnitude(ctx context.Context, r Range) ([]Event, error)

	// EventsByDepth returns all events with depth in r.
	EventsByDepth(ctx context.Context, r Range) ([]Event, error)

	// CountInRanges returns, for each range, how many events have field in it.
	CountInRanges(ctx context.Context, field Field, ranges []Range) ([]int, error)
}
