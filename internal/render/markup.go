package render

import (
	"encoding/json"
	"html"
	"strconv"
	"strings"

	"github.com/couchcryptid/quake-report/internal/domain"
)

// Columns selects which event fields appear in a table row.
type Columns int

const (
	// ColumnsBasic renders time, latitude, longitude, depth, magnitude, place and type.
	ColumnsBasic Columns = iota
	// ColumnsWithSource adds locationSource as an eighth cell.
	ColumnsWithSource
)

// EventRows renders one <tr> per event, in the given order. Free-text fields
// are HTML-escaped.
func EventRows(events []domain.Event, cols Columns) string {
	var b strings.Builder
	for _, e := range events {
		b.WriteString("<tr>")
		cell(&b, html.EscapeString(e.Time))
		cell(&b, Number(e.Latitude))
		cell(&b, Number(e.Longitude))
		cell(&b, Number(e.Depth))
		cell(&b, Number(e.Magnitude))
		cell(&b, html.EscapeString(e.Place))
		cell(&b, html.EscapeString(e.Type))
		if cols == ColumnsWithSource {
			cell(&b, html.EscapeString(e.LocationSource))
		}
		b.WriteString("</tr>")
	}
	return b.String()
}

func cell(b *strings.Builder, s string) {
	b.WriteString("<td>")
	b.WriteString(s)
	b.WriteString("</td>")
}

// Link renders an anchor. href is inserted as given; text is escaped.
func Link(href, text string) string {
	return `<a href="` + href + `">` + html.EscapeString(text) + `</a>`
}

// ListItem wraps a link in <li>.
func ListItem(href, text string) string {
	return "<li>" + Link(href, text) + "</li>"
}

// Number formats v with the fewest digits that round-trip, e.g. 4.5, 10, -0.25.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NumberArray renders values as a JSON array for client-side charting.
// A nil or empty slice renders as [].
func NumberArray(values []float64) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		// Only NaN or Inf fail; the store never yields them.
		return "[]"
	}
	return string(data)
}

// Magnitudes extracts the magnitude of every event, in order.
func Magnitudes(events []domain.Event) []float64 {
	out := make([]float64, len(events))
	for i, e := range events {
		out[i] = e.Magnitude
	}
	return out
}

// Depths extracts the depth of every event, in order.
func Depths(events []domain.Event) []float64 {
	out := make([]float64, len(events))
	for i, e := range events {
		out[i] = e.Depth
	}
	return out
}
