// Package report assembles the index and drill-down pages from the event
// store. Each page issues a fixed set of reads, joins them, resolves the
// requested dimension value and its ring neighbours, and hands the result to
// the renderer.
package report

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/couchcryptid/quake-report/internal/domain"
	"github.com/couchcryptid/quake-report/internal/render"
	"golang.org/x/sync/errgroup"
)

// Template names expected by the service.
const (
	TemplateIndex     = "index"
	TemplateLocation  = "location"
	TemplateMagnitude = "magnitude"
	TemplateDepth     = "depth"
)

// Renderer substitutes values into a named template.
type Renderer interface {
	Render(name string, values render.Values) (string, error)
}

// Service builds pages. It holds no per-request state and is safe for
// concurrent use.
type Service struct {
	store    domain.EventStore
	renderer Renderer
	logger   *slog.Logger
}

// NewService creates a Service over the shared store handle.
func NewService(store domain.EventStore, renderer Renderer, logger *slog.Logger) *Service {
	return &Service{store: store, renderer: renderer, logger: logger}
}

// Index renders the home page: the location list plus the static magnitude
// and depth bucket lists annotated with event counts.
func (s *Service) Index(ctx context.Context) (string, error) {
	var (
		locations   []string
		magCounts   []int
		depthCounts []int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		locations, err = s.store.ListLocations(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		magCounts, err = s.store.CountInRanges(gctx, domain.FieldMagnitude, bucketRanges(domain.MagnitudeBuckets))
		return err
	})
	g.Go(func() error {
		var err error
		depthCounts, err = s.store.CountInRanges(gctx, domain.FieldDepth, bucketRanges(domain.DepthBuckets))
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}
	s.logger.Debug("index loaded", "locations", len(locations))

	return s.renderer.Render(TemplateIndex, render.Values{
		"LOCATION_LIST":  locationList(locations),
		"MAGNITUDE_LIST": bucketList("/magnitude/", domain.MagnitudeBuckets, magCounts),
		"DEPTH_LIST":     bucketList("/depth/", domain.DepthBuckets, depthCounts),
	})
}

// Location renders the events reported by one location source with links to
// the neighbouring sources.
func (s *Service) Location(ctx context.Context, loc string) (string, error) {
	var (
		locations []string
		events    []domain.Event
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		locations, err = s.store.ListLocations(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.store.EventsByLocation(gctx, loc)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	i, err := domain.LocateLocation(locations, loc)
	if err != nil {
		s.logger.Debug("unknown location", "location", loc, "known", len(locations))
		return "", err
	}
	pos := domain.Navigate(locations, i)

	return s.renderer.Render(TemplateLocation, render.Values{
		"LOCATION_ROWS": render.EventRows(events, render.ColumnsBasic),
		"LOCATION":      html.EscapeString(loc),
		"TOTAL_COUNT":   strconv.Itoa(len(events)),
		"PREV_LINK":     render.Link(locationHref(pos.Prev), "Previous Location"),
		"NEXT_LINK":     render.Link(locationHref(pos.Next), "Next Location"),
		"HOME_LINK":     homeLink(),
		"MAGNITUDES":    render.NumberArray(render.Magnitudes(events)),
		"DEPTHS":        render.NumberArray(render.Depths(events)),
	})
}

// Magnitude renders the events in magnitude bucket raw (1..9).
func (s *Service) Magnitude(ctx context.Context, raw string) (string, error) {
	i, err := domain.LocateBucket(domain.DimensionMagnitude, raw)
	if err != nil {
		return "", err
	}
	pos := domain.Navigate(domain.MagnitudeBuckets, i)
	b := pos.Current

	events, err := s.store.EventsByMagnitude(ctx, b.Range)
	if err != nil {
		return "", err
	}

	return s.renderer.Render(TemplateMagnitude, render.Values{
		"MAGNITUDE_ROWS":      render.EventRows(events, render.ColumnsWithSource),
		"MAGNITUDE":           fmt.Sprintf("Magnitude %d.0 - %d.0 (exclusive)", int(b.Range.Lower), int(b.Range.Upper)),
		"TOTAL_COUNT":         strconv.Itoa(len(events)),
		"PREV_LINK":           render.Link(bucketHref("/magnitude/", pos.Prev), "Previous Magnitude"),
		"NEXT_LINK":           render.Link(bucketHref("/magnitude/", pos.Next), "Next Magnitude"),
		"HOME_LINK":           homeLink(),
		"MAGNITUDE_IMAGE_SRC": fmt.Sprintf("/images/magnitudeChartM%d.png", b.ID),
		"MAGNITUDE_IMAGE_ALT": fmt.Sprintf("An image of a magnitude of %d.", b.ID),
		"MAGNITUDES":          render.NumberArray(render.Magnitudes(events)),
	})
}

// Depth renders the events in depth band raw (1..3).
func (s *Service) Depth(ctx context.Context, raw string) (string, error) {
	i, err := domain.LocateBucket(domain.DimensionDepth, raw)
	if err != nil {
		return "", err
	}
	pos := domain.Navigate(domain.DepthBuckets, i)
	b := pos.Current

	events, err := s.store.EventsByDepth(ctx, b.Range)
	if err != nil {
		return "", err
	}

	return s.renderer.Render(TemplateDepth, render.Values{
		"DEPTH_ROWS":      render.EventRows(events, render.ColumnsWithSource),
		"DEPTH":           b.Label,
		"TOTAL_COUNT":     strconv.Itoa(len(events)),
		"PREV_LINK":       render.Link(bucketHref("/depth/", pos.Prev), "Previous Depth Group"),
		"NEXT_LINK":       render.Link(bucketHref("/depth/", pos.Next), "Next Depth Group"),
		"HOME_LINK":       homeLink(),
		"DEPTH_IMAGE_SRC": fmt.Sprintf("/images/depth%d.png", b.ID),
		"DEPTH_IMAGE_ALT": fmt.Sprintf("An image of %s depth.", b.Label),
		"DEPTHS":          render.NumberArray(render.Depths(events)),
	})
}

func homeLink() string {
	return render.Link("/", "Back to Home")
}

func locationHref(loc string) string {
	return "/location/" + url.PathEscape(loc)
}

func bucketHref(prefix string, b domain.Bucket) string {
	return prefix + strconv.Itoa(b.ID)
}

func locationList(locations []string) string {
	var b strings.Builder
	for _, loc := range locations {
		b.WriteString(render.ListItem(locationHref(loc), loc))
	}
	return b.String()
}

func bucketList(prefix string, buckets []domain.Bucket, counts []int) string {
	var sb strings.Builder
	for i, b := range buckets {
		text := b.Label
		if i < len(counts) {
			text = fmt.Sprintf("%s (%d events)", b.Label, counts[i])
		}
		sb.WriteString(render.ListItem(bucketHref(prefix, b), text))
	}
	return sb.String()
}

func bucketRanges(buckets []domain.Bucket) []domain.Range {
	out := make([]domain.Range, len(buckets))
	for i, b := range buckets {
		out[i] = b.Range
	}
	return out
}
