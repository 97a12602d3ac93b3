// Package sqlite implements the event store over a read-only sqlite database
// holding the Earthquakes table.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/couchcryptid/quake-report/internal/domain"
	"github.com/couchcryptid/quake-report/internal/observability"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

const eventColumns = "time, latitude, longitude, depth, mag, place, type, locationSource"

const (
	sqlListLocations     = "SELECT DISTINCT locationSource FROM Earthquakes ORDER BY locationSource"
	sqlEventsByLocation  = "SELECT " + eventColumns + " FROM Earthquakes WHERE locationSource = ?"
	sqlEventsByMagnitude = "SELECT " + eventColumns + " FROM Earthquakes WHERE mag >= ? AND mag < ?"
	sqlEventsByDepth     = "SELECT " + eventColumns + " FROM Earthquakes WHERE depth >= ? AND depth < ?"
)

var _ domain.EventStore = (*Store)(nil)

// Store is the single shared read-only handle to the database. It is safe
// for concurrent use.
type Store struct {
	db      *sql.DB
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Open opens path read-only and verifies the connection. metrics may be nil.
func Open(ctx context.Context, path string, maxOpenConns int, logger *slog.Logger, metrics *observability.Metrics) (*Store, error) {
	dsn, err := fileDSN(path, "ro")
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("connected to event store", "path", path, "max_open_conns", maxOpenConns)
	return &Store{db: db, logger: logger, metrics: metrics}, nil
}

// fileDSN builds a sqlite URI filename for path. The path is made absolute
// and percent-encoded so '?', '#' and '%' in file names survive.
func fileDSN(path, mode string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve database path: %w", err)
	}
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(abs),
		RawQuery: url.Values{"mode": {mode}}.Encode(),
	}
	return u.String(), nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// CheckReadiness pings the database.
func (s *Store) CheckReadiness(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) ListLocations(ctx context.Context) ([]string, error) {
	const op = "list_locations"
	start := time.Now()

	locations, err := s.listLocations(ctx)
	s.observe(op, start, err)
	if err != nil {
		return nil, &domain.StoreError{Op: op, Err: err}
	}
	return locations, nil
}

func (s *Store) listLocations(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, sqlListLocations)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []string
	for rows.Next() {
		var loc sql.NullString
		if err := rows.Scan(&loc); err != nil {
			return nil, err
		}
		locations = append(locations, loc.String)
	}
	return locations, rows.Err()
}

func (s *Store) EventsByLocation(ctx context.Context, loc string) ([]domain.Event, error) {
	return s.queryEvents(ctx, "events_by_location", sqlEventsByLocation, loc)
}

func (s *Store) EventsByMagnitude(ctx context.Context, r domain.Range) ([]domain.Event, error) {
	return s.queryEvents(ctx, "events_by_magnitude", sqlEventsByMagnitude, r.Lower, r.Upper)
}

func (s *Store) EventsByDepth(ctx context.Context, r domain.Range) ([]domain.Event, error) {
	return s.queryEvents(ctx, "events_by_depth", sqlEventsByDepth, r.Lower, r.Upper)
}

// CountInRanges counts events per range in a single scan of the table.
func (s *Store) CountInRanges(ctx context.Context, field domain.Field, ranges []domain.Range) ([]int, error) {
	op := "count_" + string(field)
	if field != domain.FieldMagnitude && field != domain.FieldDepth {
		return nil, &domain.StoreError{Op: op, Err: fmt.Errorf("unsupported field %q", field)}
	}
	if len(ranges) == 0 {
		return []int{}, nil
	}

	start := time.Now()
	counts, err := s.countInRanges(ctx, field, ranges)
	s.observe(op, start, err)
	if err != nil {
		return nil, &domain.StoreError{Op: op, Err: err}
	}
	return counts, nil
}

func (s *Store) countInRanges(ctx context.Context, field domain.Field, ranges []domain.Range) ([]int, error) {
	cols := make([]string, len(ranges))
	args := make([]any, 0, 2*len(ranges))
	for i, r := range ranges {
		cols[i] = fmt.Sprintf("SUM(CASE WHEN %[1]s >= ? AND %[1]s < ? THEN 1 ELSE 0 END)", field)
		args = append(args, r.Lower, r.Upper)
	}
	query := "SELECT " + strings.Join(cols, ", ") + " FROM Earthquakes"

	sums := make([]sql.NullInt64, len(ranges))
	dest := make([]any, len(ranges))
	for i := range sums {
		dest[i] = &sums[i]
	}
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(dest...); err != nil {
		return nil, err
	}

	counts := make([]int, len(ranges))
	for i, v := range sums {
		counts[i] = int(v.Int64)
	}
	return counts, nil
}

func (s *Store) queryEvents(ctx context.Context, op, query string, args ...any) ([]domain.Event, error) {
	start := time.Now()
	events, err := s.scanEvents(ctx, query, args...)
	s.observe(op, start, err)
	if err != nil {
		return nil, &domain.StoreError{Op: op, Err: err}
	}
	return events, nil
}

func (s *Store) scanEvents(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var (
			tm, place, typ, src   sql.NullString
			lat, lon, depth, magn sql.NullFloat64
		)
		if err := rows.Scan(&tm, &lat, &lon, &depth, &magn, &place, &typ, &src); err != nil {
			return nil, err
		}
		events = append(events, domain.Event{
			Time:           tm.String,
			Latitude:       lat.Float64,
			Longitude:      lon.Float64,
			Depth:          depth.Float64,
			Magnitude:      magn.Float64,
			Place:          place.String,
			Type:           typ.String,
			LocationSource: src.String,
		})
	}
	return events, rows.Err()
}

func (s *Store) observe(op string, start time.Time, err error) {
	if err != nil {
		s.logger.Error("store query failed", "op", op, "error", err)
	}
	if s.metrics != nil {
		s.metrics.ObserveQuery(op, time.Since(start).Seconds(), err)
	}
}
