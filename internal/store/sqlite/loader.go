package sqlite

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/quake-report/internal/domain"
)

const sqlCreateTable = `CREATE TABLE IF NOT EXISTS Earthquakes (
	time           TEXT,
	latitude       REAL,
	longitude      REAL,
	depth          REAL,
	mag            REAL,
	place          TEXT,
	type           TEXT,
	locationSource TEXT
)`

const sqlInsertEvent = "INSERT INTO Earthquakes (" + eventColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?)"

// csvColumns are the catalog columns the loader needs, by header name.
var csvColumns = []string{"time", "latitude", "longitude", "depth", "mag", "place", "type", "locationSource"}

// ReadCSV parses a USGS-style catalog export. Columns are matched by header
// name and extra columns are ignored. Empty numeric cells load as 0.
func ReadCSV(r io.Reader) ([]domain.Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, c := range csvColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}

	var events []domain.Event
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		get := func(name string) string {
			if i := idx[name]; i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		num := func(name string) (float64, error) {
			s := get(name)
			if s == "" {
				return 0, nil
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, fmt.Errorf("line %d: column %s: %w", line, name, err)
			}
			return v, nil
		}

		var e domain.Event
		if e.Latitude, err = num("latitude"); err != nil {
			return nil, err
		}
		if e.Longitude, err = num("longitude"); err != nil {
			return nil, err
		}
		if e.Depth, err = num("depth"); err != nil {
			return nil, err
		}
		if e.Magnitude, err = num("mag"); err != nil {
			return nil, err
		}
		e.Time = get("time")
		e.Place = get("place")
		e.Type = get("type")
		e.LocationSource = get("locationSource")
		events = append(events, e)
	}
	return events, nil
}

// CreateDatabase creates (or appends to) the Earthquakes table at path and
// inserts events in one transaction. It is the only code path that writes.
func CreateDatabase(ctx context.Context, path string, events []domain.Event) error {
	dsn, err := fileDSN(path, "rwc")
	if err != nil {
		return err
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqlCreateTable); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, sqlInsertEvent)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range events {
		if _, err := stmt.ExecContext(ctx,
			e.Time, e.Latitude, e.Longitude, e.Depth, e.Magnitude, e.Place, e.Type, e.LocationSource,
		); err != nil {
			return fmt.Errorf("insert event %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
