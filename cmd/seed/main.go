// Command seed loads a USGS earthquake catalog CSV export into the
// Earthquakes table served by quakereport.
//
// Usage:
//
//	go run ./cmd/seed -csv data/all_month.csv -db earthquakes.sqlite3
//
// The table is created if missing; rows are appended.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/couchcryptid/quake-report/internal/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "path to a USGS catalog CSV export")
	dbPath := flag.String("db", "earthquakes.sqlite3", "sqlite database to create or append to")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -csv")
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		return err
	}
	defer f.Close()

	events, err := sqlite.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *csvPath, err)
	}

	if err := sqlite.CreateDatabase(context.Background(), *dbPath, events); err != nil {
		return fmt.Errorf("writing %s: %w", *dbPath, err)
	}

	log.Printf("loaded %d events into %s", len(events), *dbPath)
	return nil
}
