// Package sqlite loads accident records from a dataset shipped as a
// SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/citysafety/backend/internal/domain"
)

// Source implements domain.RecordSource over a .db/.sqlite file
type Source struct {
	path string
}

// NewSource creates a SQLite source for the given database file
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Load reads the full accident record set from the accidents table.
// Failures wrap domain.ErrDataUnavailable.
func (s *Source) Load(ctx context.Context) ([]domain.AccidentRecord, error) {
	// sql.Open does not touch the file; check existence up front so a
	// missing dataset reports cleanly instead of as an empty query.
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("%w: sqlite: failed to locate %s: %v", domain.ErrDataUnavailable, s.path, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: sqlite: failed to open %s: %v", domain.ErrDataUnavailable, s.path, err)
	}
	defer db.Close()

	query := `
		SELECT id, latitude, longitude, day, month, weekday, hour,
		       fatalities_30d, serious_injuries_30d, minor_injuries_30d
		FROM accidents
		ORDER BY id
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: sqlite: failed to query accidents: %v", domain.ErrDataUnavailable, err)
	}
	defer rows.Close()

	var records []domain.AccidentRecord
	for rows.Next() {
		var r domain.AccidentRecord
		err := rows.Scan(
			&r.ID, &r.Latitude, &r.Longitude, &r.Day, &r.Month, &r.Weekday, &r.Hour,
			&r.Fatalities, &r.SeriousInjuries, &r.MinorInjuries,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: sqlite: failed to scan accident row: %v", domain.ErrDataUnavailable, err)
		}
		if err := validateRecord(r); err != nil {
			return nil, fmt.Errorf("%w: sqlite: %v", domain.ErrDataUnavailable, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: sqlite: failed to read accidents: %v", domain.ErrDataUnavailable, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: sqlite: accidents table is empty", domain.ErrDataUnavailable)
	}
	return records, nil
}

// validateRecord rejects rows outside the declared field domains so bad
// data fails the load instead of surfacing inside aggregation
func validateRecord(r domain.AccidentRecord) error {
	if _, ok := domain.MonthRank(r.Month); !ok {
		return fmt.Errorf("record %d has unknown month %q", r.ID, r.Month)
	}
	if _, ok := domain.WeekdayRank(r.Weekday); !ok {
		return fmt.Errorf("record %d has unknown weekday %q", r.ID, r.Weekday)
	}
	if !domain.ValidHour(r.Hour) {
		return fmt.Errorf("record %d has hour %d outside 0-23", r.ID, r.Hour)
	}
	if r.Day < 1 || r.Day > 31 {
		return fmt.Errorf("record %d has day %d outside 1-31", r.ID, r.Day)
	}
	if r.Fatalities < 0 || r.SeriousInjuries < 0 || r.MinorInjuries < 0 {
		return fmt.Errorf("record %d has a negative victim count", r.ID)
	}
	return nil
}
