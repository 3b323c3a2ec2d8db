package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/citysafety/backend/internal/domain"
)

// PostgresSource implements domain.RecordSource over an accidents table
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a new PostgreSQL record source
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Load reads the full accident record set from PostgreSQL. Failures wrap
// domain.ErrDataUnavailable so the engine treats them as fatal at startup.
func (s *PostgresSource) Load(ctx context.Context) ([]domain.AccidentRecord, error) {
	query := `
		SELECT id, latitude, longitude, day, month, weekday, hour,
			   fatalities_30d, serious_injuries_30d, minor_injuries_30d
		FROM accidents
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: postgres: failed to query accidents: %v", domain.ErrDataUnavailable, err)
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
			return nil, fmt.Errorf("%w: postgres: failed to scan accident row: %v", domain.ErrDataUnavailable, err)
		}
		if err := validateRecord(r); err != nil {
			return nil, fmt.Errorf("%w: postgres: %v", domain.ErrDataUnavailable, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: postgres: failed to read accidents: %v", domain.ErrDataUnavailable, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: postgres: accidents table is empty", domain.ErrDataUnavailable)
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

// Health checks database connectivity
func (s *PostgresSource) Health(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
