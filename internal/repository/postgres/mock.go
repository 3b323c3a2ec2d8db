package postgres

import (
	"context"

	"github.com/citysafety/backend/internal/domain"
)

// MockSource implements domain.RecordSource for testing/demo mode.
// It generates a deterministic synthetic dataset around the Lisbon city
// center; the same size always yields the same records. It is selected
// explicitly via configuration and is never a fallback for a failed load.
type MockSource struct {
	size int
}

// Reference coordinates for the synthetic dataset
const (
	lisbonCenterLat = 38.7223
	lisbonCenterLon = -9.1393
)

// NewMockSource creates a mock source producing n synthetic records
func NewMockSource(n int) *MockSource {
	if n <= 0 {
		n = 500
	}
	return &MockSource{size: n}
}

// Load returns the synthetic record set
func (s *MockSource) Load(ctx context.Context) ([]domain.AccidentRecord, error) {
	records := make([]domain.AccidentRecord, s.size)
	for i := range records {
		r := domain.AccidentRecord{
			ID:        int64(i + 1),
			Latitude:  lisbonCenterLat + float64(i%40-20)*0.002,
			Longitude: lisbonCenterLon + float64(i%50-25)*0.002,
			Day:       i%28 + 1,
			Month:     domain.MonthDomain[i%len(domain.MonthDomain)],
			Weekday:   domain.WeekdayDomain[i%len(domain.WeekdayDomain)],
			Hour:      i % domain.HoursPerDay,
		}

		// Sparse victim counts so every severity class shows up
		switch {
		case i%25 == 0:
			r.Fatalities = 1
			r.MinorInjuries = i % 3
		case i%10 == 0:
			r.SeriousInjuries = 1 + i%2
		case i%3 == 0:
			r.MinorInjuries = 1 + i%4
		}

		records[i] = r
	}
	return records, nil
}
