package domain

import "fmt"

// HourRange is an inclusive [Min, Max] window over the 0-23 hour domain
type HourRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FullHourRange covers every hour of the day
func FullHourRange() HourRange {
	return HourRange{Min: 0, Max: HoursPerDay - 1}
}

// Contains reports whether h falls inside the range, inclusive on both ends
func (r HourRange) Contains(h int) bool {
	return h >= r.Min && h <= r.Max
}

// Criteria is one filter selection. All constraints are optional and
// conjunctive: a record passes only when every constraint admits it.
// A nil set leaves that dimension unrestricted; a non-nil empty set
// matches nothing (every option deselected).
type Criteria struct {
	Severities []Severity `json:"severities,omitempty"`
	Hours      HourRange  `json:"hours"`
	Weekdays   []Weekday  `json:"weekdays,omitempty"`
	Months     []Month    `json:"months,omitempty"`
}

// AllRecords is the unrestricted selection
func AllRecords() Criteria {
	return Criteria{Hours: FullHourRange()}
}

// Validate rejects criteria referencing values outside their domains.
// This runs at filter construction so bad selections fail fast instead of
// surfacing deep inside aggregation.
func (c Criteria) Validate() error {
	if !ValidHour(c.Hours.Min) || !ValidHour(c.Hours.Max) {
		return fmt.Errorf("%w: hour range [%d, %d] outside 0-23", ErrInvalidCriteria, c.Hours.Min, c.Hours.Max)
	}
	if c.Hours.Min > c.Hours.Max {
		return fmt.Errorf("%w: hour range min %d greater than max %d", ErrInvalidCriteria, c.Hours.Min, c.Hours.Max)
	}
	for _, s := range c.Severities {
		if _, ok := SeverityRank(s); !ok {
			return fmt.Errorf("%w: unknown severity %q", ErrInvalidCriteria, s)
		}
	}
	for _, w := range c.Weekdays {
		if _, ok := WeekdayRank(w); !ok {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidCriteria, w)
		}
	}
	for _, m := range c.Months {
		if _, ok := MonthRank(m); !ok {
			return fmt.Errorf("%w: unknown month %q", ErrInvalidCriteria, m)
		}
	}
	return nil
}

// FilterOptions enumerates the selector domains for interactive controls.
// Options always cover the full fixed domains, not just observed values,
// so a user can select a criterion even when zero records currently match.
type FilterOptions struct {
	Severities []Severity `json:"severities"`
	Hours      HourRange  `json:"hours"`
	Weekdays   []Weekday  `json:"weekdays"`
	Months     []Month    `json:"months"`
}
