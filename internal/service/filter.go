package service

import (
	"github.com/citysafety/backend/internal/domain"
)

// FilterResult is a filtered subset plus its explicit empty status.
// Empty is an expected state (an overly narrow selection), not an error;
// consumers must check it before computing aggregates.
type FilterResult struct {
	Records []domain.AccidentRecord
	Empty   bool
}

// membership models one set constraint: nil means the dimension is
// unrestricted, a non-nil empty set admits nothing.
type membership[T comparable] struct {
	restricted bool
	allowed    map[T]struct{}
}

func newMembership[T comparable](values []T) membership[T] {
	if values == nil {
		return membership[T]{}
	}
	m := membership[T]{restricted: true, allowed: make(map[T]struct{}, len(values))}
	for _, v := range values {
		m.allowed[v] = struct{}{}
	}
	return m
}

func (m membership[T]) admits(v T) bool {
	if !m.restricted {
		return true
	}
	_, ok := m.allowed[v]
	return ok
}

// Filter returns the subset of records satisfying all criteria, in the
// original relative order. Constraints are AND-combined across dimensions;
// values within a set constraint are OR-combined. Criteria must already be
// validated; Filter itself never rejects or clamps.
func Filter(records []domain.AccidentRecord, c domain.Criteria) FilterResult {
	severities := newMembership(c.Severities)
	weekdays := newMembership(c.Weekdays)
	months := newMembership(c.Months)

	// Single pass - a record passes only if every dimension admits it
	subset := make([]domain.AccidentRecord, 0, len(records))
	for _, r := range records {
		if !severities.admits(r.Severity) {
			continue
		}
		if !weekdays.admits(r.Weekday) {
			continue
		}
		if !months.admits(r.Month) {
			continue
		}
		if !c.Hours.Contains(r.Hour) {
			continue
		}
		subset = append(subset, r)
	}

	return FilterResult{Records: subset, Empty: len(subset) == 0}
}
