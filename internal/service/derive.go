package service

import (
	"github.com/citysafety/backend/internal/domain"
)

// severityRules is the classification policy, evaluated top to bottom with
// first match winning: the most severe outcome with at least one victim
// decides the class. Presence decides, not magnitude - a record with one
// fatality and fifty minor injuries is Fatal.
var severityRules = []struct {
	class   domain.Severity
	matches func(r domain.AccidentRecord) bool
}{
	{domain.SeverityFatal, func(r domain.AccidentRecord) bool { return r.Fatalities > 0 }},
	{domain.SeveritySerious, func(r domain.AccidentRecord) bool { return r.SeriousInjuries > 0 }},
	{domain.SeverityMinor, func(r domain.AccidentRecord) bool { return r.MinorInjuries > 0 }},
}

// classify assigns exactly one severity class per record
func classify(r domain.AccidentRecord) domain.Severity {
	for _, rule := range severityRules {
		if rule.matches(r) {
			return rule.class
		}
	}
	return domain.SeverityNoInjury
}

// Derive augments raw records with the derived classification fields:
// severity and total victim count. The input order is preserved and the
// input slice is not mutated; derivation runs once per dataset load and
// the result is cached for the session.
func Derive(records []domain.AccidentRecord) []domain.AccidentRecord {
	derived := make([]domain.AccidentRecord, len(records))
	for i, r := range records {
		r.Severity = classify(r)
		r.TotalVictims = r.Fatalities + r.SeriousInjuries + r.MinorInjuries
		derived[i] = r
	}
	return derived
}
