package service

import (
	"github.com/citysafety/backend/internal/domain"
	"github.com/citysafety/backend/pkg/utils"
)

// The five aggregations below are independent pure functions over a
// filtered subset: none reads another's output, so the engine is free to
// compute them in any order or concurrently. Distribution outputs are
// dense - every domain value appears, zero counts included - and ordered
// by the fixed categorical ranks.

// Summarize computes the KPI totals over the subset
func Summarize(subset []domain.AccidentRecord) domain.Summary {
	s := domain.Summary{Count: len(subset)}
	for _, r := range subset {
		s.Fatalities += r.Fatalities
		s.SeriousInjuries += r.SeriousInjuries
		s.MinorInjuries += r.MinorInjuries
	}
	return s
}

// HourlyDistribution counts records per hour, ascending 0-23
func HourlyDistribution(subset []domain.AccidentRecord) []domain.HourCount {
	var buckets [domain.HoursPerDay]int
	for _, r := range subset {
		buckets[r.Hour]++
	}
	out := make([]domain.HourCount, domain.HoursPerDay)
	for h, n := range buckets {
		out[h] = domain.HourCount{Hour: h, Count: n}
	}
	return out
}

// WeekdayDistribution counts records per weekday in Monday-Sunday order
func WeekdayDistribution(subset []domain.AccidentRecord) []domain.WeekdayCount {
	var buckets [domain.DaysPerWeek]int
	for _, r := range subset {
		if rank, ok := domain.WeekdayRank(r.Weekday); ok {
			buckets[rank]++
		}
	}
	out := make([]domain.WeekdayCount, domain.DaysPerWeek)
	for i, w := range domain.WeekdayDomain {
		out[i] = domain.WeekdayCount{Weekday: w, Count: buckets[i]}
	}
	return out
}

// SeverityDistribution counts records per severity class in domain-rank
// order. Shares are percentages of the subset, rounded to one decimal;
// they are only meaningful for non-empty subsets, which the engine
// guarantees by short-circuiting empty results before aggregation.
func SeverityDistribution(subset []domain.AccidentRecord) []domain.SeverityCount {
	buckets := make([]int, len(domain.SeverityDomain))
	for _, r := range subset {
		if rank, ok := domain.SeverityRank(r.Severity); ok {
			buckets[rank]++
		}
	}
	out := make([]domain.SeverityCount, len(domain.SeverityDomain))
	for i, s := range domain.SeverityDomain {
		share := 0.0
		if len(subset) > 0 {
			share = utils.RoundTo(float64(buckets[i])*100/float64(len(subset)), 1)
		}
		out[i] = domain.SeverityCount{
			Severity: s,
			Count:    buckets[i],
			Share:    share,
			Color:    domain.SeverityColor(s),
		}
	}
	return out
}

// HeatmapDistribution cross-tabulates the subset by weekday and hour.
// Rows follow the fixed Monday-Sunday order; absent combinations are
// zero cells, never missing.
func HeatmapDistribution(subset []domain.AccidentRecord) domain.Heatmap {
	hm := domain.Heatmap{Weekdays: domain.WeekdayDomain}
	for _, r := range subset {
		if rank, ok := domain.WeekdayRank(r.Weekday); ok {
			hm.Counts[rank][r.Hour]++
		}
	}
	return hm
}

// BuildMapView projects the subset into the geospatial payload: one
// colored marker per record plus the mean center and a Haversine radius
// covering every point. Callers must not pass an empty subset.
func BuildMapView(subset []domain.AccidentRecord) domain.MapView {
	view := domain.MapView{Points: make([]domain.MapPoint, 0, len(subset))}

	var sumLat, sumLon float64
	for _, r := range subset {
		sumLat += r.Latitude
		sumLon += r.Longitude
		view.Points = append(view.Points, domain.MapPoint{
			ID:           r.ID,
			Latitude:     r.Latitude,
			Longitude:    r.Longitude,
			Severity:     r.Severity,
			Color:        domain.SeverityColor(r.Severity),
			Day:          r.Day,
			Month:        r.Month,
			Weekday:      r.Weekday,
			Hour:         r.Hour,
			TotalVictims: r.TotalVictims,
		})
	}

	n := float64(len(subset))
	view.CenterLat = sumLat / n
	view.CenterLon = sumLon / n

	for _, p := range view.Points {
		d := utils.Haversine(view.CenterLat, view.CenterLon, p.Latitude, p.Longitude)
		if d > view.RadiusKm {
			view.RadiusKm = d
		}
	}
	view.RadiusKm = utils.RoundTo(view.RadiusKm, 2)

	return view
}
