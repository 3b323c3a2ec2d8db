package domain

// Summary holds the KPI totals for a filtered subset
type Summary struct {
	Count           int `json:"count"`
	Fatalities      int `json:"fatalities"`
	SeriousInjuries int `json:"serious_injuries"`
	MinorInjuries   int `json:"minor_injuries"`
}

// HourCount is one bucket of the hourly distribution
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// WeekdayCount is one bucket of the weekday distribution
type WeekdayCount struct {
	Weekday Weekday `json:"weekday"`
	Count   int     `json:"count"`
}

// SeverityCount is one slice of the severity breakdown. Share is the
// percentage of the subset in this class, rounded to one decimal.
type SeverityCount struct {
	Severity Severity `json:"severity"`
	Count    int      `json:"count"`
	Share    float64  `json:"share"`
	Color    string   `json:"color"`
}

// Heatmap is the weekday-by-hour cross-tabulation: 7 rows in fixed
// Monday-Sunday order, 24 columns, every cell present even when zero.
type Heatmap struct {
	Weekdays []Weekday                     `json:"weekdays"`
	Counts   [DaysPerWeek][HoursPerDay]int `json:"counts"`
}

// AggregateSet bundles the four distributional views. Each view is
// derived independently from the filtered subset alone.
type AggregateSet struct {
	Hourly   []HourCount     `json:"hourly"`
	Weekly   []WeekdayCount  `json:"weekly"`
	Severity []SeverityCount `json:"severity"`
	Heatmap  Heatmap         `json:"heatmap"`
}

// DashboardView is one full recomputation handed to the presentation
// collaborators. When Empty is true no aggregates were computed and
// Summary/Aggregates are nil.
type DashboardView struct {
	Criteria   Criteria      `json:"criteria"`
	Empty      bool          `json:"empty"`
	Summary    *Summary      `json:"summary,omitempty"`
	Aggregates *AggregateSet `json:"aggregates,omitempty"`
}

// MapPoint is one accident marker for the geospatial collaborator
type MapPoint struct {
	ID           int64    `json:"id"`
	Latitude     float64  `json:"lat"`
	Longitude    float64  `json:"lon"`
	Severity     Severity `json:"severity"`
	Color        string   `json:"color"`
	Day          int      `json:"day"`
	Month        Month    `json:"month"`
	Weekday      Weekday  `json:"weekday"`
	Hour         int      `json:"hour"`
	TotalVictims int      `json:"total_victims"`
}

// MapView is the geospatial payload for a filtered subset: markers plus
// the mean center and a covering radius for initial framing
type MapView struct {
	CenterLat float64    `json:"center_lat"`
	CenterLon float64    `json:"center_lon"`
	RadiusKm  float64    `json:"radius_km"`
	Points    []MapPoint `json:"points"`
}
