package domain

// Severity classifies an accident by its worst recorded outcome
type Severity string

const (
	SeverityFatal    Severity = "Fatal"
	SeveritySerious  Severity = "Serious Injury"
	SeverityMinor    Severity = "Minor Injury"
	SeverityNoInjury Severity = "No Injury"
)

// Weekday is an ordinal categorical over the fixed Monday-Sunday domain
type Weekday string

// Month is an ordinal categorical over the fixed Jan-Dec domain
type Month string

// Fixed categorical domains. Display and filter-option enumeration always
// follow these orders, never lexical or insertion order. The domains are
// closed sets independent of what values the loaded data happens to contain.
var (
	SeverityDomain = []Severity{SeverityFatal, SeveritySerious, SeverityMinor, SeverityNoInjury}

	WeekdayDomain = []Weekday{
		"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
	}

	MonthDomain = []Month{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}
)

// Dimension sizes for the dense aggregate shapes
const (
	HoursPerDay = 24
	DaysPerWeek = 7
)

var (
	severityRank = rankOf(SeverityDomain)
	weekdayRank  = rankOf(WeekdayDomain)
	monthRank    = rankOf(MonthDomain)
)

func rankOf[T comparable](domain []T) map[T]int {
	m := make(map[T]int, len(domain))
	for i, v := range domain {
		m[v] = i
	}
	return m
}

// SeverityRank returns the display rank of s and whether s belongs to the domain
func SeverityRank(s Severity) (int, bool) {
	r, ok := severityRank[s]
	return r, ok
}

// WeekdayRank returns the Monday-based rank of w and whether w belongs to the domain
func WeekdayRank(w Weekday) (int, bool) {
	r, ok := weekdayRank[w]
	return r, ok
}

// MonthRank returns the Jan-based rank of m and whether m belongs to the domain
func MonthRank(m Month) (int, bool) {
	r, ok := monthRank[m]
	return r, ok
}

// ValidHour reports whether h is within the 0-23 hour domain
func ValidHour(h int) bool {
	return h >= 0 && h < HoursPerDay
}

// AccidentRecord is one accident occurrence. Raw fields come from the
// ingestion source; Severity and TotalVictims are derived once at load and
// never recomputed per filter. Records are immutable for the session.
type AccidentRecord struct {
	ID        int64   `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Day       int     `json:"day"`
	Month     Month   `json:"month"`
	Weekday   Weekday `json:"weekday"`
	Hour      int     `json:"hour"`

	// Victim counts recorded within 30 days of the event
	Fatalities      int `json:"fatalities_30d"`
	SeriousInjuries int `json:"serious_injuries_30d"`
	MinorInjuries   int `json:"minor_injuries_30d"`

	// Derived fields
	Severity     Severity `json:"severity"`
	TotalVictims int      `json:"total_victims"`
}

// severityColors maps each class to its marker/chart color
var severityColors = map[Severity]string{
	SeverityFatal:    "darkred",
	SeveritySerious:  "red",
	SeverityMinor:    "orange",
	SeverityNoInjury: "lightblue",
}

// SeverityColor returns the display color for a severity class, gray for
// anything outside the domain
func SeverityColor(s Severity) string {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return "gray"
}
