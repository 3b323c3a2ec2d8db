// Package csvfile loads accident records from the tabular dataset file.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/citysafety/backend/internal/domain"
)

// Source reads the record set from a CSV file at a fixed path
type Source struct {
	path string
}

// NewSource creates a CSV source for the given file path
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Column names expected in the header, in any order
const (
	colID              = "id"
	colLatitude        = "latitude"
	colLongitude       = "longitude"
	colDay             = "day"
	colMonth           = "month"
	colWeekday         = "weekday"
	colHour            = "hour"
	colFatalities      = "fatalities_30d"
	colSeriousInjuries = "serious_injuries_30d"
	colMinorInjuries   = "minor_injuries_30d"
)

var requiredColumns = []string{
	colID, colLatitude, colLongitude, colDay, colMonth, colWeekday,
	colHour, colFatalities, colSeriousInjuries, colMinorInjuries,
}

// Load implements domain.RecordSource. Any failure - missing file, bad
// header, malformed row, value outside its domain - wraps
// domain.ErrDataUnavailable: the engine never starts on partial data.
func (s *Source) Load(ctx context.Context) ([]domain.AccidentRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: csvfile: failed to open %s: %v", domain.ErrDataUnavailable, s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: csvfile: failed to read header: %v", domain.ErrDataUnavailable, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: csvfile: missing column %q", domain.ErrDataUnavailable, col)
		}
	}

	var records []domain.AccidentRecord
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("csvfile: load canceled: %w", err)
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csvfile: line %d: %v", domain.ErrDataUnavailable, line, err)
		}

		rec, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("%w: csvfile: line %d: %v", domain.ErrDataUnavailable, line, err)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: csvfile: %s contains no records", domain.ErrDataUnavailable, s.path)
	}
	return records, nil
}

func parseRow(row []string, index map[string]int) (domain.AccidentRecord, error) {
	field := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var rec domain.AccidentRecord
	var err error

	if rec.ID, err = strconv.ParseInt(field(colID), 10, 64); err != nil {
		return rec, fmt.Errorf("bad id %q", field(colID))
	}
	if rec.Latitude, err = strconv.ParseFloat(field(colLatitude), 64); err != nil {
		return rec, fmt.Errorf("bad latitude %q", field(colLatitude))
	}
	if rec.Longitude, err = strconv.ParseFloat(field(colLongitude), 64); err != nil {
		return rec, fmt.Errorf("bad longitude %q", field(colLongitude))
	}
	if rec.Day, err = strconv.Atoi(field(colDay)); err != nil || rec.Day < 1 || rec.Day > 31 {
		return rec, fmt.Errorf("bad day %q", field(colDay))
	}
	if rec.Hour, err = strconv.Atoi(field(colHour)); err != nil || !domain.ValidHour(rec.Hour) {
		return rec, fmt.Errorf("bad hour %q", field(colHour))
	}

	rec.Month = domain.Month(field(colMonth))
	if _, ok := domain.MonthRank(rec.Month); !ok {
		return rec, fmt.Errorf("unknown month %q", rec.Month)
	}
	rec.Weekday = domain.Weekday(field(colWeekday))
	if _, ok := domain.WeekdayRank(rec.Weekday); !ok {
		return rec, fmt.Errorf("unknown weekday %q", rec.Weekday)
	}

	if rec.Fatalities, err = parseCount(field(colFatalities)); err != nil {
		return rec, fmt.Errorf("bad fatalities_30d %q", field(colFatalities))
	}
	if rec.SeriousInjuries, err = parseCount(field(colSeriousInjuries)); err != nil {
		return rec, fmt.Errorf("bad serious_injuries_30d %q", field(colSeriousInjuries))
	}
	if rec.MinorInjuries, err = parseCount(field(colMinorInjuries)); err != nil {
		return rec, fmt.Errorf("bad minor_injuries_30d %q", field(colMinorInjuries))
	}

	return rec, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}
