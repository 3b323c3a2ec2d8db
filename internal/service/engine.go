package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/citysafety/backend/internal/domain"
	"github.com/citysafety/backend/internal/observability"
)

// Engine is the filter-and-aggregation core. It owns the derived dataset,
// loaded and augmented exactly once at construction and shared read-only
// across recomputations, so concurrent requests need no locking. Every
// filter change is a full synchronous recompute over the cached set;
// requests are independent, so a superseding selection never waits on a
// stale one.
type Engine struct {
	records []domain.AccidentRecord
	metrics *observability.Metrics
}

// NewEngine loads the dataset from source, derives the classification
// fields and caches the result. A missing or unparsable source is fatal
// for the caller: the engine refuses to start on partial data.
func NewEngine(ctx context.Context, source domain.RecordSource, metrics *observability.Metrics) (*Engine, error) {
	raw, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine: failed to load records: %w", err)
	}

	e := &Engine{
		records: Derive(raw),
		metrics: metrics,
	}
	if metrics != nil {
		metrics.DatasetRecords.Set(float64(len(e.records)))
	}
	log.Printf("Loaded %d accident records", len(e.records))
	return e, nil
}

// Size returns the number of records in the cached base dataset
func (e *Engine) Size() int {
	return len(e.records)
}

// Options returns the selector domains for the interactive controls
func (e *Engine) Options() domain.FilterOptions {
	return domain.FilterOptions{
		Severities: domain.SeverityDomain,
		Hours:      domain.FullHourRange(),
		Weekdays:   domain.WeekdayDomain,
		Months:     domain.MonthDomain,
	}
}

// Apply validates the criteria and filters the base dataset. Invalid
// criteria fail here, before any aggregation. An empty result is a normal
// return, flagged on the FilterResult.
func (e *Engine) Apply(c domain.Criteria) (FilterResult, error) {
	if err := c.Validate(); err != nil {
		if e.metrics != nil {
			e.metrics.InvalidCriteria.Inc()
		}
		return FilterResult{}, err
	}

	res := Filter(e.records, c)
	if e.metrics != nil {
		e.metrics.FilterRequests.Inc()
		if res.Empty {
			e.metrics.EmptyResults.Inc()
		}
	}
	return res, nil
}

// Summary computes the KPI totals for a filtered subset
func (e *Engine) Summary(subset []domain.AccidentRecord) domain.Summary {
	return Summarize(subset)
}

// Aggregates computes the four distributional views concurrently; each is
// independent of the others, so they fan out on goroutines and join.
func (e *Engine) Aggregates(subset []domain.AccidentRecord) domain.AggregateSet {
	var (
		set domain.AggregateSet
		wg  sync.WaitGroup
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		set.Hourly = HourlyDistribution(subset)
	}()
	go func() {
		defer wg.Done()
		set.Weekly = WeekdayDistribution(subset)
	}()
	go func() {
		defer wg.Done()
		set.Severity = SeverityDistribution(subset)
	}()
	go func() {
		defer wg.Done()
		set.Heatmap = HeatmapDistribution(subset)
	}()
	wg.Wait()

	return set
}

// Dashboard runs one full recomputation: validate, filter, then summary
// and aggregates. Empty results short-circuit - no aggregate is computed
// over zero rows, avoiding degenerate percentages.
func (e *Engine) Dashboard(c domain.Criteria) (domain.DashboardView, error) {
	start := time.Now()

	res, err := e.Apply(c)
	if err != nil {
		return domain.DashboardView{}, err
	}

	view := domain.DashboardView{Criteria: c, Empty: res.Empty}
	if !res.Empty {
		summary := Summarize(res.Records)
		aggregates := e.Aggregates(res.Records)
		view.Summary = &summary
		view.Aggregates = &aggregates
	}

	if e.metrics != nil {
		e.metrics.RecomputeDuration.Observe(time.Since(start).Seconds())
	}
	return view, nil
}

// Map returns the geospatial payload for a filter selection. An empty
// selection yields a MapView with no points and no center.
func (e *Engine) Map(c domain.Criteria) (domain.MapView, bool, error) {
	res, err := e.Apply(c)
	if err != nil {
		return domain.MapView{}, false, err
	}
	if res.Empty {
		return domain.MapView{Points: []domain.MapPoint{}}, true, nil
	}
	return BuildMapView(res.Records), false, nil
}
