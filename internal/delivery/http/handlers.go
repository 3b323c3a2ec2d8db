package http

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/citysafety/backend/internal/domain"
	"github.com/citysafety/backend/internal/service"
)

// HealthChecker reports connectivity of a backing record store. Sources
// without a live backend (CSV, mock) have nothing to check and pass nil.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler contains all HTTP handlers
type Handler struct {
	engine *service.Engine
	health HealthChecker
}

// NewHandler creates a new handler
func NewHandler(engine *service.Engine, health HealthChecker) *Handler {
	return &Handler{engine: engine, health: health}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	if h.health != nil {
		if err := h.health.Health(c.Context()); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Record store unreachable")
		}
	}

	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "accidents-backend",
		"records": h.engine.Size(),
	})
}

// GetOptions returns the selector domains for the filter controls
func (h *Handler) GetOptions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.engine.Options(),
	})
}

// GetDashboard recomputes the summary and the four aggregate views for
// the filter selection in the query string. An empty result is a normal
// 200 with empty=true and no aggregates.
func (h *Handler) GetDashboard(c *fiber.Ctx) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	view, err := h.engine.Dashboard(criteria)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCriteria) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute dashboard")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    view,
	})
}

// GetMap returns the geospatial payload for the filter selection
func (h *Handler) GetMap(c *fiber.Ctx) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	view, empty, err := h.engine.Map(criteria)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCriteria) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute map view")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"empty":   empty,
		"data":    view,
	})
}

// parseCriteria builds filter criteria from query parameters. List
// parameters are comma-separated; an absent parameter leaves that
// dimension unrestricted while a present-but-empty one deselects every
// option. Out-of-domain values are left for Criteria.Validate to reject.
func parseCriteria(c *fiber.Ctx) (domain.Criteria, error) {
	criteria := domain.AllRecords()

	if vals, ok := queryList(c, "severity"); ok {
		criteria.Severities = make([]domain.Severity, len(vals))
		for i, v := range vals {
			criteria.Severities[i] = domain.Severity(v)
		}
	}
	if vals, ok := queryList(c, "weekday"); ok {
		criteria.Weekdays = make([]domain.Weekday, len(vals))
		for i, v := range vals {
			criteria.Weekdays[i] = domain.Weekday(v)
		}
	}
	if vals, ok := queryList(c, "month"); ok {
		criteria.Months = make([]domain.Month, len(vals))
		for i, v := range vals {
			criteria.Months[i] = domain.Month(v)
		}
	}

	var err error
	if criteria.Hours.Min, err = queryHour(c, "hour_min", criteria.Hours.Min); err != nil {
		return criteria, err
	}
	if criteria.Hours.Max, err = queryHour(c, "hour_max", criteria.Hours.Max); err != nil {
		return criteria, err
	}

	return criteria, nil
}

// queryList splits a comma-separated query parameter, reporting whether
// the parameter was present at all
func queryList(c *fiber.Ctx, key string) ([]string, bool) {
	if !c.Context().QueryArgs().Has(key) {
		return nil, false
	}
	raw := c.Query(key)
	if strings.TrimSpace(raw) == "" {
		return []string{}, true
	}
	parts := strings.Split(raw, ",")
	vals := make([]string, 0, len(parts))
	for _, p := range parts {
		vals = append(vals, strings.TrimSpace(p))
	}
	return vals, true
}

func queryHour(c *fiber.Ctx, key string, fallback int) (int, error) {
	if !c.Context().QueryArgs().Has(key) {
		return fallback, nil
	}
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0, errors.New("invalid filter criteria: " + key + " must be an integer")
	}
	return n, nil
}
