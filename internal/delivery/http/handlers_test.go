package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citysafety/backend/internal/domain"
	"github.com/citysafety/backend/internal/observability"
	"github.com/citysafety/backend/internal/repository/postgres"
	"github.com/citysafety/backend/internal/service"
)

func newTestApp(t *testing.T, health HealthChecker) *fiber.App {
	t.Helper()

	engine, err := service.NewEngine(context.Background(), postgres.NewMockSource(200), observability.NewMetricsForTesting())
	require.NoError(t, err)

	app := fiber.New()
	SetupRoutes(app, engine, health)
	return app
}

// stubChecker fakes a backing store health probe
type stubChecker struct {
	err error
}

func (s stubChecker) Health(ctx context.Context) error {
	return s.err
}

func doRequest(t *testing.T, app *fiber.App, target string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, body
}

func TestHealthCheck(t *testing.T) {
	t.Run("no backing store to check", func(t *testing.T) {
		app := newTestApp(t, nil)

		resp, body := doRequest(t, app, "/health")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var payload struct {
			Status  string `json:"status"`
			Records int    `json:"records"`
		}
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "ok", payload.Status)
		assert.Equal(t, 200, payload.Records)
	})

	t.Run("healthy backing store", func(t *testing.T) {
		app := newTestApp(t, stubChecker{})

		resp, _ := doRequest(t, app, "/health")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unreachable backing store", func(t *testing.T) {
		app := newTestApp(t, stubChecker{err: errors.New("connection refused")})

		resp, _ := doRequest(t, app, "/health")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestGetOptions(t *testing.T) {
	app := newTestApp(t, nil)

	resp, body := doRequest(t, app, "/api/v1/options")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                 `json:"success"`
		Data    domain.FilterOptions `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.True(t, payload.Success)
	assert.Equal(t, domain.SeverityDomain, payload.Data.Severities)
	assert.Equal(t, domain.WeekdayDomain, payload.Data.Weekdays)
	assert.Equal(t, domain.MonthDomain, payload.Data.Months)
	assert.Equal(t, domain.HourRange{Min: 0, Max: 23}, payload.Data.Hours)
}

type dashboardPayload struct {
	Success bool                 `json:"success"`
	Data    domain.DashboardView `json:"data"`
}

func TestGetDashboard(t *testing.T) {
	app := newTestApp(t, nil)

	t.Run("unfiltered", func(t *testing.T) {
		resp, body := doRequest(t, app, "/api/v1/dashboard")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var payload dashboardPayload
		require.NoError(t, json.Unmarshal(body, &payload))
		require.False(t, payload.Data.Empty)
		require.NotNil(t, payload.Data.Summary)
		assert.Equal(t, 200, payload.Data.Summary.Count)
		require.NotNil(t, payload.Data.Aggregates)
		assert.Len(t, payload.Data.Aggregates.Hourly, domain.HoursPerDay)
		assert.Len(t, payload.Data.Aggregates.Weekly, domain.DaysPerWeek)
	})

	t.Run("filtered by hour range and weekday", func(t *testing.T) {
		resp, body := doRequest(t, app, "/api/v1/dashboard?hour_min=8&hour_max=8&weekday=Monday,Tuesday")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var payload dashboardPayload
		require.NoError(t, json.Unmarshal(body, &payload))
		require.False(t, payload.Data.Empty)

		// Every record in the subset sits in the single requested bucket
		for _, bucket := range payload.Data.Aggregates.Hourly {
			if bucket.Hour != 8 {
				assert.Zero(t, bucket.Count)
			}
		}
		assert.Equal(t, domain.HourRange{Min: 8, Max: 8}, payload.Data.Criteria.Hours)
	})

	t.Run("deselecting every severity yields the empty state", func(t *testing.T) {
		resp, body := doRequest(t, app, "/api/v1/dashboard?severity=")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var payload dashboardPayload
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.True(t, payload.Data.Empty)
		assert.Nil(t, payload.Data.Summary)
		assert.Nil(t, payload.Data.Aggregates)
	})

	t.Run("invalid criteria rejected with 400", func(t *testing.T) {
		for _, target := range []string{
			"/api/v1/dashboard?hour_min=25",
			"/api/v1/dashboard?hour_min=9&hour_max=3",
			"/api/v1/dashboard?hour_min=abc",
			"/api/v1/dashboard?severity=Terrible",
			"/api/v1/dashboard?weekday=Caturday",
			"/api/v1/dashboard?month=January",
		} {
			resp, _ := doRequest(t, app, target)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
		}
	})
}

func TestGetMap(t *testing.T) {
	app := newTestApp(t, nil)

	t.Run("markers carry severity colors", func(t *testing.T) {
		resp, body := doRequest(t, app, "/api/v1/map?severity=Fatal")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var payload struct {
			Success bool           `json:"success"`
			Empty   bool           `json:"empty"`
			Data    domain.MapView `json:"data"`
		}
		require.NoError(t, json.Unmarshal(body, &payload))
		require.False(t, payload.Empty)
		require.NotEmpty(t, payload.Data.Points)
		for _, p := range payload.Data.Points {
			assert.Equal(t, domain.SeverityFatal, p.Severity)
			assert.Equal(t, "darkred", p.Color)
		}
		assert.Greater(t, payload.Data.RadiusKm, 0.0)
	})

	t.Run("empty selection returns no points", func(t *testing.T) {
		resp, body := doRequest(t, app, "/api/v1/map?weekday=")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var payload struct {
			Empty bool           `json:"empty"`
			Data  domain.MapView `json:"data"`
		}
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.True(t, payload.Empty)
		assert.Empty(t, payload.Data.Points)
	})
}
