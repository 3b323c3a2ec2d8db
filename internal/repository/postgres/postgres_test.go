package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/citysafety/backend/internal/domain"
)

func TestValidateRecord(t *testing.T) {
	valid := domain.AccidentRecord{
		ID: 1, Day: 5, Month: "Feb", Weekday: "Wednesday", Hour: 9,
		MinorInjuries: 1,
	}

	t.Run("valid row passes", func(t *testing.T) {
		assert.NoError(t, validateRecord(valid))
	})

	t.Run("out-of-domain rows are rejected", func(t *testing.T) {
		cases := map[string]func(r *domain.AccidentRecord){
			"unknown month":   func(r *domain.AccidentRecord) { r.Month = "February" },
			"unknown weekday": func(r *domain.AccidentRecord) { r.Weekday = "Wed" },
			"hour above 23":   func(r *domain.AccidentRecord) { r.Hour = 24 },
			"negative hour":   func(r *domain.AccidentRecord) { r.Hour = -1 },
			"day above 31":    func(r *domain.AccidentRecord) { r.Day = 32 },
			"day zero":        func(r *domain.AccidentRecord) { r.Day = 0 },
			"negative count":  func(r *domain.AccidentRecord) { r.Fatalities = -1 },
		}

		for name, corrupt := range cases {
			t.Run(name, func(t *testing.T) {
				r := valid
				corrupt(&r)
				assert.Error(t, validateRecord(r))
			})
		}
	})
}
