package service

import (
	"github.com/citysafety/backend/internal/domain"
)

// RecordSource is re-exported from domain for convenience
type RecordSource = domain.RecordSource
