package domain

import "errors"

// ErrDataUnavailable means the source dataset is missing or unparsable.
// It is fatal: the engine must not start on a partial or synthetic dataset.
var ErrDataUnavailable = errors.New("accident dataset unavailable")

// ErrInvalidCriteria means a filter criterion references a value outside
// its declared domain. Criteria are rejected at the boundary, never
// clamped or silently dropped.
var ErrInvalidCriteria = errors.New("invalid filter criteria")
