package domain

import "context"

// RecordSource supplies the raw accident records for one city/year.
// This follows the Dependency Inversion Principle - domain defines the interface
type RecordSource interface {
	// Load reads the full record set. Implementations must return an
	// error wrapping ErrDataUnavailable when the source is missing or
	// unparsable; returning a partial set is not allowed.
	Load(ctx context.Context) ([]AccidentRecord, error)
}
