package catalog

import "errors"

// Sentinel errors for the public service API. These can be used with
// errors.Is() for error handling.
var (
	// ErrNotFound indicates the requested category or product does not exist.
	// GraphQL reads translate this into a null value rather than an error.
	ErrNotFound = errors.New("catalog: not found")

	// ErrValidation indicates request data failed validation. Order placement
	// reports validation failures inside the structured response instead.
	ErrValidation = errors.New("catalog: validation error")

	// ErrStoreUnavailable indicates the underlying store failed. The
	// categories read masks this with a fallback list; the products read
	// surfaces it with context.
	ErrStoreUnavailable = errors.New("catalog: store unavailable")
)

// IsNotFound reports whether the error is an absence signal.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
