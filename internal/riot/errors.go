package riot

import "errors"

// Error taxonomy for upstream calls. A 404 is not an error: lookups
// return a nil result instead.
var (
	// ErrAuthFailure means the API key was rejected or expired. Fatal
	// for the current call, never retried automatically.
	ErrAuthFailure = errors.New("riot: invalid or expired API key")

	// ErrRateLimited means a 429 escaped the limiter. The limiter has
	// already been fed the backoff signal; callers may retry.
	ErrRateLimited = errors.New("riot: rate limit exceeded")

	// ErrTransport covers timeouts and network level failures.
	ErrTransport = errors.New("riot: transport failure")

	// ErrMissingAPIKey means no key is configured.
	ErrMissingAPIKey = errors.New("riot: API key is not configured")

	// ErrUnsupportedRegion means the region has no known endpoint.
	ErrUnsupportedRegion = errors.New("riot: unsupported region")
)
