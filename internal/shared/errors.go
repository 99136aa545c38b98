package shared

import "fmt"

var (
	// Configuration errors
	ErrConfiguration = fmt.Errorf("configuration error")
	ErrMissingConfig = fmt.Errorf("%w: configuration not found", ErrConfiguration)
	ErrInvalidConfig = fmt.Errorf("%w: invalid configuration", ErrConfiguration)

	// Search API errors
	ErrNetwork            = fmt.Errorf("network error")
	ErrParse              = fmt.Errorf("parse error")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Persistence errors
	ErrNotFound = fmt.Errorf("not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
