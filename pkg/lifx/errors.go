package lifx

import (
	"errors"
	"fmt"
)

// TokenURL is where LIFX account holders issue personal access tokens.
const TokenURL = "https://cloud.lifx.com/settings"

var (
	// ErrMissingToken indicates no API token was configured
	ErrMissingToken = errors.New("LIFX API token is not configured")
)

// ConfigError is returned before any request is made when the client
// cannot authenticate.
type ConfigError struct {
	EnvVar string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s environment variable is not set. Get your token at %s", e.EnvVar, TokenURL)
}

func (e *ConfigError) Unwrap() error {
	return ErrMissingToken
}

// APIError is a non-2xx response from the LIFX API.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("LIFX API error: %d %s - %s", e.StatusCode, e.Status, e.Body)
}

// IsAuthError returns true for 401 and 403 responses.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsRateLimited returns true for 429 responses.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// TransportError means the request never produced an HTTP response
// (DNS, connection refused, TLS, timeout).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Failed to make LIFX API request: %s", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
