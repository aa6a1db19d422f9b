// Package tools exposes the measurement tool over MCP: an agent opens a
// session, toggles measurement mode, clicks coordinates or place names on
// a headless map and reads back distance and area.
package tools

import (
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/mapmeasure/pkg/geo"
)

// APIError describes a failed tool call with information to help the
// caller recover.
type APIError struct {
	Service     string // The failing service (e.g., "Nominatim", "Validation")
	StatusCode  int    // HTTP-style status code
	Message     string // Error message
	Recoverable bool   // Whether retrying can succeed
	Guidance    string // Guidance for users on how to recover
}

// Error implements the error interface and provides a formatted error message.
func (e *APIError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s error (%d): %s. %s", e.Service, e.StatusCode, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s error (%d): %s", e.Service, e.StatusCode, e.Message)
}

// Common error guidance messages
const (
	GuidanceNominatimRateLimit = "Please try again in a few seconds."
	GuidanceNominatimNoResults = "Try a more specific place name including city and country, or click coordinates instead."
	GuidanceNominatimGeneral   = "Check the place name and your connection, then try again."

	GuidanceSessionNotFound = "Start a new session with measure_start_session; idle sessions are closed when too many are open."
	GuidanceGeneral         = "Please try again later or modify your request parameters."
)

// NewAPIError creates an APIError, inferring guidance from the status
// code when none is given.
func NewAPIError(service string, statusCode int, message, guidance string) *APIError {
	if guidance == "" {
		switch statusCode {
		case http.StatusTooManyRequests:
			guidance = "Rate limit exceeded. Please try again in a few moments."
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			guidance = "The request timed out. Please try again."
		case http.StatusBadRequest:
			guidance = "The request was invalid. Check your parameters and try again."
		case http.StatusNotFound:
			guidance = GuidanceSessionNotFound
		case http.StatusServiceUnavailable:
			guidance = "The service is temporarily unavailable. Please try again later."
		default:
			guidance = GuidanceGeneral
		}
	}

	return &APIError{
		Service:     service,
		StatusCode:  statusCode,
		Message:     message,
		Recoverable: statusCode != http.StatusBadRequest,
		Guidance:    guidance,
	}
}

// ErrorWithGuidance returns a properly formatted error response with user guidance.
func ErrorWithGuidance(err *APIError) *mcp.CallToolResult {
	errorText := fmt.Sprintf("Error: %s\n\nGuidance: %s", err.Message, err.Guidance)
	return mcp.NewToolResultError(errorText)
}

// CoordinateError reports a coordinate argument that is not a number.
func CoordinateError(name string, err error) *APIError {
	return &APIError{
		Service:     "Validation",
		StatusCode:  http.StatusBadRequest,
		Message:     fmt.Sprintf("invalid %s: %v", name, err),
		Recoverable: true,
		Guidance:    "Pass latitude and longitude as decimal degrees, e.g. 37.7749 and -122.4194.",
	}
}

// ValidationError reports out-of-range coordinates.
func ValidationError(lat, lon float64) *APIError {
	message := "Invalid parameters"
	if err := geo.ValidateCoords(lat, lon); err != nil {
		message = err.Error()
	}
	return &APIError{
		Service:     "Validation",
		StatusCode:  http.StatusBadRequest,
		Message:     message,
		Recoverable: true,
		Guidance:    "Please correct the parameters and try again.",
	}
}

// SessionNotFound reports an unknown or closed session id.
func SessionNotFound(id string) *APIError {
	return NewAPIError("Session", http.StatusNotFound, fmt.Sprintf("no open measurement session %q", id), "")
}
