package domain

import (
	"errors"
	"fmt"
)

// Error codes reported by the weather lookup.
const (
	ErrCodeInvalidZip   = "INVALID_ZIP"
	ErrCodeAPIError     = "API_ERROR"
	ErrCodeNetworkError = "NETWORK_ERROR"
	ErrCodeTimeout      = "TIMEOUT"
	ErrCodeRateLimit    = "RATE_LIMIT"
	ErrCodeUnknown      = "UNKNOWN_ERROR"
)

var userMessages = map[string]string{
	ErrCodeInvalidZip:   "Invalid zip code. Please enter a valid 5-digit US zip code.",
	ErrCodeAPIError:     "Unable to retrieve weather data. Please try again.",
	ErrCodeNetworkError: "Network error. Please check your internet connection and try again.",
	ErrCodeTimeout:      "Request timed out. The weather service is taking too long to respond.",
	ErrCodeRateLimit:    "Too many requests. Please wait a moment and try again.",
	ErrCodeUnknown:      "An unexpected error occurred. Please try again.",
}

// ErrWeatherUnavailable is the base error for failed weather lookups.
var ErrWeatherUnavailable = errors.New("weather unavailable")

// WeatherAPIError describes a failed weather lookup.
// Use errors.As to extract it from a wrapped error chain.
type WeatherAPIError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// NewWeatherAPIError builds an error with the user-facing message for code.
func NewWeatherAPIError(code, details string) *WeatherAPIError {
	msg, ok := userMessages[code]
	if !ok {
		code = ErrCodeUnknown
		msg = userMessages[ErrCodeUnknown]
	}
	return &WeatherAPIError{Code: code, Message: msg, Details: details}
}

func (e *WeatherAPIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("weather api error (%s): %s", e.Code, e.Details)
	}
	return fmt.Sprintf("weather api error (%s): %s", e.Code, e.Message)
}

func (e *WeatherAPIError) Unwrap() error { return ErrWeatherUnavailable }

// AsWeatherAPIError extracts the WeatherAPIError from err, or wraps err in
// an UNKNOWN_ERROR one.
func AsWeatherAPIError(err error) *WeatherAPIError {
	var apiErr *WeatherAPIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewWeatherAPIError(ErrCodeUnknown, err.Error())
}

// WeatherErrorCode returns the code carried by err, or ErrCodeUnknown.
func WeatherErrorCode(err error) string {
	var apiErr *WeatherAPIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ErrCodeUnknown
}
