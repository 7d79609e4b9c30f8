package planner

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// Error types for backend communication

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error (connection refused, timeout, etc.)
	ErrTypeNetwork ErrorType = iota
	// ErrTypeHTTP indicates an HTTP-level error (non-200 status code)
	ErrTypeHTTP
	// ErrTypeParse indicates a parsing error (malformed JSON, invalid response)
	ErrTypeParse
	// ErrTypeValidation indicates an invalid plan request
	ErrTypeValidation
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the backend refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeUnknown indicates an unknown or unexpected error
	ErrTypeUnknown
)

// NetworkErrorSubtype provides more specific network error classification
type NetworkErrorSubtype int

const (
	NetworkErrorGeneral NetworkErrorSubtype = iota
	NetworkErrorTimeout
	NetworkErrorConnectionRefused
	NetworkErrorDNS
	NetworkErrorHostUnreachable
	NetworkErrorNetworkUnreachable
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ServiceError represents an error that occurred while talking to the
// planning backend
type ServiceError struct {
	Type           ErrorType           // Category of error
	Message        string              // Human-readable error message
	StatusCode     int                 // HTTP status code (if applicable)
	Err            error               // Underlying error (if any)
	NetworkSubtype NetworkErrorSubtype // More specific network error type
	Backend        string              // Backend base URL (for context)
	Retryable      bool                // Whether the error is retryable
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes an error and returns a more specific error type
func ClassifyNetworkError(err error, backend string) *ServiceError {
	if err == nil {
		return nil
	}

	// Check for timeout errors
	if os.IsTimeout(err) {
		return &ServiceError{
			Type:           ErrTypeTimeout,
			Message:        "Request timed out",
			Err:            err,
			NetworkSubtype: NetworkErrorTimeout,
			Backend:        backend,
			Retryable:      true,
		}
	}

	// Check for DNS errors
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &ServiceError{
			Type:           ErrTypeDNS,
			Message:        fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:            err,
			NetworkSubtype: NetworkErrorDNS,
			Backend:        backend,
			Retryable:      false,
		}
	}

	// Check for connection refused
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &ServiceError{
				Type:           ErrTypeConnectionRefused,
				Message:        "Backend refused connection",
				Err:            err,
				NetworkSubtype: NetworkErrorConnectionRefused,
				Backend:        backend,
				Retryable:      true,
			}
		}
		if errors.Is(opErr.Err, syscall.EHOSTUNREACH) {
			return &ServiceError{
				Type:           ErrTypeNetwork,
				Message:        "Host unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorHostUnreachable,
				Backend:        backend,
				Retryable:      true,
			}
		}
		if errors.Is(opErr.Err, syscall.ENETUNREACH) {
			return &ServiceError{
				Type:           ErrTypeNetwork,
				Message:        "Network unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorNetworkUnreachable,
				Backend:        backend,
				Retryable:      true,
			}
		}
	}

	// Check for URL errors
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// Recursively classify the underlying error
		return ClassifyNetworkError(urlErr.Err, backend)
	}

	// Generic network error
	return &ServiceError{
		Type:           ErrTypeNetwork,
		Message:        "Network error occurred",
		Err:            err,
		NetworkSubtype: NetworkErrorGeneral,
		Backend:        backend,
		Retryable:      true,
	}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error) *ServiceError {
	classified := ClassifyNetworkError(err, "")
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &ServiceError{
		Type:      ErrTypeNetwork,
		Message:   message,
		Err:       err,
		Retryable: true,
	}
}

// NewHTTPError creates an HTTP-level error
func NewHTTPError(statusCode int, message string) *ServiceError {
	retryable := statusCode >= 500 // Server errors are retryable
	return &ServiceError{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  retryable,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *ServiceError {
	return &ServiceError{
		Type:      ErrTypeParse,
		Message:   message,
		Err:       err,
		Retryable: false,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *ServiceError {
	return &ServiceError{
		Type:      ErrTypeValidation,
		Message:   message,
		Retryable: false,
	}
}

// IsNetworkError checks if an error is a network error (including timeout, connection refused, DNS, etc.)
func IsNetworkError(err error) bool {
	if svcErr, ok := err.(*ServiceError); ok {
		return svcErr.Type == ErrTypeNetwork ||
			svcErr.Type == ErrTypeTimeout ||
			svcErr.Type == ErrTypeConnectionRefused ||
			svcErr.Type == ErrTypeDNS
	}
	return false
}

// IsHTTPError checks if an error is an HTTP error
func IsHTTPError(err error) bool {
	if svcErr, ok := err.(*ServiceError); ok {
		return svcErr.Type == ErrTypeHTTP
	}
	return false
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	if svcErr, ok := err.(*ServiceError); ok {
		return svcErr.Type == ErrTypeParse
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	if svcErr, ok := err.(*ServiceError); ok {
		return svcErr.Type == ErrTypeValidation
	}
	return false
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	if svcErr, ok := err.(*ServiceError); ok {
		return svcErr.Retryable
	}
	// Unknown errors are not retryable by default
	return false
}

// GetTroubleshootingHint returns user-friendly troubleshooting advice for an error
func GetTroubleshootingHint(err error) string {
	svcErr, ok := err.(*ServiceError)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch svcErr.Type {
	case ErrTypeTimeout:
		return strings.Join([]string{
			"The backend did not respond in time.",
			"Troubleshooting:",
			"  • Check that the backend service is running",
			"  • Try increasing the timeout with --timeout",
			"  • First requests can be slow while the backend loads its models",
		}, "\n")

	case ErrTypeConnectionRefused:
		return strings.Join([]string{
			"The backend refused the connection.",
			"Troubleshooting:",
			"  • Verify the backend address and port (default is 5000)",
			"  • Check that the backend service is started",
			"  • Run 'nutriplan discover' to find backends on your network",
		}, "\n")

	case ErrTypeDNS:
		return strings.Join([]string{
			"Could not resolve the backend hostname.",
			"Troubleshooting:",
			"  • Use the IP address instead of hostname",
			"  • Check your network DNS settings",
			"  • Verify you're on the same network as the backend",
		}, "\n")

	case ErrTypeNetwork:
		hint := []string{"Network communication failed."}

		switch svcErr.NetworkSubtype {
		case NetworkErrorHostUnreachable:
			hint = append(hint, "The backend is not reachable on the network.",
				"Troubleshooting:",
				"  • Verify the backend address is correct",
				"  • Check that you're on the same network as the backend",
				"  • Try pinging the host")

		case NetworkErrorNetworkUnreachable:
			hint = append(hint, "Your computer cannot reach the backend's network.",
				"Troubleshooting:",
				"  • Check your network connection",
				"  • Verify your network adapter settings")

		default:
			hint = append(hint, "Troubleshooting:",
				"  • Check your network connection",
				"  • Verify the backend address with 'nutriplan config'",
				"  • Run 'nutriplan discover' to find backends on your network")
		}

		return strings.Join(hint, "\n")

	case ErrTypeHTTP:
		if svcErr.StatusCode >= 500 {
			return strings.Join([]string{
				fmt.Sprintf("The backend returned an error (HTTP %d).", svcErr.StatusCode),
				"Troubleshooting:",
				"  • Check the backend service logs",
				"  • The backend may still be loading its recipe data",
				"  • Try again in a few seconds",
			}, "\n")
		}
		return fmt.Sprintf("The backend returned HTTP error %d. Check the submitted values.", svcErr.StatusCode)

	case ErrTypeParse:
		return strings.Join([]string{
			"Failed to parse the backend's response.",
			"Troubleshooting:",
			"  • Check that the backend supports JSON responses",
			"  • Verify the client and backend versions are compatible",
		}, "\n")

	case ErrTypeValidation:
		return "The submitted values are invalid. Check the error message for details."

	default:
		return "An error occurred. Please check the error message for details."
	}
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	svcErr, ok := err.(*ServiceError)
	if !ok {
		return err.Error()
	}

	switch svcErr.Type {
	case ErrTypeTimeout:
		return "Backend not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Backend refused connection - is the service running?"
	case ErrTypeDNS:
		return "Cannot resolve backend hostname"
	case ErrTypeNetwork:
		switch svcErr.NetworkSubtype {
		case NetworkErrorHostUnreachable:
			return "Backend unreachable - check network connection"
		case NetworkErrorNetworkUnreachable:
			return "Network unreachable - check connection"
		default:
			return "Network error - check connection"
		}
	case ErrTypeHTTP:
		return fmt.Sprintf("Backend error (HTTP %d)", svcErr.StatusCode)
	case ErrTypeParse:
		return "Failed to parse backend response"
	case ErrTypeValidation:
		return svcErr.Message
	default:
		return svcErr.Message
	}
}
