package platform

import (
	"fmt"

	"github.com/pkg/errors"
)

// Default user-facing messages when the backend gives no detail
const (
	DefaultFetchErrorMessage  = "Failed to fetch video info"
	DefaultLaunchErrorMessage = "Failed to start download"
	DefaultStatusErrorMessage = "Failed to query job status"
)

// RejectionKind tells which request the backend refused
type RejectionKind int

const (
	// RejectedRemote is a failed metadata request
	RejectedRemote RejectionKind = iota
	// RejectedLaunch is a failed job launch
	RejectedLaunch
	// RejectedStatus is a failed progress query
	RejectedStatus
)

// String returns the string representation of RejectionKind
func (k RejectionKind) String() string {
	switch k {
	case RejectedRemote:
		return "remote"
	case RejectedLaunch:
		return "launch"
	case RejectedStatus:
		return "status"
	default:
		return "unknown"
	}
}

// NetworkError means the request could not be sent or its response could not be read
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying transport error
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RejectedError means the backend answered with a failure
type RejectedError struct {
	Kind       RejectionKind
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s request rejected with status %d", e.Kind, e.StatusCode)
}

// AsNetworkError reports whether err is or wraps a *NetworkError
func AsNetworkError(err error) (*NetworkError, bool) {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr, true
	}
	return nil, false
}

// AsRejectedError reports whether err is or wraps a *RejectedError
func AsRejectedError(err error) (*RejectedError, bool) {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected, true
	}
	return nil, false
}

// ErrorDetail returns the text shown to the user after a failure prefix
func ErrorDetail(err error) string {
	if err == nil {
		return ""
	}
	if rejected, ok := AsRejectedError(err); ok {
		return rejected.Error()
	}
	if netErr, ok := AsNetworkError(err); ok && netErr.Err != nil {
		return errors.Cause(netErr.Err).Error()
	}
	return err.Error()
}
