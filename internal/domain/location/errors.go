package location

import (
	"context"
	"errors"

	apperrors "github.com/Ahsan786123/solar-time-app/pkg/errors"
)

// Failure codes carried by acquisition errors.
const (
	CodePermissionDenied    = "permission_denied"
	CodePositionUnavailable = "position_unavailable"
	CodeTimeout             = "timeout"
	CodeUnknown             = "unknown"
	CodeUnsupported         = "unsupported"
)

const messagePrefix = "Unable to detect your location. "

// PermissionDenied reports that the user or upstream refused to share a position.
func PermissionDenied(err error) error {
	return apperrors.Wrap(CodePermissionDenied, "location permission denied", err)
}

// PositionUnavailable reports that no position could be determined.
func PositionUnavailable(err error) error {
	return apperrors.Wrap(CodePositionUnavailable, "location unavailable", err)
}

// Timeout reports that acquisition did not finish in time.
func Timeout(err error) error {
	return apperrors.Wrap(CodeTimeout, "location request timed out", err)
}

// Unknown wraps any other acquisition failure.
func Unknown(err error) error {
	return apperrors.Wrap(CodeUnknown, "location acquisition failed", err)
}

// ErrUnsupported is returned when no acquisition facility is configured.
var ErrUnsupported = apperrors.Wrap(CodeUnsupported, "location detection not supported", nil)

// Code classifies err into one of the failure codes.
func Code(err error) string {
	switch code := apperrors.CodeOf(err); code {
	case CodePermissionDenied, CodePositionUnavailable, CodeTimeout, CodeUnknown, CodeUnsupported:
		return code
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeTimeout
	}
	return CodeUnknown
}

// Message renders the user-facing explanation for an acquisition failure.
func Message(err error) string {
	switch Code(err) {
	case CodePermissionDenied:
		return messagePrefix + "Please allow location access and try again."
	case CodePositionUnavailable:
		return messagePrefix + "Location information is unavailable."
	case CodeTimeout:
		return messagePrefix + "Location request timed out. Please try again."
	case CodeUnsupported:
		return "Geolocation is not supported by this client."
	default:
		return messagePrefix + "An unknown error occurred."
	}
}

func classify(err error) error {
	if apperrors.CodeOf(err) == Code(err) {
		return err
	}
	switch Code(err) {
	case CodeTimeout:
		return Timeout(err)
	default:
		return Unknown(err)
	}
}
