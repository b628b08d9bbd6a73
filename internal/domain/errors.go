package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter means caller-supplied data failed validation
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrConfigurationMissing means provider credentials are not configured
	ErrConfigurationMissing = errors.New("configuration missing")
	// ErrUpstream matches every *UpstreamError
	ErrUpstream = errors.New("upstream error")
	// ErrUpstreamFormat means the provider answered with an unexpected body
	ErrUpstreamFormat = errors.New("upstream format error")
	// ErrUpstreamTimeout means the provider did not answer within the bound; callers may retry
	ErrUpstreamTimeout = errors.New("upstream timeout")
	// ErrUpstreamUnreachable means no response was received, e.g. DNS failure or refused connection
	ErrUpstreamUnreachable = errors.New("upstream unreachable")
)

// UpstreamError carries a non-success provider status
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream error: status %d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrUpstream) match any status
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// InvalidParameter builds an ErrInvalidParameter with a descriptive message
func InvalidParameter(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

// ErrorKind returns a stable label for err, used in tool results and metrics
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidParameter):
		return "invalid_parameter"
	case errors.Is(err, ErrConfigurationMissing):
		return "configuration_missing"
	case errors.Is(err, ErrUpstreamTimeout):
		return "upstream_timeout"
	case errors.Is(err, ErrUpstreamUnreachable):
		return "upstream_unreachable"
	case errors.Is(err, ErrUpstreamFormat):
		return "upstream_format_error"
	case errors.Is(err, ErrUpstream):
		return "upstream_error"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "internal_error"
	}
}
