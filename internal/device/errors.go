package device

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failed bonded-device query
type ErrorKind string

const (
	// KindUnavailable means the platform has no Bluetooth adapter
	KindUnavailable ErrorKind = "NO_BT"
	// KindQueryFailed covers every other failure while reading the adapter
	KindQueryFailed ErrorKind = "ERROR"
)

// QueryError is the error returned by bonded-device queries.
// Msg carries the underlying failure's text for KindQueryFailed.
type QueryError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

// Error implements the error interface
func (e *QueryError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg != "" {
		return e.Msg
	}
	switch e.Kind {
	case KindUnavailable:
		return "Bluetooth not available"
	case KindQueryFailed:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "bonded device query failed"
	default:
		return string(e.Kind)
	}
}

// Unwrap exposes the underlying cause
func (e *QueryError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is allows errors.Is to compare QueryError values by Kind
func (e *QueryError) Is(target error) bool {
	if e == nil {
		return false
	}
	t, ok := target.(*QueryError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Predefined sentinel errors for query kinds
var (
	ErrUnavailable = &QueryError{Kind: KindUnavailable}
	ErrQueryFailed = &QueryError{Kind: KindQueryFailed}
)

// Platform errors reported by providers
var (
	ErrBluetoothOff = errors.New("bluetooth is turned off")
	ErrUnsupported  = errors.New("unsupported")
)

// NewQueryFailed wraps err as a KindQueryFailed error that keeps err's message
func NewQueryFailed(err error) *QueryError {
	if err == nil {
		return &QueryError{Kind: KindQueryFailed}
	}
	return &QueryError{Kind: KindQueryFailed, Msg: err.Error(), Err: err}
}

// NewUnavailable returns a KindUnavailable error carrying an optional cause
func NewUnavailable(cause error) *QueryError {
	return &QueryError{Kind: KindUnavailable, Err: cause}
}

// KindOf reports the query kind of err. Errors that are not a QueryError
// are treated as query failures.
func KindOf(err error) ErrorKind {
	var qerr *QueryError
	if errors.As(err, &qerr) {
		return qerr.Kind
	}
	return KindQueryFailed
}

// NormalizeError maps generic platform error strings to the provider sentinels.
// Returns wrapped errors to preserve original context.
func NormalizeError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	switch {
	case containsIgnoreCase(msg, "bluetooth is turned off"), containsIgnoreCase(msg, "not powered"):
		return fmt.Errorf("%w: %v", ErrBluetoothOff, err)
	case containsIgnoreCase(msg, "not supported"), containsIgnoreCase(msg, "unsupported"):
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	default:
		return err
	}
}

// containsIgnoreCase checks substring case-insensitively
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
