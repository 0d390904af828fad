package errors

import (
	"errors"
)

var (
	ErrTemporary = errors.New("temporary error")
	ErrPermanent = errors.New("permanent error")

	ErrOddKeyValues        = errors.New("key/value arguments must come in pairs")
	ErrFileNotFound        = errors.New("file cannot be opened for reading")
	ErrUnsupportedEncoding = errors.New("unsupported charset")
	ErrMultipartWrite      = errors.New("multipart write error")

	ErrRequestCreation  = errors.New("request creation error")
	ErrBodyFormConflict = errors.New("body and form conflict")

	ErrNetwork   = errors.New("network error")
	ErrTimeout   = errors.New("timeout error")
	ErrBadStatus = errors.New("bad status code")
)

// IsTemporary returns true if the error is considered temporary and can be retried.
func IsTemporary(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrTimeout) || errors.Is(err, ErrBadStatus) || errors.Is(err, ErrTemporary)
}

// Is reports whether any error in err's chain is an instance of target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
