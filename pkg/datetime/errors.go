package datetime

import (
	"errors"
	"fmt"

	"github.com/rawbytedev/tdstime/pkg/typeinfo"
)

var (
	ErrFormat         = errors.New("datetime: malformed column value")
	ErrRange          = errors.New("datetime: value out of range")
	ErrIncompatible   = errors.New("datetime: incompatible column type")
	ErrUnexpectedNull = errors.New("datetime: unexpected null")
)

// FormatError reports bytes that cannot be decoded under the expected layout.
type FormatError struct {
	Kind   typeinfo.Kind
	Need   int
	Got    int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("datetime: malformed %s value: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("datetime: malformed %s value: need %d bytes, got %d", e.Kind, e.Need, e.Got)
}

// Is makes errors.Is(err, ErrFormat) match any *FormatError.
func (e *FormatError) Is(target error) bool {
	if target == ErrFormat {
		return true
	}
	_, ok := target.(*FormatError)
	return ok
}

// RangeError reports a value the day or tick fields cannot represent.
type RangeError struct {
	Kind   typeinfo.Kind
	Value  string
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("datetime: %s value %s out of range: %s", e.Kind, e.Value, e.Reason)
}

func (e *RangeError) Is(target error) bool {
	if target == ErrRange {
		return true
	}
	_, ok := target.(*RangeError)
	return ok
}

// IncompatibleTypeError reports a column whose reported TypeInfo fails the
// compatibility predicate of the native type it was to be decoded into.
type IncompatibleTypeError struct {
	Kind     typeinfo.Kind
	Expected typeinfo.TypeInfo
	Reported typeinfo.TypeInfo
}

func (e *IncompatibleTypeError) Error() string {
	return fmt.Sprintf("datetime: cannot decode %s column into %s (expects %s)", e.Reported, e.Kind, e.Expected)
}

func (e *IncompatibleTypeError) Is(target error) bool {
	if target == ErrIncompatible {
		return true
	}
	_, ok := target.(*IncompatibleTypeError)
	return ok
}
