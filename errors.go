package tdstime

import (
	"errors"
	"fmt"

	"github.com/rawbytedev/tdstime/pkg/typeinfo"
)

var (
	ErrUnsupported = errors.New("tdstime: unsupported type")
	ErrNotPointer  = errors.New("tdstime: decode target must be a non-nil pointer")
)

// BindError is a parameter that could not be encoded; the request must not
// be sent.
type BindError struct {
	Type string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("tdstime: bind %s parameter: %v", e.Type, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// ColumnError is a column value that could not be read into its target.
type ColumnError struct {
	Info   typeinfo.TypeInfo
	Target string
	Err    error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("tdstime: read %s column into %s: %v", e.Info, e.Target, e.Err)
}

func (e *ColumnError) Unwrap() error { return e.Err }
