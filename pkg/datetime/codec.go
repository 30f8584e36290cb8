// Package datetime converts calendar values to and from the legacy TDS
// date/time column layouts.
//
// The 8-byte layout is a little-endian int32 day count relative to
// 1900-01-01 followed by a little-endian uint32 count of 1/300 s ticks since
// midnight. The zoned layout appends an int16 UTC offset in minutes.
//
// The default RoundNearest policy is not byte-compatible with the truncating
// ms*3/10 conversion (5 ms is tick 2, not tick 1); set RoundTruncate in
// Options to reproduce those bytes.
//
// Every codec is a small immutable value, safe for concurrent use.
package datetime

import (
	"cloud.google.com/go/civil"

	"github.com/rawbytedev/tdstime/pkg/typeinfo"
)

// Codec is the capability a native type exposes to a driver: the TypeInfo
// to announce, the compatibility predicate for columns, and the conversion
// itself.
type Codec[T any] interface {
	TypeInfo() typeinfo.TypeInfo
	Compatible(reported typeinfo.TypeInfo) bool
	// Encode appends v to dst and returns the extended slice.
	Encode(dst []byte, v T) ([]byte, IsNull, error)
	// Decode does not re-run Compatible; use DecodeChecked for that.
	Decode(v ValueRef) (T, error)
	SizeHint() int
}

var (
	_ Codec[civil.DateTime] = DateTimeCodec{}
	_ Codec[civil.Date]     = DateCodec{}
	_ Codec[civil.Time]     = TimeCodec{}
	_ Codec[Zoned[UTC]]     = ZonedCodec[UTC]{}
	_ Codec[Zoned[Local]]   = ZonedCodec[Local]{}
)

// DecodeChecked runs c's compatibility predicate against the reported
// TypeInfo and only then decodes.
func DecodeChecked[T any](c Codec[T], kind typeinfo.Kind, v ValueRef) (T, error) {
	if !c.Compatible(v.Info) {
		var zero T
		return zero, &IncompatibleTypeError{Kind: kind, Expected: c.TypeInfo(), Reported: v.Info}
	}
	return c.Decode(v)
}
