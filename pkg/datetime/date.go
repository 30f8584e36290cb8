package datetime

import (
	"cloud.google.com/go/civil"

	"github.com/rawbytedev/tdstime/pkg/typeinfo"
)

// DateCodec handles a calendar date. It shares the 8-byte datetime layout:
// the day count carries the value and the tick half is written as zero.
type DateCodec struct {
	Opts Options
}

func NewDateCodec(opts Options) DateCodec {
	return DateCodec{Opts: opts}
}

func (DateCodec) TypeInfo() typeinfo.TypeInfo {
	return typeinfo.Describe(typeinfo.KindDate)
}

func (DateCodec) Compatible(reported typeinfo.TypeInfo) bool {
	return typeinfo.Compatible(typeinfo.KindDate, reported)
}

func (DateCodec) SizeHint() int {
	return typeinfo.DateTimeSize
}

func (c DateCodec) Encode(dst []byte, v civil.Date) ([]byte, IsNull, error) {
	days, _, err := c.Opts.split(typeinfo.KindDate, civil.DateTime{Date: v})
	if err != nil {
		return dst, IsNullNo, err
	}
	return appendLegacy(dst, days, 0), IsNullNo, nil
}

// Decode reads the day count only; any time of day in the column is dropped.
func (DateCodec) Decode(v ValueRef) (civil.Date, error) {
	b, err := v.Bytes()
	if err != nil {
		return civil.Date{}, err
	}
	days, _, err := readLegacy(typeinfo.KindDate, b, typeinfo.DateTimeSize)
	if err != nil {
		return civil.Date{}, err
	}
	return dateOfDays(days), nil
}
