package datetime

import (
	"cloud.google.com/go/civil"

	"github.com/rawbytedev/tdstime/pkg/typeinfo"
)

// DateTimeCodec handles a date and time of day without a zone.
type DateTimeCodec struct {
	Opts Options
}

func NewDateTimeCodec(opts Options) DateTimeCodec {
	return DateTimeCodec{Opts: opts}
}

func (DateTimeCodec) TypeInfo() typeinfo.TypeInfo {
	return typeinfo.Describe(typeinfo.KindDateTime)
}

func (DateTimeCodec) Compatible(reported typeinfo.TypeInfo) bool {
	return typeinfo.Compatible(typeinfo.KindDateTime, reported)
}

func (DateTimeCodec) SizeHint() int {
	return typeinfo.DateTimeSize
}

func (c DateTimeCodec) Encode(dst []byte, v civil.DateTime) ([]byte, IsNull, error) {
	days, ticks, err := c.Opts.split(typeinfo.KindDateTime, v)
	if err != nil {
		return dst, IsNullNo, err
	}
	return appendLegacy(dst, days, ticks), IsNullNo, nil
}

func (c DateTimeCodec) Decode(v ValueRef) (civil.DateTime, error) {
	b, err := v.Bytes()
	if err != nil {
		return civil.DateTime{}, err
	}
	days, ticks, err := readLegacy(typeinfo.KindDateTime, b, typeinfo.DateTimeSize)
	if err != nil {
		return civil.DateTime{}, err
	}
	return civil.DateTime{
		Date: dateOfDays(days),
		Time: timeOfMillis(c.Opts.Rounding.Millis(ticks)),
	}, nil
}
