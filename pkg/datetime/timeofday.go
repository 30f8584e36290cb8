package datetime

import (
	"cloud.google.com/go/civil"

	"github.com/rawbytedev/tdstime/pkg/typeinfo"
)

// TimeCodec handles a time of day. It writes the 8-byte layout with a zero
// day count and reads back only the tick half.
type TimeCodec struct {
	Opts Options
}

func NewTimeCodec(opts Options) TimeCodec {
	return TimeCodec{Opts: opts}
}

func (TimeCodec) TypeInfo() typeinfo.TypeInfo {
	return typeinfo.Describe(typeinfo.KindTime)
}

func (TimeCodec) Compatible(reported typeinfo.TypeInfo) bool {
	return typeinfo.Compatible(typeinfo.KindTime, reported)
}

func (TimeCodec) SizeHint() int {
	return typeinfo.DateTimeSize
}

// Encode clamps a time that rounds up past the last tick to MaxTick, since a
// time of day has no date to carry into.
func (c TimeCodec) Encode(dst []byte, v civil.Time) ([]byte, IsNull, error) {
	if !v.IsValid() {
		return dst, IsNullNo, &RangeError{Kind: typeinfo.KindTime, Value: v.String(), Reason: "not a valid time of day"}
	}
	ticks := c.Opts.Rounding.Ticks(millisOf(v))
	if ticks > MaxTick {
		ticks = MaxTick
	}
	return appendLegacy(dst, 0, ticks), IsNullNo, nil
}

func (c TimeCodec) Decode(v ValueRef) (civil.Time, error) {
	b, err := v.Bytes()
	if err != nil {
		return civil.Time{}, err
	}
	_, ticks, err := readLegacy(typeinfo.KindTime, b, typeinfo.DateTimeSize)
	if err != nil {
		return civil.Time{}, err
	}
	return timeOfMillis(c.Opts.Rounding.Millis(ticks)), nil
}
