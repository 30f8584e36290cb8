package datetime

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/rawbytedev/tdstime/internal/common"
	"github.com/rawbytedev/tdstime/pkg/typeinfo"
)

// MaxOffsetMinutes bounds the UTC offset field in either direction.
const MaxOffsetMinutes = 14 * 60

// ZonedCodec handles an instant with a UTC offset. The layout is the 8-byte
// datetime of the UTC instant followed by an int16 LE offset in minutes.
// On encode the offset is the one Z's location has at that instant; on
// decode the instant is presented in Z's location.
type ZonedCodec[Z Zone] struct {
	Opts Options
}

func NewZonedCodec[Z Zone](opts Options) ZonedCodec[Z] {
	return ZonedCodec[Z]{Opts: opts}
}

func (ZonedCodec[Z]) TypeInfo() typeinfo.TypeInfo {
	return typeinfo.Describe(typeinfo.KindZoned)
}

func (ZonedCodec[Z]) Compatible(reported typeinfo.TypeInfo) bool {
	return typeinfo.Compatible(typeinfo.KindZoned, reported)
}

func (ZonedCodec[Z]) SizeHint() int {
	return typeinfo.OffsetSize
}

func (c ZonedCodec[Z]) Encode(dst []byte, v Zoned[Z]) ([]byte, IsNull, error) {
	var z Z
	_, off := v.Time.In(z.Location()).Zone()
	if off%60 != 0 {
		return dst, IsNullNo, &RangeError{
			Kind:   typeinfo.KindZoned,
			Value:  v.Time.String(),
			Reason: fmt.Sprintf("offset of %ds is not a whole number of minutes", off),
		}
	}
	minutes := off / 60
	if minutes < -MaxOffsetMinutes || minutes > MaxOffsetMinutes {
		return dst, IsNullNo, &RangeError{
			Kind:   typeinfo.KindZoned,
			Value:  v.Time.String(),
			Reason: fmt.Sprintf("offset of %d minutes exceeds ±%d", minutes, MaxOffsetMinutes),
		}
	}
	days, ticks, err := c.Opts.split(typeinfo.KindZoned, civil.DateTimeOf(v.Time.UTC()))
	if err != nil {
		return dst, IsNullNo, err
	}
	dst = common.Grow(dst, typeinfo.OffsetSize)
	dst = appendLegacy(dst, days, ticks)
	return common.AppendInt16(dst, int16(minutes)), IsNullNo, nil
}

func (c ZonedCodec[Z]) Decode(v ValueRef) (Zoned[Z], error) {
	b, err := v.Bytes()
	if err != nil {
		return Zoned[Z]{}, err
	}
	days, ticks, err := readLegacy(typeinfo.KindZoned, b, typeinfo.OffsetSize)
	if err != nil {
		return Zoned[Z]{}, err
	}
	minutes, _ := common.Int16(b, typeinfo.DateTimeSize)
	if minutes < -MaxOffsetMinutes || minutes > MaxOffsetMinutes {
		return Zoned[Z]{}, &FormatError{
			Kind:   typeinfo.KindZoned,
			Reason: fmt.Sprintf("offset of %d minutes exceeds ±%d", minutes, MaxOffsetMinutes),
		}
	}
	utc := civil.DateTime{
		Date: dateOfDays(days),
		Time: timeOfMillis(c.Opts.Rounding.Millis(ticks)),
	}.In(time.UTC)
	return In[Z](utc), nil
}
