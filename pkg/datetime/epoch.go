package datetime

import (
	"fmt"
	"math"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/rawbytedev/tdstime/internal/common"
	"github.com/rawbytedev/tdstime/pkg/typeinfo"
)

// Epoch is day 0 of the legacy layout. Encode and decode both count from it.
var Epoch = civil.Date{Year: 1900, Month: time.January, Day: 1}

const (
	TicksPerSecond = 300
	TicksPerDay    = 24 * 60 * 60 * TicksPerSecond // 25 920 000
	MaxTick        = TicksPerDay - 1

	millisPerDay = 24 * 60 * 60 * 1000
)

// Rounding selects how whole milliseconds map onto 1/300 s ticks.
type Rounding uint8

const (
	// RoundNearest rounds both directions to the nearest unit, so every tick
	// count survives a decode/encode cycle and 1 tick reads back as 3 ms,
	// 2 ticks as 7 ms.
	RoundNearest Rounding = iota
	// RoundTruncate uses ms*3/10 on encode and ticks/3*10 on decode.
	// Only multiples of 10 ms survive a round trip.
	RoundTruncate
)

func (r Rounding) String() string {
	switch r {
	case RoundNearest:
		return "nearest"
	case RoundTruncate:
		return "truncate"
	default:
		return fmt.Sprintf("rounding(%d)", uint8(r))
	}
}

// ParseRounding accepts the names printed by Rounding.String.
func ParseRounding(s string) (Rounding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest":
		return RoundNearest, nil
	case "truncate":
		return RoundTruncate, nil
	default:
		return 0, fmt.Errorf("datetime: unknown rounding %q", s)
	}
}

// Ticks converts milliseconds since midnight to wire ticks. The result can
// equal TicksPerDay under RoundNearest; callers normalize it.
func (r Rounding) Ticks(ms uint32) uint32 {
	if r == RoundTruncate {
		return uint32(uint64(ms) * 3 / 10)
	}
	return uint32((uint64(ms)*3 + 5) / 10)
}

// Millis converts wire ticks to milliseconds since midnight.
func (r Rounding) Millis(ticks uint32) uint32 {
	if r == RoundTruncate {
		return ticks / 3 * 10
	}
	return uint32((uint64(ticks)*10 + 1) / 3)
}

// Options tune every codec in this package. The zero value is ready to use.
type Options struct {
	Rounding Rounding
}

func millisOf(t civil.Time) uint32 {
	secs := (t.Hour*60+t.Minute)*60 + t.Second
	return uint32(secs*1000 + t.Nanosecond/int(time.Millisecond))
}

func timeOfMillis(ms uint32) civil.Time {
	ms %= millisPerDay
	return civil.Time{
		Hour:       int(ms / 3_600_000),
		Minute:     int(ms / 60_000 % 60),
		Second:     int(ms / 1000 % 60),
		Nanosecond: int(ms%1000) * int(time.Millisecond),
	}
}

func dateOfDays(days int32) civil.Date {
	return Epoch.AddDays(int(days))
}

// split turns dt into wire days and ticks. A time that rounds up to a whole
// day carries into the next date before the day count is range checked.
func (o Options) split(kind typeinfo.Kind, dt civil.DateTime) (int32, uint32, error) {
	if !dt.IsValid() {
		return 0, 0, &RangeError{Kind: kind, Value: dt.String(), Reason: "not a valid calendar value"}
	}
	days := int64(dt.Date.DaysSince(Epoch))
	ticks := o.Rounding.Ticks(millisOf(dt.Time))
	if ticks >= TicksPerDay {
		days++
		ticks -= TicksPerDay
	}
	if days < math.MinInt32 || days > math.MaxInt32 {
		return 0, 0, &RangeError{Kind: kind, Value: dt.String(), Reason: "day count exceeds 32 bits"}
	}
	return int32(days), ticks, nil
}

// appendLegacy writes the 8-byte layout: int32 LE days, uint32 LE ticks.
func appendLegacy(dst []byte, days int32, ticks uint32) []byte {
	dst = common.Grow(dst, typeinfo.DateTimeSize)
	dst = common.AppendInt32(dst, days)
	return common.AppendUint32(dst, ticks)
}

// readLegacy parses the 8-byte layout at the start of b, which must hold at
// least need bytes.
func readLegacy(kind typeinfo.Kind, b []byte, need int) (int32, uint32, error) {
	if len(b) < need {
		return 0, 0, &FormatError{Kind: kind, Need: need, Got: len(b)}
	}
	days, _ := common.Int32(b, 0)
	ticks, _ := common.Uint32(b, common.Int32Size)
	if ticks >= TicksPerDay {
		return 0, 0, &FormatError{Kind: kind, Reason: fmt.Sprintf("tick count %d exceeds one day", ticks)}
	}
	return days, ticks, nil
}
