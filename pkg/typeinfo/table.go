package typeinfo

import "slices"

// Kind identifies one of the native temporal value shapes a codec exists for.
type Kind int

const (
	KindDateTime Kind = iota // date + time, no zone
	KindDate
	KindTime
	KindZoned // date + time + zone policy
)

func (k Kind) String() string {
	switch k {
	case KindDateTime:
		return "datetime"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindZoned:
		return "datetimeoffset"
	default:
		return "unknown"
	}
}

// Descriptor is what a native kind declares: the TypeInfo it announces when
// binding a parameter, plus the extra tags it accepts when reading a column.
type Descriptor struct {
	Info       TypeInfo
	Equivalent []DataType
}

// Compatible reports whether a decoder for d may be applied to a column the
// server described as reported. The tag must be the primary tag or one of the
// declared equivalents and the width must match exactly.
func (d Descriptor) Compatible(reported TypeInfo) bool {
	if reported.Size != d.Info.Size {
		return false
	}
	return reported.Type == d.Info.Type || slices.Contains(d.Equivalent, reported.Type)
}

// Widths of the legacy layouts.
const (
	DateTimeSize = 8
	OffsetSize   = DateTimeSize + 2
)

// table holds every descriptor; codecs read their TypeInfo from here so the
// announced width and the encoded width cannot drift apart.
var table = map[Kind]Descriptor{
	KindDateTime: {
		Info:       New(DateTime, DateTimeSize),
		Equivalent: []DataType{DateTimeN},
	},
	KindDate: {
		Info:       New(DateTime, DateTimeSize),
		Equivalent: []DataType{DateTimeN},
	},
	KindTime: {
		Info: New(TimeN, DateTimeSize),
	},
	KindZoned: {
		Info: New(DateTimeOffsetN, OffsetSize),
	},
}

// Lookup returns the descriptor registered for k.
func Lookup(k Kind) (Descriptor, bool) {
	d, ok := table[k]
	return d, ok
}

// Describe returns the TypeInfo registered for k. A Kind outside the
// declared constants describes as the zero TypeInfo, which no column is
// compatible with; use Lookup to tell the two apart.
func Describe(k Kind) TypeInfo {
	return table[k].Info
}

// Compatible is shorthand for Lookup(k) followed by Descriptor.Compatible.
func Compatible(k Kind, reported TypeInfo) bool {
	d, ok := table[k]
	return ok && d.Compatible(reported)
}

// Kinds lists the registered kinds in declaration order.
func Kinds() []Kind {
	return []Kind{KindDateTime, KindDate, KindTime, KindZoned}
}
