package typeinfo

import "fmt"

// DataType is the TDS column type id a server reports for a column.
type DataType uint8

// Fixed-length and byte-length temporal types.
// http://msdn.microsoft.com/en-us/library/dd341171.aspx
const (
	DateTim4        DataType = 0x3a
	DateTime        DataType = 0x3d
	DateTimeN       DataType = 0x6f
	DateN           DataType = 0x28
	TimeN           DataType = 0x29
	DateTime2N      DataType = 0x2a
	DateTimeOffsetN DataType = 0x2b
)

func (t DataType) String() string {
	switch t {
	case DateTim4:
		return "smalldatetime"
	case DateTime:
		return "datetime"
	case DateTimeN:
		return "datetimen"
	case DateN:
		return "daten"
	case TimeN:
		return "timen"
	case DateTime2N:
		return "datetime2n"
	case DateTimeOffsetN:
		return "datetimeoffsetn"
	default:
		return fmt.Sprintf("type(0x%02x)", uint8(t))
	}
}

// TypeInfo is the tag and byte width pair a native type declares and a
// reported column must satisfy.
type TypeInfo struct {
	Type DataType
	Size uint32
}

func New(t DataType, size uint32) TypeInfo {
	return TypeInfo{Type: t, Size: size}
}

func (ti TypeInfo) String() string {
	return fmt.Sprintf("%s(%d)", ti.Type, ti.Size)
}
