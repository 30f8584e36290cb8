package datetime

import "github.com/rawbytedev/tdstime/pkg/typeinfo"

// IsNull tells a nullable-column protocol whether Encode wrote a value.
type IsNull bool

const (
	IsNullNo  IsNull = false
	IsNullYes IsNull = true
)

// ValueRef is one column value as delivered by the row reader: the raw bytes
// and the TypeInfo the server reported for the column. A nil Data is SQL NULL.
// Codecs never retain Data past the Decode call.
type ValueRef struct {
	Info typeinfo.TypeInfo
	Data []byte
}

// Ref builds a ValueRef for data under the given TypeInfo.
func Ref(info typeinfo.TypeInfo, data []byte) ValueRef {
	return ValueRef{Info: info, Data: data}
}

func (v ValueRef) IsNull() bool {
	return v.Data == nil
}

// Bytes returns the raw column bytes, or ErrUnexpectedNull for a NULL column.
func (v ValueRef) Bytes() ([]byte, error) {
	if v.Data == nil {
		return nil, ErrUnexpectedNull
	}
	return v.Data, nil
}
