package tdstime

import (
	"bytes"
	"encoding/hex"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/tdstime/internal/logging"
	"github.com/rawbytedev/tdstime/pkg/datetime"
	"github.com/rawbytedev/tdstime/pkg/typeinfo"
)

var scenario = civil.DateTime{
	Date: civil.Date{Year: 2024, Month: time.March, Day: 15},
	Time: civil.Time{Hour: 12, Minute: 30, Second: 45, Nanosecond: 500_000_000},
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestTypeInfoOf(t *testing.T) {
	b := New(DefaultOptions())
	cases := []struct {
		v    any
		want typeinfo.TypeInfo
	}{
		{scenario, typeinfo.New(typeinfo.DateTime, 8)},
		{&scenario, typeinfo.New(typeinfo.DateTime, 8)},
		{scenario.Date, typeinfo.New(typeinfo.DateTime, 8)},
		{scenario.Time, typeinfo.New(typeinfo.TimeN, 8)},
		{time.Now(), typeinfo.New(typeinfo.DateTimeOffsetN, 10)},
		{datetime.In[datetime.Local](time.Now()), typeinfo.New(typeinfo.DateTimeOffsetN, 10)},
	}
	for _, tc := range cases {
		got, err := b.TypeInfoOf(tc.v)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%T", tc.v)
	}

	_, err := b.TypeInfoOf(42)
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = b.TypeInfoOf(nil)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestEncodeDispatch(t *testing.T) {
	b := New(DefaultOptions())

	out, isNull, err := b.Encode(nil, scenario)
	require.NoError(t, err)
	assert.Equal(t, datetime.IsNullNo, isNull)
	assert.Equal(t, mustHex(t, "34b10000b233ce00"), out)

	out, _, err = b.Encode(nil, scenario.Date)
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "34b1000000000000"), out)

	out, _, err = b.Encode(nil, scenario.Time)
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "00000000b233ce00"), out)

	out, _, err = b.Encode(nil, scenario.In(time.FixedZone("", 2*3600)))
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "34b10000323ead000000"), out, "time.Time binds as UTC with a zero offset")
}

func TestEncodeNilPointerIsNull(t *testing.T) {
	b := New(DefaultOptions())
	var p *civil.DateTime
	out, isNull, err := b.Encode([]byte{9}, p)
	require.NoError(t, err)
	assert.Equal(t, datetime.IsNullYes, isNull)
	assert.Equal(t, []byte{9}, out)

	out, isNull, err = b.Encode(nil, &scenario)
	require.NoError(t, err)
	assert.Equal(t, datetime.IsNullNo, isNull)
	assert.Len(t, out, 8)
}

func TestEncodeErrors(t *testing.T) {
	b := New(DefaultOptions())
	_, _, err := b.Encode(nil, "2024-03-15")
	assert.ErrorIs(t, err, ErrUnsupported)
	var ip *int
	_, _, err = b.Encode(nil, ip)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, _, err = b.Encode(nil, civil.Date{Year: 2023, Month: time.February, Day: 29})
	var be *BindError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "civil.Date", be.Type)
	assert.ErrorIs(t, err, datetime.ErrRange)
}

func TestDecodeDispatch(t *testing.T) {
	b := New(DefaultOptions())
	wire := mustHex(t, "34b10000b233ce00")

	var got civil.DateTime
	require.NoError(t, b.Decode(datetime.Ref(typeinfo.New(typeinfo.DateTimeN, 8), wire), &got))
	assert.Equal(t, scenario, got)

	var d civil.Date
	require.NoError(t, b.Decode(datetime.Ref(typeinfo.New(typeinfo.DateTime, 8), wire), &d))
	assert.Equal(t, scenario.Date, d)

	var clock civil.Time
	require.NoError(t, b.Decode(datetime.Ref(typeinfo.New(typeinfo.TimeN, 8), wire), &clock))
	assert.Equal(t, scenario.Time, clock)

	var ts time.Time
	zoned := mustHex(t, "34b10000b233ce007800")
	require.NoError(t, b.Decode(datetime.Ref(typeinfo.New(typeinfo.DateTimeOffsetN, 10), zoned), &ts))
	assert.True(t, ts.Equal(scenario.In(time.UTC)))
	assert.Equal(t, time.UTC, ts.Location())

	var z datetime.Zoned[datetime.UTC]
	require.NoError(t, b.Decode(datetime.Ref(typeinfo.New(typeinfo.DateTimeOffsetN, 10), zoned), &z))
	assert.True(t, z.Equal(ts))
}

func TestDecodeRunsCompatibilityFirst(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.ProfileTest, &buf, "test")
	opts := DefaultOptions()
	opts.Logger = &log
	b := New(opts)

	var got civil.DateTime
	// width 4 is rejected before the short payload is looked at
	err := b.Decode(datetime.Ref(typeinfo.New(typeinfo.DateTime, 4), []byte{1, 2, 3, 4}), &got)
	assert.ErrorIs(t, err, datetime.ErrIncompatible)
	var ce *ColumnError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "civil.DateTime", ce.Target)
	assert.Contains(t, buf.String(), "column rejected")

	err = b.Decode(datetime.Ref(typeinfo.New(typeinfo.TimeN, 8), make([]byte, 8)), &got)
	assert.ErrorIs(t, err, datetime.ErrIncompatible)
}

func TestDecodeFormatError(t *testing.T) {
	b := New(DefaultOptions())
	var got civil.DateTime
	err := b.Decode(datetime.Ref(typeinfo.New(typeinfo.DateTime, 8), make([]byte, 7)), &got)
	assert.ErrorIs(t, err, datetime.ErrFormat)
}

func TestDecodeNull(t *testing.T) {
	b := New(DefaultOptions())
	null := datetime.Ref(typeinfo.New(typeinfo.DateTimeN, 8), nil)

	var got civil.DateTime
	assert.ErrorIs(t, b.Decode(null, &got), datetime.ErrUnexpectedNull)

	p := &civil.DateTime{}
	require.NoError(t, b.Decode(null, &p))
	assert.Nil(t, p)

	require.NoError(t, b.Decode(datetime.Ref(typeinfo.New(typeinfo.DateTimeN, 8), mustHex(t, "34b10000b233ce00")), &p))
	require.NotNil(t, p)
	assert.Equal(t, scenario, *p)
}

func TestDecodeBadTargets(t *testing.T) {
	b := New(DefaultOptions())
	ref := datetime.Ref(typeinfo.New(typeinfo.DateTime, 8), make([]byte, 8))
	var got civil.DateTime
	assert.ErrorIs(t, b.Decode(ref, got), ErrNotPointer)
	assert.ErrorIs(t, b.Decode(ref, nil), ErrNotPointer)
	var n int
	assert.ErrorIs(t, b.Decode(ref, &n), ErrUnsupported)
	var np *int
	assert.ErrorIs(t, b.Decode(ref, &np), ErrUnsupported)
}

func TestLocalZonePolicy(t *testing.T) {
	prev := time.Local
	time.Local = time.FixedZone("TEST", 2*3600)
	t.Cleanup(func() { time.Local = prev })

	opts := DefaultOptions()
	opts.Zone = ZoneLocal
	b := New(opts)
	instant := scenario.In(time.UTC)

	out, _, err := b.Encode(nil, instant)
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "34b10000b233ce007800"), out)

	var got time.Time
	require.NoError(t, b.Decode(datetime.Ref(typeinfo.New(typeinfo.DateTimeOffsetN, 10), out), &got))
	assert.True(t, got.Equal(instant))
	assert.Equal(t, 14, got.Hour())
}

func TestTruncateOption(t *testing.T) {
	opts := DefaultOptions()
	opts.Rounding = datetime.RoundTruncate
	b := New(opts)
	var got civil.DateTime
	// one tick reads back as zero milliseconds when truncating
	require.NoError(t, b.Decode(datetime.Ref(typeinfo.New(typeinfo.DateTime, 8), mustHex(t, "0000000001000000")), &got))
	assert.Equal(t, civil.Time{}, got.Time)
}
