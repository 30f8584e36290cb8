// Package tdstime binds calendar values as legacy TDS date/time parameters
// and reads them back from column values.
//
// Binder is the entry point for drivers that hold values as any; the typed
// codecs live in pkg/datetime and the type descriptors in pkg/typeinfo.
package tdstime

import (
	"fmt"
	"reflect"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/rawbytedev/tdstime/pkg/datetime"
	"github.com/rawbytedev/tdstime/pkg/typeinfo"
)

// kinds maps every supported Go type to the descriptor kind it binds as.
// time.Time binds as a zoned value in Options.Zone.
var kinds = map[reflect.Type]typeinfo.Kind{
	reflect.TypeOf((*civil.DateTime)(nil)).Elem():                 typeinfo.KindDateTime,
	reflect.TypeOf((*civil.Date)(nil)).Elem():                     typeinfo.KindDate,
	reflect.TypeOf((*civil.Time)(nil)).Elem():                     typeinfo.KindTime,
	reflect.TypeOf((*datetime.Zoned[datetime.UTC])(nil)).Elem():   typeinfo.KindZoned,
	reflect.TypeOf((*datetime.Zoned[datetime.Local])(nil)).Elem(): typeinfo.KindZoned,
	reflect.TypeOf((*time.Time)(nil)).Elem():                      typeinfo.KindZoned,
}

// Binder converts dynamically typed values. It is read-only after New and
// safe for concurrent use.
type Binder struct {
	opts Options
	log  zerolog.Logger

	dateTime datetime.DateTimeCodec
	date     datetime.DateCodec
	clock    datetime.TimeCodec
	utc      datetime.ZonedCodec[datetime.UTC]
	local    datetime.ZonedCodec[datetime.Local]
}

func New(opts Options) *Binder {
	if opts.Zone == "" {
		opts.Zone = ZoneUTC
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	co := opts.codec()
	return &Binder{
		opts:     opts,
		log:      log.With().Str("component", "tdstime").Logger(),
		dateTime: datetime.NewDateTimeCodec(co),
		date:     datetime.NewDateCodec(co),
		clock:    datetime.NewTimeCodec(co),
		utc:      datetime.NewZonedCodec[datetime.UTC](co),
		local:    datetime.NewZonedCodec[datetime.Local](co),
	}
}

func (b *Binder) Options() Options {
	return b.opts
}

func kindOf(t reflect.Type) (typeinfo.Kind, bool) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	k, ok := kinds[t]
	return k, ok
}

// TypeInfoOf returns the TypeInfo a driver announces when binding v.
// Pointers report the TypeInfo of their element type.
func (b *Binder) TypeInfoOf(v any) (typeinfo.TypeInfo, error) {
	if v == nil {
		return typeinfo.TypeInfo{}, ErrUnsupported
	}
	k, ok := kindOf(reflect.TypeOf(v))
	if !ok {
		return typeinfo.TypeInfo{}, fmt.Errorf("%w: %T", ErrUnsupported, v)
	}
	return typeinfo.Describe(k), nil
}

// Encode appends v to dst. A nil pointer to a supported type writes nothing
// and reports datetime.IsNullYes.
func (b *Binder) Encode(dst []byte, v any) ([]byte, datetime.IsNull, error) {
	if v == nil {
		return dst, datetime.IsNullNo, ErrUnsupported
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if _, ok := kindOf(rv.Type()); !ok {
			return dst, datetime.IsNullNo, fmt.Errorf("%w: %T", ErrUnsupported, v)
		}
		if rv.IsNil() {
			return dst, datetime.IsNullYes, nil
		}
		v = rv.Elem().Interface()
	}

	var (
		out    []byte
		isNull datetime.IsNull
		err    error
	)
	switch x := v.(type) {
	case civil.DateTime:
		out, isNull, err = b.dateTime.Encode(dst, x)
	case civil.Date:
		out, isNull, err = b.date.Encode(dst, x)
	case civil.Time:
		out, isNull, err = b.clock.Encode(dst, x)
	case datetime.Zoned[datetime.UTC]:
		out, isNull, err = b.utc.Encode(dst, x)
	case datetime.Zoned[datetime.Local]:
		out, isNull, err = b.local.Encode(dst, x)
	case time.Time:
		if b.opts.Zone == ZoneLocal {
			out, isNull, err = b.local.Encode(dst, datetime.In[datetime.Local](x))
		} else {
			out, isNull, err = b.utc.Encode(dst, datetime.In[datetime.UTC](x))
		}
	default:
		return dst, datetime.IsNullNo, fmt.Errorf("%w: %T", ErrUnsupported, v)
	}
	if err != nil {
		b.log.Debug().Err(err).Str("type", fmt.Sprintf("%T", v)).Msg("bind failed")
		return dst, datetime.IsNullNo, &BindError{Type: fmt.Sprintf("%T", v), Err: err}
	}
	return out, isNull, nil
}

// Decode reads ref into out, which must be a pointer to a supported type or
// a pointer to such a pointer. The second form turns a NULL column into a
// nil pointer; the first reports datetime.ErrUnexpectedNull.
//
// The column's reported TypeInfo is checked against the target's
// compatibility predicate before any byte is read.
func (b *Binder) Decode(ref datetime.ValueRef, out any) error {
	rv := reflect.ValueOf(out)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrNotPointer
	}
	elem := rv.Elem()

	if elem.Kind() == reflect.Pointer {
		if _, ok := kinds[elem.Type().Elem()]; !ok {
			return fmt.Errorf("%w: %s", ErrUnsupported, elem.Type())
		}
		if ref.IsNull() {
			elem.Set(reflect.Zero(elem.Type()))
			return nil
		}
		fresh := reflect.New(elem.Type().Elem())
		if err := b.Decode(ref, fresh.Interface()); err != nil {
			return err
		}
		elem.Set(fresh)
		return nil
	}

	kind, ok := kinds[elem.Type()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupported, elem.Type())
	}
	target := elem.Type().String()
	desc, _ := typeinfo.Lookup(kind)
	if !desc.Compatible(ref.Info) {
		err := &datetime.IncompatibleTypeError{Kind: kind, Expected: desc.Info, Reported: ref.Info}
		b.log.Debug().Stringer("reported", ref.Info).Stringer("expected", desc.Info).Str("target", target).Msg("column rejected")
		return &ColumnError{Info: ref.Info, Target: target, Err: err}
	}

	var err error
	switch p := out.(type) {
	case *civil.DateTime:
		*p, err = b.dateTime.Decode(ref)
	case *civil.Date:
		*p, err = b.date.Decode(ref)
	case *civil.Time:
		*p, err = b.clock.Decode(ref)
	case *datetime.Zoned[datetime.UTC]:
		*p, err = b.utc.Decode(ref)
	case *datetime.Zoned[datetime.Local]:
		*p, err = b.local.Decode(ref)
	case *time.Time:
		*p, err = b.decodeTime(ref)
	}
	if err != nil {
		b.log.Debug().Err(err).Stringer("reported", ref.Info).Str("target", target).Msg("column decode failed")
		return &ColumnError{Info: ref.Info, Target: target, Err: err}
	}
	return nil
}

func (b *Binder) decodeTime(ref datetime.ValueRef) (time.Time, error) {
	if b.opts.Zone == ZoneLocal {
		z, err := b.local.Decode(ref)
		return z.Time, err
	}
	z, err := b.utc.Decode(ref)
	return z.Time, err
}
