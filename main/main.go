package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/rawbytedev/tdstime"
	"github.com/rawbytedev/tdstime/internal/logging"
	"github.com/rawbytedev/tdstime/pkg/datetime"
	"github.com/rawbytedev/tdstime/pkg/typeinfo"
)

// Layouts print fractional seconds without trailing zeros.
const (
	dateTimeLayout = "2006-01-02T15:04:05.999999999"
	timeLayout     = "15:04:05.999999999"
)

const usage = `usage:
  tdstime encode [-config file] [-json] -kind datetime|date|time|offset VALUE
  tdstime decode [-config file] [-json] -kind datetime|date|time|offset [-tag 0x3d] [-width 8] HEX
`

func main() {
	log := logging.New(logging.ProfileRuntime, os.Stderr, "tdstime")
	if err := run(os.Args[1:], os.Stdout, log); err != nil {
		log.Error().Err(err).Msg("tdstime failed")
		os.Exit(1)
	}
}

type result struct {
	Kind  string `json:"kind"`
	Type  string `json:"type"`
	Hex   string `json:"hex"`
	Value string `json:"value"`
}

func run(args []string, stdout io.Writer, log zerolog.Logger) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	cmd, args := args[0], args[1:]

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "TOML options file")
	asJSON := fs.Bool("json", false, "print JSON")
	kindName := fs.String("kind", "datetime", "datetime, date, time or offset")
	tag := fs.String("tag", "", "reported column type id (decode)")
	width := fs.Uint("width", 0, "reported column width (decode)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w\n%s", err, usage)
	}
	if fs.NArg() != 1 {
		return errors.New(usage)
	}

	opts := tdstime.DefaultOptions()
	if *configPath != "" {
		var err error
		if opts, err = tdstime.LoadOptions(*configPath); err != nil {
			return err
		}
		log.Debug().Str("path", *configPath).Stringer("rounding", opts.Rounding).Str("zone", string(opts.Zone)).Msg("loaded options")
	}
	opts.Logger = &log
	b := tdstime.New(opts)

	kind, err := parseKind(*kindName)
	if err != nil {
		return err
	}

	var res result
	switch cmd {
	case "encode":
		res, err = encode(b, kind, fs.Arg(0))
	case "decode":
		info := typeinfo.Describe(kind)
		if *tag != "" {
			id, err := strconv.ParseUint(*tag, 0, 8)
			if err != nil {
				return fmt.Errorf("parse -tag: %w", err)
			}
			info.Type = typeinfo.DataType(id)
		}
		if *width != 0 {
			info.Size = uint32(*width)
		}
		res, err = decode(b, kind, info, fs.Arg(0))
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		return enc.Encode(res)
	}
	if cmd == "encode" {
		_, err = fmt.Fprintln(stdout, res.Hex)
	} else {
		_, err = fmt.Fprintln(stdout, res.Value)
	}
	return err
}

func parseKind(s string) (typeinfo.Kind, error) {
	switch strings.ToLower(s) {
	case "datetime":
		return typeinfo.KindDateTime, nil
	case "date":
		return typeinfo.KindDate, nil
	case "time":
		return typeinfo.KindTime, nil
	case "offset", "datetimeoffset":
		return typeinfo.KindZoned, nil
	default:
		return 0, fmt.Errorf("unknown kind %q", s)
	}
}

func parseValue(kind typeinfo.Kind, s string) (any, error) {
	switch kind {
	case typeinfo.KindDateTime:
		return civil.ParseDateTime(s)
	case typeinfo.KindDate:
		return civil.ParseDate(s)
	case typeinfo.KindTime:
		return civil.ParseTime(s)
	default:
		return time.Parse(time.RFC3339Nano, s)
	}
}

func encode(b *tdstime.Binder, kind typeinfo.Kind, raw string) (result, error) {
	v, err := parseValue(kind, raw)
	if err != nil {
		return result{}, fmt.Errorf("parse %s value: %w", kind, err)
	}
	info, err := b.TypeInfoOf(v)
	if err != nil {
		return result{}, err
	}
	out, _, err := b.Encode(nil, v)
	if err != nil {
		return result{}, err
	}
	return result{Kind: kind.String(), Type: info.String(), Hex: hex.EncodeToString(out), Value: raw}, nil
}

func decode(b *tdstime.Binder, kind typeinfo.Kind, info typeinfo.TypeInfo, raw string) (result, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(raw, "0x"))
	if err != nil {
		return result{}, fmt.Errorf("parse hex: %w", err)
	}
	ref := datetime.Ref(info, data)

	var text string
	switch kind {
	case typeinfo.KindDateTime:
		var v civil.DateTime
		err = b.Decode(ref, &v)
		text = formatDateTime(v)
	case typeinfo.KindDate:
		var v civil.Date
		err = b.Decode(ref, &v)
		text = v.String()
	case typeinfo.KindTime:
		var v civil.Time
		err = b.Decode(ref, &v)
		text = formatTime(v)
	default:
		var v time.Time
		err = b.Decode(ref, &v)
		text = v.Format(time.RFC3339Nano)
	}
	if err != nil {
		return result{}, err
	}
	return result{Kind: kind.String(), Type: info.String(), Hex: hex.EncodeToString(data), Value: text}, nil
}

func formatDateTime(v civil.DateTime) string {
	return v.In(time.UTC).Format(dateTimeLayout)
}

func formatTime(v civil.Time) string {
	return civil.DateTime{Date: civil.Date{Year: 2000, Month: time.January, Day: 1}, Time: v}.In(time.UTC).Format(timeLayout)
}
