package tdstime

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/rawbytedev/tdstime/pkg/datetime"
)

// ZonePolicy picks the zone plain time.Time values are bound and read in.
type ZonePolicy string

const (
	ZoneUTC   ZonePolicy = "utc"
	ZoneLocal ZonePolicy = "local"
)

func ParseZonePolicy(s string) (ZonePolicy, error) {
	switch z := ZonePolicy(strings.ToLower(strings.TrimSpace(s))); z {
	case ZoneUTC, ZoneLocal:
		return z, nil
	case "":
		return ZoneUTC, nil
	default:
		return "", fmt.Errorf("tdstime: unknown zone policy %q", s)
	}
}

type Options struct {
	Rounding datetime.Rounding
	Zone     ZonePolicy
	// Logger receives debug events for rejected columns and failed
	// conversions. nil disables logging.
	Logger *zerolog.Logger
}

func DefaultOptions() Options {
	return Options{Rounding: datetime.RoundNearest, Zone: ZoneUTC}
}

func (o Options) codec() datetime.Options {
	return datetime.Options{Rounding: o.Rounding}
}

type fileConfig struct {
	Rounding string `toml:"rounding"`
	Zone     string `toml:"zone"`
}

// LoadOptions reads a TOML file on top of DefaultOptions. Keys absent from
// the file keep their defaults.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	opts, err := ParseOptions(string(data))
	if err != nil {
		return Options{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return opts, nil
}

// ParseOptions is LoadOptions over an in-memory TOML document.
func ParseOptions(data string) (Options, error) {
	opts := DefaultOptions()

	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Options{}, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Options{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}

	if meta.IsDefined("rounding") {
		r, err := datetime.ParseRounding(raw.Rounding)
		if err != nil {
			return Options{}, err
		}
		opts.Rounding = r
	}
	if meta.IsDefined("zone") {
		z, err := ParseZonePolicy(raw.Zone)
		if err != nil {
			return Options{}, err
		}
		opts.Zone = z
	}
	return opts, nil
}
