package datetime

import "time"

// Local presents zoned values in the process's local zone.
type Local struct{}

// UTC presents zoned values in UTC.
type UTC struct{}

func (Local) Location() *time.Location { return time.Local }

func (UTC) Location() *time.Location { return time.UTC }

// Zone is the closed set of zone policies. No other policy can satisfy it.
type Zone interface {
	Local | UTC
	Location() *time.Location
}

// Zoned is an instant presented in the location of its zone policy Z.
type Zoned[Z Zone] struct {
	time.Time
}

// In wraps t as a Zoned value, moving it into Z's location.
func In[Z Zone](t time.Time) Zoned[Z] {
	var z Z
	return Zoned[Z]{Time: t.In(z.Location())}
}

// ZoneName returns "local" or "utc" for Z.
func ZoneName[Z Zone]() string {
	var z Z
	switch any(z).(type) {
	case Local:
		return "local"
	default:
		return "utc"
	}
}
