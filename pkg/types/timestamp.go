package types

import "time"

// Timestamp is the wire shape for server-assigned timestamps read back from the
// collection store: opaque seconds plus nanoseconds, never a formatted string.
type Timestamp struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int32 `json:"nanoseconds"`
}

// TimestampFrom converts a time.Time into the wire shape.
func TimestampFrom(t time.Time) Timestamp {
	return Timestamp{
		Seconds:     t.Unix(),
		Nanoseconds: int32(t.Nanosecond()),
	}
}

// TimestampPtr converts an optional time into an optional wire timestamp.
func TimestampPtr(t *time.Time) *Timestamp {
	if t == nil {
		return nil
	}
	ts := TimestampFrom(*t)
	return &ts
}

// Time converts back to a time.Time in UTC.
func (ts Timestamp) Time() time.Time {
	return time.Unix(ts.Seconds, int64(ts.Nanoseconds)).UTC()
}

// IsZero reports whether the timestamp carries no value.
func (ts Timestamp) IsZero() bool {
	return ts.Seconds == 0 && ts.Nanoseconds == 0
}
