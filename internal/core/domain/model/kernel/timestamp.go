package kernel

import "time"

// Timestamp is an instant expressed as milliseconds since the Unix epoch.
// Parcel records persist createdAt and deliveredAt in this form, and list
// views sort on it.
type Timestamp int64

// TimestampFromTime converts t to a Timestamp, truncating below millisecond precision.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Millis returns the raw epoch milliseconds.
func (t Timestamp) Millis() int64 {
	return int64(t)
}

// Time converts the timestamp back to a UTC time.Time.
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t)).UTC()
}

// IsZero reports whether the timestamp is the epoch itself, which persisted
// records use as "not set".
func (t Timestamp) IsZero() bool {
	return t == 0
}

// Before reports whether t is strictly earlier than other.
func (t Timestamp) Before(other Timestamp) bool {
	return t < other
}

// Clock supplies the current time to operations that record timestamps.
type Clock interface {
	Now() Timestamp
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() Timestamp {
	return TimestampFromTime(time.Now())
}

// FixedClock always returns the same instant. Intended for tests.
type FixedClock Timestamp

// Now returns the fixed instant.
func (c FixedClock) Now() Timestamp {
	return Timestamp(c)
}
