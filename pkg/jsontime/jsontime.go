// Package jsontime provides the timestamp representation used on the ShareIt wire.
package jsontime

import (
	"bytes"
	"fmt"
	"time"
)

// Layout is the zoneless format clients send and receive. Zoneless values are UTC.
const Layout = "2006-01-02T15:04:05"

var parseLayouts = []string{time.RFC3339Nano, Layout, "2006-01-02T15:04:05.999999999"}

// Time is a time.Time that accepts both RFC 3339 and zoneless timestamps.
type Time struct {
	time.Time
}

// New wraps t in UTC.
func New(t time.Time) Time {
	return Time{Time: t.UTC()}
}

// Ptr returns a pointer to New(t), or nil when t is zero.
func Ptr(t time.Time) *Time {
	if t.IsZero() {
		return nil
	}
	v := New(t)
	return &v
}

// Parse reads s using any accepted layout.
func Parse(s string) (Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return New(t), nil
		}
	}
	return Time{}, fmt.Errorf("invalid timestamp %q: expected %s or RFC 3339", s, Layout)
}

// MarshalJSON writes the zoneless UTC layout.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(Layout) + `"`), nil
}

// UnmarshalJSON accepts null, RFC 3339 or the zoneless layout.
func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid timestamp %s", data)
	}
	parsed, err := Parse(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
