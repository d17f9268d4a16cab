package jsontime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalJSON(t *testing.T) {
	want := time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
	}{
		{"zoneless", `"2026-05-01T10:30:00"`},
		{"utc", `"2026-05-01T10:30:00Z"`},
		{"offset", `"2026-05-01T13:30:00+03:00"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Time
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.True(t, want.Equal(got.Time))
		})
	}
}

func TestUnmarshalJSON_Invalid(t *testing.T) {
	var got Time
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &got))
	assert.Error(t, json.Unmarshal([]byte(`12`), &got))
}

func TestUnmarshalJSON_NullLeavesPointerNil(t *testing.T) {
	var body struct {
		Start *Time `json:"start"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":null}`), &body))
	assert.Nil(t, body.Start)
}

func TestMarshalJSON_Zoneless(t *testing.T) {
	ts := New(time.Date(2026, 5, 1, 13, 30, 0, 0, time.FixedZone("MSK", 3*3600)))
	raw, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2026-05-01T10:30:00"`, string(raw))
}
