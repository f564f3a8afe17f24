// File: internal/services/transcript/timestamp_test.go
package transcript

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoerceTimestamp(t *testing.T) {
	fallback := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  json.RawMessage
		want time.Time
	}{
		{
			name: "epoch milliseconds",
			raw:  json.RawMessage(`1740000000000`),
			want: time.Unix(1740000000, 0),
		},
		{
			name: "epoch milliseconds with remainder",
			raw:  json.RawMessage(`1740000000123`),
			want: time.Unix(1740000000, 123*int64(time.Millisecond)),
		},
		{
			name: "rfc3339 string",
			raw:  json.RawMessage(`"2025-02-19T22:40:00Z"`),
			want: time.Date(2025, 2, 19, 22, 40, 0, 0, time.UTC),
		},
		{
			name: "date only string",
			raw:  json.RawMessage(`"2025-02-19"`),
			want: time.Date(2025, 2, 19, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "unparseable string",
			raw:  json.RawMessage(`"not a date"`),
			want: fallback,
		},
		{
			name: "missing",
			raw:  nil,
			want: fallback,
		},
		{
			name: "null",
			raw:  json.RawMessage(`null`),
			want: fallback,
		},
		{
			name: "object",
			raw:  json.RawMessage(`{"seconds": 12}`),
			want: fallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceTimestamp(tt.raw, fallback)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}
