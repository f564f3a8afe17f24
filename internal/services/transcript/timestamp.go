// File: internal/services/transcript/timestamp.go
package transcript

import (
	"encoding/json"
	"math"
	"time"
)

// Date string layouts accepted from clients, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CoerceTimestamp resolves a client-supplied creation time. Clients send a
// numeric epoch (milliseconds), a parseable date string, or nothing at all;
// anything unusable falls back to the supplied fallback time.
func CoerceTimestamp(raw json.RawMessage, fallback time.Time) time.Time {
	if len(raw) == 0 || string(raw) == "null" {
		return fallback
	}

	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		if math.IsNaN(asNumber) || math.IsInf(asNumber, 0) {
			return fallback
		}
		return fromEpochMillis(asNumber)
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, asString); err == nil {
				return parsed
			}
		}
		return fallback
	}

	return fallback
}

func fromEpochMillis(millis float64) time.Time {
	sec := int64(millis) / 1000
	nsec := (int64(millis) % 1000) * int64(time.Millisecond)
	return time.Unix(sec, nsec)
}
