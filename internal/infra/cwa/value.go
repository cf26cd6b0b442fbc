package cwa

import (
	"strconv"
	"strings"
	"time"

	"github.com/yijuchen/cwabot/internal/domain/weather"
)

// floatField converts a feed value to a number. The platform marks missing
// data with sentinel strings instead of omitting the field; all of those
// collapse to nil.
func floatField(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "", "-", "-99", "-99.0", weather.NoData:
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	if v == -99 {
		return nil
	}
	return &v
}

// flexFloat decodes a feed number that may arrive bare or quoted; sentinel
// values decode to a nil value.
type flexFloat struct {
	value *float64
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "null" {
		f.value = nil
		return nil
	}
	f.value = floatField(s)
	return nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05", // ISO without offset, Taiwan local
	"2006-01-02 15:04:05",
}

// parseFeedTime handles the timestamp spellings the datasets mix: RFC 3339
// with the +08:00 offset, and bare local time.
func parseFeedTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "-99" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, raw, weather.Taipei); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
