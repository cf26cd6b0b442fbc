package weather

import (
	"fmt"
	"time"
)

// Taipei is the calendar the CWA reports in. Upstream timestamps already
// carry the +08:00 offset, so this is only needed when deriving "today".
var Taipei = time.FixedZone("Asia/Taipei", 8*60*60)

// Observation is one measurement snapshot from a staffed weather station
// (dataset O-A0003-001). Missing or sentinel-valued fields are nil.
type Observation struct {
	StationName   string
	ObservedAt    time.Time // zero when the station reported no timestamp
	Weather       string
	Temperature   *float64 // °C
	ApparentTemp  *float64 // °C, derived from temperature + humidity
	Humidity      *float64 // %
	Precipitation *float64 // mm
	WindSpeed     *float64 // m/s
	WindDegrees   *float64
	Pressure      *float64 // hPa
	UVIndex       *float64
}

// ForecastPeriod is one forecast window (a day or night half, or an N-hour
// slice) for one place. A place+request yields a chronological,
// non-overlapping sequence of these.
type ForecastPeriod struct {
	Start         time.Time
	End           time.Time
	Weather       string
	MinTemp       *float64 // °C
	MaxTemp       *float64 // °C
	MinApparent   *float64 // °C
	MaxApparent   *float64 // °C
	Humidity      *float64 // %
	PoP           *float64 // %
	WindSpeed     *float64 // m/s
	WindDirection string
	ComfortMax    string
	ComfortMin    string
	UVIndex       *float64
}

// HourlySlot is one hour of the 3-day town forecast (dataset F-D0047-089).
type HourlySlot struct {
	At            time.Time
	ApparentTemp  *float64 // °C
	Humidity      *float64 // %
	WindScale     *int     // Beaufort, already converted
	WindDirection string
}

// OutfitInputs carries the unrounded values the outfit advisor compares
// against its thresholds. Display formatting loses the precision these
// rules depend on, so the raw values travel in their own namespace.
type OutfitInputs struct {
	FeelsLike     *float64 // representative apparent temperature, °C
	MinTemp       *float64 // °C
	MaxTemp       *float64 // °C
	Humidity      *float64 // %
	PoP           *float64 // %
	Precipitation *float64 // mm, current-observation variant only
	Weather       string
	WindScale     *int
	UVIndex       *int
}

// Daily is the canonical per-day record for one place, aggregated from the
// forecast periods sharing the same calendar date. Immutable after
// construction; recomputed on every request.
type Daily struct {
	Date        string // ISO date, e.g. "2025-07-02"
	DateDisplay string // e.g. "日期：2025年7月2日 (三)"
	Weekday     string // 一..日
	Weather     string
	MaxTemp     *int // °C
	MinTemp     *int // °C
	MaxApparent *int // °C
	MinApparent *int // °C
	Humidity    *int // average, %
	PoP         *int // maximum, %
	WindScale   *int // Beaufort 0-12
	WindLabel   string
	UVIndex     *int
	UVLabel     string
	ComfortMax  string
	ComfortMin  string
	IsWeekend   bool
	Outfit      OutfitInputs
}

// TodaySummary merges the 36-hour town forecast, the nearest hourly slot and
// the UV station maximum into the record backing the "today" card.
type TodaySummary struct {
	Location      string
	DateDisplay   string
	Weather       string
	MinTemp       *int // °C
	MaxTemp       *int // °C
	PoP           *int // %
	Comfort       string
	ApparentTemp  *float64 // °C, from the nearest hourly slot
	Humidity      *float64 // %
	WindScale     *int
	WindLabel     string
	WindDirection string
	UVIndex       *int
	UVLabel       string
	Outfit        OutfitInputs
}

// UVReading is one UV station's daily index maximum (dataset O-A0005-001).
type UVReading struct {
	Date      string
	StationID string
	Index     *float64
}

var weekdayZh = map[time.Weekday]string{
	time.Monday:    "一",
	time.Tuesday:   "二",
	time.Wednesday: "三",
	time.Thursday:  "四",
	time.Friday:    "五",
	time.Saturday:  "六",
	time.Sunday:    "日",
}

// WeekdayLabel returns the Chinese single-character weekday for a date.
func WeekdayLabel(t time.Time) string {
	return weekdayZh[t.Weekday()]
}

// FormatDateDisplay renders a date the way the cards show it,
// e.g. "日期：2025年7月2日 (三)".
func FormatDateDisplay(t time.Time) string {
	return fmt.Sprintf("日期：%d年%d月%d日 (%s)", t.Year(), int(t.Month()), t.Day(), WeekdayLabel(t))
}

// Float returns a pointer to v. Handy for literals in construction and tests.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
