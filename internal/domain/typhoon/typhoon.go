// Package typhoon models active tropical cyclone advisories from the CWA
// warning feed.
package typhoon

import "time"

// Report is one active cyclone: the latest analysed fix plus the forecast
// track points.
type Report struct {
	// ID is year + English name, stable across feed updates. Push dedupe
	// keys off it.
	ID      string
	Name    string // Chinese name, may be empty for unnamed depressions
	EngName string
	TDNo    string // CWA tropical depression number

	FixedAt   time.Time
	Longitude string
	Latitude  string

	MaxWindSpeed *float64 // m/s
	MaxGustSpeed *float64 // m/s
	Pressure     *float64 // hPa

	MovingSpeed     *float64 // km/h
	MovingDirection string   // Chinese compass label

	// StormRadius is the radius of the circle of 15 m/s winds, km.
	StormRadius    *float64
	StormQuadrants []string // per-quadrant radius lines, e.g. "東北170公里"

	Forecasts []Forecast
}

// Forecast is one forecast track point, tau hours after the analysis time.
type Forecast struct {
	Tau          int
	At           time.Time
	Longitude    string
	Latitude     string
	MaxWindSpeed *float64
	MaxGustSpeed *float64
	Pressure     *float64
	StormRadius  *float64
	// Radius70Percent is the 70% probability circle radius, km.
	Radius70Percent *float64
}

// ForecastAt returns the track point for the given lead time, or nil when the
// feed carries none for it.
func (r *Report) ForecastAt(tau int) *Forecast {
	for i := range r.Forecasts {
		if r.Forecasts[i].Tau == tau {
			return &r.Forecasts[i]
		}
	}
	return nil
}

// directionZh maps the feed's English compass abbreviations to the Chinese
// labels the cards show.
var directionZh = map[string]string{
	"N":      "北",
	"NNE":    "北北東",
	"NE":     "東北",
	"ENE":    "東北東",
	"E":      "東",
	"ESE":    "東南東",
	"SE":     "東南",
	"SSE":    "南南東",
	"S":      "南",
	"SSW":    "南南西",
	"SW":     "西南",
	"WSW":    "西南西",
	"W":      "西",
	"WNW":    "西北西",
	"NW":     "西北",
	"NNW":    "北北西",
	"Varies": "不規則",
}

// DirectionLabel translates a compass abbreviation; unknown or empty input
// yields "不明".
func DirectionLabel(abbrev string) string {
	if label, ok := directionZh[abbrev]; ok {
		return label
	}
	if abbrev == "" || abbrev == "NoData" {
		return "不明"
	}
	return abbrev
}
