package weather

import "math"

// NoData is the display sentinel used when a value cannot be derived.
const NoData = "無資料"

// beaufortBreakpoints are the upper bounds (m/s, inclusive) of scales 1..11.
// Speeds below 0.3 m/s are scale 0, speeds above 32.6 m/s are scale 12.
var beaufortBreakpoints = []float64{1.5, 3.3, 5.4, 7.9, 10.7, 13.8, 17.1, 20.7, 24.4, 28.4, 32.6}

var beaufortLabels = []string{
	"無風", "軟風", "輕風", "微風", "和風", "清風",
	"強風", "疾風", "大風", "烈風", "狂風", "暴風", "颶風",
}

// BeaufortScale converts a wind speed in m/s to the Beaufort scale (0-12).
// Negative input is treated as calm.
func BeaufortScale(speedMs float64) int {
	if speedMs < 0.3 {
		return 0
	}
	for i, upper := range beaufortBreakpoints {
		if speedMs <= upper {
			return i + 1
		}
	}
	return 12
}

// BeaufortLabel returns the Chinese description for a Beaufort scale value.
// Out-of-range scales yield the no-data sentinel rather than panicking.
func BeaufortLabel(scale int) string {
	if scale < 0 || scale >= len(beaufortLabels) {
		return NoData
	}
	return beaufortLabels[scale]
}

var compassLabels = []string{"北", "東北", "東", "東南", "南", "西南", "西", "西北"}

// CompassLabel maps wind direction degrees to an 8-point Chinese compass label.
// A nil reading yields the no-data sentinel.
func CompassLabel(degrees *float64) string {
	if degrees == nil {
		return NoData
	}
	index := int((*degrees+22.5)/45) % 8
	if index < 0 {
		index += 8
	}
	return compassLabels[index]
}

// ApparentTemperature estimates the perceived temperature from air temperature
// (°C) and relative humidity (%) using the NOAA heat-index polynomial. Below
// 80°F the heat index is not meaningful and the input temperature is returned
// unchanged; likewise when the adjustment would move the value by less than
// one degree.
func ApparentTemperature(tempC, humidityPct float64) float64 {
	tempF := tempC*9/5 + 32
	if tempF < 80 {
		return round1(tempC)
	}

	rh := humidityPct
	apparentF := -42.379 +
		2.04901523*tempF +
		10.14333127*rh -
		0.22475541*tempF*rh -
		6.83783e-3*tempF*tempF -
		5.481717e-2*rh*rh +
		1.22874e-3*tempF*tempF*rh +
		8.5282e-4*tempF*rh*rh -
		1.99e-6*tempF*tempF*rh*rh

	apparentC := (apparentF - 32) * 5 / 9
	if math.Abs(apparentC-tempC) < 1.0 {
		return round1(tempC)
	}
	return round1(apparentC)
}

// UVCategory grades a raw UV index into the CWA hazard bands. A nil reading
// yields (-1, no-data sentinel).
func UVCategory(raw *float64) (int, string) {
	if raw == nil {
		return -1, NoData
	}
	value := int(*raw)
	switch {
	case *raw >= 11:
		return value, "危險"
	case *raw >= 8:
		return value, "過量"
	case *raw >= 6:
		return value, "高"
	case *raw >= 3:
		return value, "中"
	case *raw >= 0:
		return value, "低"
	default:
		return -1, NoData
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
