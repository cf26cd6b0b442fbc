// Package line turns chat input into bot actions and domain records into
// LINE messages. Keyword dispatch, flex card building and the webhook
// handler live here.
package line

import (
	"fmt"
	"math"
	"time"

	"github.com/yijuchen/cwabot/internal/domain/weather"
)

// Formatting helpers render domain values for the cards. Missing values
// render as 無資料 rather than dropping the row, so every card keeps the same
// shape.

func formatTemp(v *float64) string {
	if v == nil {
		return weather.NoData
	}
	return fmt.Sprintf("%.1f°C", *v)
}

func formatTempRange(lo, hi *int) string {
	if lo == nil || hi == nil {
		return weather.NoData
	}
	return fmt.Sprintf("%d°C ~ %d°C", *lo, *hi)
}

// formatSensation shows the apparent temperature only when it differs
// noticeably from the measured one.
func formatSensation(apparent, actual *float64) string {
	if apparent == nil {
		return weather.NoData
	}
	if actual != nil && math.Abs(*apparent-*actual) < 1.0 {
		return "與實際溫度相近"
	}
	return fmt.Sprintf("%.1f°C", *apparent)
}

func formatPercentFloat(v *float64) string {
	if v == nil {
		return weather.NoData
	}
	return fmt.Sprintf("%d%%", int(math.Round(*v)))
}

func formatPercentInt(v *int) string {
	if v == nil {
		return weather.NoData
	}
	return fmt.Sprintf("%d%%", *v)
}

// formatPrecipitation renders 無 below the drizzle threshold.
func formatPrecipitation(v *float64) string {
	if v == nil {
		return weather.NoData
	}
	if *v <= 0.1 {
		return "無"
	}
	return fmt.Sprintf("%.1f mm", *v)
}

func formatWindFromSpeed(speed *float64) string {
	if speed == nil {
		return weather.NoData
	}
	scale := weather.BeaufortScale(*speed)
	return fmt.Sprintf("%d 級 (%s)", scale, weather.BeaufortLabel(scale))
}

func formatWindFromScale(scale *int) string {
	if scale == nil {
		return weather.NoData
	}
	return fmt.Sprintf("%d 級 (%s)", *scale, weather.BeaufortLabel(*scale))
}

func formatPressure(v *float64) string {
	if v == nil {
		return weather.NoData
	}
	return fmt.Sprintf("%.1f hPa", *v)
}

func formatUV(index *int, label string) string {
	if index == nil {
		return weather.NoData
	}
	return fmt.Sprintf("%d (%s)", *index, label)
}

func formatObservedAt(ts time.Time) string {
	if ts.IsZero() {
		return "未知日期"
	}
	local := ts.In(weather.Taipei)
	return fmt.Sprintf("日期：%d年%d月%d日 (%s) %02d:%02d",
		local.Year(), int(local.Month()), local.Day(), weather.WeekdayLabel(local), local.Hour(), local.Minute())
}

// datePrefix labels a forecast date relative to now: 今天, 明天, or MM/DD.
func datePrefix(date string, now time.Time) string {
	today := now.In(weather.Taipei).Format("2006-01-02")
	switch date {
	case today:
		return "今天"
	case nextDay(today):
		return "明天"
	}
	if parsed, err := time.ParseInLocation("2006-01-02", date, weather.Taipei); err == nil {
		return parsed.Format("01/02")
	}
	return date
}

func nextDay(date string) string {
	parsed, err := time.ParseInLocation("2006-01-02", date, weather.Taipei)
	if err != nil {
		return ""
	}
	return parsed.AddDate(0, 0, 1).Format("2006-01-02")
}
