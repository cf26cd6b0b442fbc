package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func period(start string, mutate func(*ForecastPeriod)) ForecastPeriod {
	ts, err := time.ParseInLocation("2006-01-02 15:04", start, Taipei)
	if err != nil {
		panic(err)
	}
	p := ForecastPeriod{Start: ts, End: ts.Add(12 * time.Hour)}
	if mutate != nil {
		mutate(&p)
	}
	return p
}

func TestAggregateDailyDayAndNight(t *testing.T) {
	periods := []ForecastPeriod{
		period("2025-07-02 06:00", func(p *ForecastPeriod) {
			p.Weather = "多雲時晴"
			p.MinTemp = Float(26)
			p.MaxTemp = Float(33)
			p.MinApparent = Float(28)
			p.MaxApparent = Float(37)
			p.Humidity = Float(70)
			p.PoP = Float(20)
			p.WindSpeed = Float(4)
			p.ComfortMax = "悶熱"
			p.ComfortMin = "舒適"
			p.UVIndex = Float(9)
		}),
		period("2025-07-02 18:00", func(p *ForecastPeriod) {
			p.Weather = "多雲"
			p.MinTemp = Float(25)
			p.MaxTemp = Float(28)
			p.MinApparent = Float(27)
			p.MaxApparent = Float(31)
			p.Humidity = Float(80)
			p.PoP = Float(40)
			p.WindSpeed = Float(6)
			p.ComfortMax = "悶熱"
			p.ComfortMin = "舒適"
		}),
	}

	days := AggregateDaily(periods)
	require.Len(t, days, 1)

	day := days[0]
	require.Equal(t, "2025-07-02", day.Date)
	require.Equal(t, "三", day.Weekday)
	require.Equal(t, "日期：2025年7月2日 (三)", day.DateDisplay)
	require.False(t, day.IsWeekend)

	require.Equal(t, 33, *day.MaxTemp)
	require.Equal(t, 25, *day.MinTemp)
	require.Equal(t, 37, *day.MaxApparent)
	require.Equal(t, 27, *day.MinApparent)
	require.Equal(t, 75, *day.Humidity) // mean of 70 and 80
	require.Equal(t, 40, *day.PoP)      // max of 20 and 40
	require.Equal(t, 4, *day.WindScale) // 6 m/s is Beaufort 4
	require.Equal(t, "和風", day.WindLabel)
	require.Equal(t, 9, *day.UVIndex)
	require.Equal(t, "過量", day.UVLabel)
	require.Equal(t, "悶熱", day.ComfortMax)

	// Weather ties break in first-seen order.
	require.Equal(t, "多雲時晴", day.Weather)

	// Raw outfit inputs keep unrounded values.
	require.Equal(t, 32.0, *day.Outfit.FeelsLike) // midpoint of 27 and 37
	require.Equal(t, 75.0, *day.Outfit.Humidity)
	require.Equal(t, 40.0, *day.Outfit.PoP)
}

func TestAggregateDailyMinNeverAboveMax(t *testing.T) {
	periods := []ForecastPeriod{
		period("2025-07-02 06:00", func(p *ForecastPeriod) {
			p.MinTemp = Float(20)
			p.MaxTemp = Float(24)
		}),
		period("2025-07-02 18:00", func(p *ForecastPeriod) {
			p.MinTemp = Float(18)
			p.MaxTemp = Float(21)
		}),
	}
	day := AggregateDaily(periods)[0]
	require.NotNil(t, day.MinTemp)
	require.NotNil(t, day.MaxTemp)
	require.LessOrEqual(t, *day.MinTemp, *day.MaxTemp)
}

func TestAggregateDailyNullPropagation(t *testing.T) {
	periods := []ForecastPeriod{
		period("2025-07-02 06:00", func(p *ForecastPeriod) { p.MaxTemp = Float(30) }),
		period("2025-07-02 18:00", func(p *ForecastPeriod) { p.MaxTemp = Float(27) }),
	}
	day := AggregateDaily(periods)[0]
	require.Nil(t, day.Humidity, "absent humidity must stay nil, not become 0")
	require.Nil(t, day.PoP)
	require.Nil(t, day.WindScale)
	require.Equal(t, NoData, day.WindLabel)
	require.Nil(t, day.UVIndex)
	require.Equal(t, NoData, day.UVLabel)
	require.Equal(t, NoData, day.Weather)
}

func TestAggregateDailyNightOnly(t *testing.T) {
	// The last partial day of a 7-day window often has only a night half.
	periods := []ForecastPeriod{
		period("2025-07-08 18:00", func(p *ForecastPeriod) {
			p.Weather = "陰短暫雨"
			p.MinTemp = Float(22)
			p.MaxTemp = Float(24)
			p.Humidity = Float(88)
			p.PoP = Float(60)
		}),
	}
	days := AggregateDaily(periods)
	require.Len(t, days, 1)
	require.Equal(t, "2025-07-08", days[0].Date)
	require.Equal(t, 22, *days[0].MinTemp)
	require.Equal(t, 24, *days[0].MaxTemp)
	require.Equal(t, 88, *days[0].Humidity)
}

func TestAggregateDailyEmptyInput(t *testing.T) {
	require.Empty(t, AggregateDaily(nil))
}

func TestAggregateDailyMultipleDaysSorted(t *testing.T) {
	periods := []ForecastPeriod{
		period("2025-07-05 06:00", func(p *ForecastPeriod) { p.MaxTemp = Float(31) }),
		period("2025-07-03 06:00", func(p *ForecastPeriod) { p.MaxTemp = Float(29) }),
		period("2025-07-04 06:00", func(p *ForecastPeriod) { p.MaxTemp = Float(30) }),
	}
	days := AggregateDaily(periods)
	require.Len(t, days, 3)
	require.Equal(t, "2025-07-03", days[0].Date)
	require.Equal(t, "2025-07-04", days[1].Date)
	require.Equal(t, "2025-07-05", days[2].Date)

	// 2025-07-05 is a Saturday.
	require.True(t, days[2].IsWeekend)
	require.False(t, days[0].IsWeekend)
}

func TestMostFrequentFirstSeenTieBreak(t *testing.T) {
	require.Equal(t, "多雲", mostFrequent([]string{"多雲", "晴", "晴", "多雲"}))
	require.Equal(t, "晴", mostFrequent([]string{"晴", "多雲"}))
	require.Equal(t, NoData, mostFrequent(nil))
}
