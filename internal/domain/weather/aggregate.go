package weather

import (
	"math"
	"sort"
	"time"
)

// AggregateDaily collapses forecast periods into one Daily per calendar date,
// ordered chronologically. Periods are grouped by the local calendar day of
// their start time (CWA reports Taiwan local time, no conversion needed).
// A date with zero periods is never emitted; a field with zero present values
// stays nil rather than defaulting to zero.
func AggregateDaily(periods []ForecastPeriod) []Daily {
	groups := make(map[string][]ForecastPeriod)
	dates := make([]string, 0)
	for _, p := range periods {
		key := p.Start.Format("2006-01-02")
		if _, seen := groups[key]; !seen {
			dates = append(dates, key)
		}
		groups[key] = append(groups[key], p)
	}
	sort.Strings(dates)

	days := make([]Daily, 0, len(dates))
	for _, date := range dates {
		days = append(days, aggregateDay(date, groups[date]))
	}
	return days
}

func aggregateDay(date string, periods []ForecastPeriod) Daily {
	day, _ := time.ParseInLocation("2006-01-02", date, Taipei)

	maxTemp := maxOf(collect(periods, func(p ForecastPeriod) *float64 { return p.MaxTemp }))
	minTemp := minOf(collect(periods, func(p ForecastPeriod) *float64 { return p.MinTemp }))
	maxApparent := maxOf(collect(periods, func(p ForecastPeriod) *float64 { return p.MaxApparent }))
	minApparent := minOf(collect(periods, func(p ForecastPeriod) *float64 { return p.MinApparent }))
	humidity := meanOf(collect(periods, func(p ForecastPeriod) *float64 { return p.Humidity }))
	pop := maxOf(collect(periods, func(p ForecastPeriod) *float64 { return p.PoP }))
	windSpeed := maxOf(collect(periods, func(p ForecastPeriod) *float64 { return p.WindSpeed }))
	uv := maxOf(collect(periods, func(p ForecastPeriod) *float64 { return p.UVIndex }))

	var windScale *int
	windLabel := NoData
	if windSpeed != nil {
		scale := BeaufortScale(*windSpeed)
		windScale = &scale
		windLabel = BeaufortLabel(scale)
	}

	var uvInt *int
	uvLabel := NoData
	if uv != nil {
		value, label := UVCategory(uv)
		uvInt = &value
		uvLabel = label
	}

	weekday := day.Weekday()
	d := Daily{
		Date:        date,
		DateDisplay: FormatDateDisplay(day),
		Weekday:     WeekdayLabel(day),
		Weather:     mostFrequent(collectStr(periods, func(p ForecastPeriod) string { return p.Weather })),
		MaxTemp:     roundToInt(maxTemp),
		MinTemp:     roundToInt(minTemp),
		MaxApparent: roundToInt(maxApparent),
		MinApparent: roundToInt(minApparent),
		Humidity:    roundToInt(humidity),
		PoP:         roundToInt(pop),
		WindScale:   windScale,
		WindLabel:   windLabel,
		UVIndex:     uvInt,
		UVLabel:     uvLabel,
		ComfortMax:  mostFrequent(collectStr(periods, func(p ForecastPeriod) string { return p.ComfortMax })),
		ComfortMin:  mostFrequent(collectStr(periods, func(p ForecastPeriod) string { return p.ComfortMin })),
		IsWeekend:   weekday == time.Saturday || weekday == time.Sunday,
	}

	d.Outfit = OutfitInputs{
		FeelsLike: midpoint(minApparent, maxApparent),
		MinTemp:   minTemp,
		MaxTemp:   maxTemp,
		Humidity:  humidity,
		PoP:       pop,
		Weather:   d.Weather,
		WindScale: windScale,
		UVIndex:   uvInt,
	}
	return d
}

func collect(periods []ForecastPeriod, pick func(ForecastPeriod) *float64) []float64 {
	out := make([]float64, 0, len(periods))
	for _, p := range periods {
		if v := pick(p); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func collectStr(periods []ForecastPeriod, pick func(ForecastPeriod) string) []string {
	out := make([]string, 0, len(periods))
	for _, p := range periods {
		if v := pick(p); v != "" && v != NoData {
			out = append(out, v)
		}
	}
	return out
}

func maxOf(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	best := values[0]
	for _, v := range values[1:] {
		if v > best {
			best = v
		}
	}
	return &best
}

func minOf(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	best := values[0]
	for _, v := range values[1:] {
		if v < best {
			best = v
		}
	}
	return &best
}

func meanOf(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	return &mean
}

// mostFrequent picks the modal string, first-seen order breaking ties.
// Absent values were already excluded by the collector.
func mostFrequent(values []string) string {
	if len(values) == 0 {
		return NoData
	}
	counts := make(map[string]int, len(values))
	order := make([]string, 0, len(values))
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best
}

func midpoint(lo, hi *float64) *float64 {
	switch {
	case lo != nil && hi != nil:
		mid := (*lo + *hi) / 2
		return &mid
	case lo != nil:
		return lo
	case hi != nil:
		return hi
	default:
		return nil
	}
}

func roundToInt(v *float64) *int {
	if v == nil {
		return nil
	}
	r := int(math.Round(*v))
	return &r
}
