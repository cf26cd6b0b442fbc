package weather

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/yijuchen/cwabot/pkg/errors"

	"github.com/yijuchen/cwabot/internal/domain/place"
)

// Source fetches raw weather data, one method per upstream dataset.
type Source interface {
	Observation(ctx context.Context, stationName string) (Observation, error)
	Forecast36Hour(ctx context.Context, city string) ([]ForecastPeriod, error)
	ForecastWeek(ctx context.Context, city string) ([]ForecastPeriod, error)
	ForecastHourly(ctx context.Context, city string) ([]HourlySlot, error)
	UVIndex(ctx context.Context, stationID string) (UVReading, error)
}

// Service answers the weather queries behind the chat actions. City names are
// normalized and validated here; adapters below receive canonical spelling
// only.
type Service interface {
	Current(ctx context.Context, city string) (Observation, error)
	Today(ctx context.Context, city string) (TodaySummary, error)
	Week(ctx context.Context, city string) ([]Daily, error)
	Weekend(ctx context.Context, city string) ([]Daily, error)
}

type service struct {
	source Source
	logger *slog.Logger
	now    func() time.Time
}

// NewService builds the weather query service.
func NewService(source Source, logger *slog.Logger) Service {
	return &service{
		source: source,
		logger: logger.With("component", "weather_service"),
		now:    time.Now,
	}
}

func (s *service) resolveCity(city string) (string, error) {
	normalized := place.Normalize(city)
	if !place.IsValid(normalized) {
		return "", apperrors.Wrap("place_invalid", fmt.Sprintf("unknown city %q", city), nil)
	}
	return normalized, nil
}

func (s *service) Current(ctx context.Context, city string) (Observation, error) {
	normalized, err := s.resolveCity(city)
	if err != nil {
		return Observation{}, err
	}
	station, ok := place.ObservationStation(normalized)
	if !ok {
		return Observation{}, apperrors.Wrap("place_invalid", fmt.Sprintf("no observation station for %q", normalized), nil)
	}
	obs, err := s.source.Observation(ctx, station)
	if err != nil {
		return Observation{}, err
	}
	s.logger.Info("current observation resolved", "city", normalized, "station", station)
	return obs, nil
}

func (s *service) Week(ctx context.Context, city string) ([]Daily, error) {
	normalized, err := s.resolveCity(city)
	if err != nil {
		return nil, err
	}
	periods, err := s.source.ForecastWeek(ctx, normalized)
	if err != nil {
		return nil, err
	}
	days := AggregateDaily(periods)
	s.logger.Info("weekly forecast aggregated", "city", normalized, "days", len(days))
	return days, nil
}

func (s *service) Weekend(ctx context.Context, city string) ([]Daily, error) {
	days, err := s.Week(ctx, city)
	if err != nil {
		return nil, err
	}
	today := s.now().In(Taipei).Format("2006-01-02")
	weekend := make([]Daily, 0, 2)
	for _, day := range days {
		if day.IsWeekend && day.Date >= today {
			weekend = append(weekend, day)
		}
	}
	return weekend, nil
}

func (s *service) Today(ctx context.Context, city string) (TodaySummary, error) {
	normalized, err := s.resolveCity(city)
	if err != nil {
		return TodaySummary{}, err
	}

	periods, err := s.source.Forecast36Hour(ctx, normalized)
	if err != nil {
		return TodaySummary{}, err
	}

	now := s.now().In(Taipei)
	relevant := todayPeriods(periods, now)
	if len(relevant) == 0 {
		return TodaySummary{}, apperrors.Wrap("weather_not_found",
			fmt.Sprintf("no forecast window covers today for %q", normalized), nil)
	}

	summary := TodaySummary{
		Location:    normalized,
		DateDisplay: FormatDateDisplay(now),
		Weather:     mostFrequent(collectStr(relevant, func(p ForecastPeriod) string { return p.Weather })),
		Comfort:     joinUnique(relevant),
	}
	minTemp := minOf(collect(relevant, func(p ForecastPeriod) *float64 { return p.MinTemp }))
	maxTemp := maxOf(collect(relevant, func(p ForecastPeriod) *float64 { return p.MaxTemp }))
	pop := maxOf(collect(relevant, func(p ForecastPeriod) *float64 { return p.PoP }))
	summary.MinTemp = roundToInt(minTemp)
	summary.MaxTemp = roundToInt(maxTemp)
	summary.PoP = roundToInt(pop)

	// The hourly slots refine the card with apparent temperature, humidity and
	// wind; losing them degrades the card, it does not fail the query.
	if slots, err := s.source.ForecastHourly(ctx, normalized); err != nil {
		s.logger.Warn("hourly forecast unavailable", "city", normalized, "error", err)
	} else if slot := nearestSlot(slots, now); slot != nil {
		summary.ApparentTemp = slot.ApparentTemp
		summary.Humidity = slot.Humidity
		summary.WindScale = slot.WindScale
		summary.WindDirection = slot.WindDirection
		if slot.WindScale != nil {
			summary.WindLabel = BeaufortLabel(*slot.WindScale)
		}
	}

	if stationID, ok := place.UVStationID(normalized); ok {
		if reading, err := s.source.UVIndex(ctx, stationID); err != nil {
			s.logger.Warn("uv index unavailable", "city", normalized, "station", stationID, "error", err)
		} else if reading.Index != nil {
			value, label := UVCategory(reading.Index)
			if value >= 0 {
				summary.UVIndex = &value
				summary.UVLabel = label
			}
		}
	}

	summary.Outfit = OutfitInputs{
		FeelsLike: summary.ApparentTemp,
		MinTemp:   minTemp,
		MaxTemp:   maxTemp,
		Humidity:  summary.Humidity,
		PoP:       pop,
		Weather:   summary.Weather,
		WindScale: summary.WindScale,
		UVIndex:   summary.UVIndex,
	}
	return summary, nil
}

// todayPeriods selects the 36-hour windows relevant to "today": any window
// overlapping the local calendar day, plus the early-morning window of
// tomorrow when the query lands in the last hour before midnight.
func todayPeriods(periods []ForecastPeriod, now time.Time) []ForecastPeriod {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, Taipei)
	dayEnd := dayStart.AddDate(0, 0, 1)

	relevant := make([]ForecastPeriod, 0, len(periods))
	for _, p := range periods {
		overlaps := p.Start.Before(dayEnd) && p.End.After(dayStart)
		lateNight := now.Hour() >= 23 &&
			!p.Start.Before(dayEnd) && p.Start.Before(dayEnd.Add(6*time.Hour))
		if overlaps || lateNight {
			relevant = append(relevant, p)
		}
	}
	return relevant
}

// nearestSlot returns the hourly slot closest to now, or nil when none exist.
func nearestSlot(slots []HourlySlot, now time.Time) *HourlySlot {
	if len(slots) == 0 {
		return nil
	}
	best := 0
	bestDelta := absDuration(slots[0].At.Sub(now))
	for i := 1; i < len(slots); i++ {
		if delta := absDuration(slots[i].At.Sub(now)); delta < bestDelta {
			best, bestDelta = i, delta
		}
	}
	return &slots[best]
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// joinUnique merges the comfort descriptions of the windows, deduplicated in
// first-seen order, e.g. "悶熱、舒適".
func joinUnique(periods []ForecastPeriod) string {
	seen := make(map[string]struct{})
	parts := make([]string, 0, len(periods))
	for _, p := range periods {
		for _, v := range []string{p.ComfortMax, p.ComfortMin} {
			if v == "" || v == NoData {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return NoData
	}
	return strings.Join(parts, "、")
}
