package cwa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"

	apperrors "github.com/yijuchen/cwabot/pkg/errors"

	"github.com/yijuchen/cwabot/internal/domain/weather"
)

type forecast36Response struct {
	Records struct {
		Location []struct {
			LocationName   string `json:"locationName"`
			WeatherElement []struct {
				ElementName string `json:"elementName"`
				Time        []struct {
					StartTime string `json:"startTime"`
					EndTime   string `json:"endTime"`
					Parameter struct {
						ParameterName string `json:"parameterName"`
						ParameterUnit string `json:"parameterUnit"`
					} `json:"parameter"`
				} `json:"time"`
			} `json:"weatherElement"`
		} `json:"location"`
	} `json:"records"`
}

// Forecast36Hour fetches the three 12-hour county forecast windows. The city
// name must be in canonical spelling.
func (c *Client) Forecast36Hour(ctx context.Context, city string) ([]weather.ForecastPeriod, error) {
	params := url.Values{}
	params.Set("locationName", city)
	body, err := c.fetch(ctx, dataset36Hour, params)
	if err != nil {
		return nil, err
	}
	return parseForecast36Hour(body, city)
}

func parseForecast36Hour(body []byte, city string) ([]weather.ForecastPeriod, error) {
	var raw forecast36Response
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.Wrap("weather_decode", "decode 36-hour forecast response", err)
	}

	periods := make(map[string]*weather.ForecastPeriod)
	found := false
	for _, loc := range raw.Records.Location {
		if loc.LocationName != city {
			continue
		}
		found = true
		for _, element := range loc.WeatherElement {
			for _, entry := range element.Time {
				start, ok := parseFeedTime(entry.StartTime)
				if !ok {
					continue
				}
				end, _ := parseFeedTime(entry.EndTime)

				key := entry.StartTime
				period, ok := periods[key]
				if !ok {
					period = &weather.ForecastPeriod{Start: start, End: end}
					periods[key] = period
				}

				value := entry.Parameter.ParameterName
				switch element.ElementName {
				case "Wx":
					period.Weather = value
				case "MaxT":
					period.MaxTemp = floatField(value)
				case "MinT":
					period.MinTemp = floatField(value)
				case "PoP":
					period.PoP = floatField(value)
				case "CI":
					period.ComfortMax = value
					period.ComfortMin = value
				}
			}
		}
		break
	}
	if !found {
		return nil, apperrors.Wrap("weather_not_found", fmt.Sprintf("no 36-hour forecast for %q", city), nil)
	}

	out := make([]weather.ForecastPeriod, 0, len(periods))
	for _, p := range periods {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}
