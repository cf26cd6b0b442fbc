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

// townForecastResponse covers both town-resolution datasets (the weekly
// F-D0047-091 and the hourly F-D0047-089); they share the Locations/Location
// nesting and the list-of-maps ElementValue encoding.
type townForecastResponse struct {
	Records struct {
		Locations []struct {
			Location []townLocation `json:"Location"`
		} `json:"Locations"`
	} `json:"records"`
}

type townLocation struct {
	LocationName   string `json:"LocationName"`
	WeatherElement []struct {
		ElementName string `json:"ElementName"`
		Time        []struct {
			StartTime    string              `json:"StartTime"`
			EndTime      string              `json:"EndTime"`
			DataTime     string              `json:"DataTime"`
			ElementValue []map[string]string `json:"ElementValue"`
		} `json:"Time"`
	} `json:"WeatherElement"`
}

// weeklyElements maps the weekly dataset's Chinese element names to the key
// inside its ElementValue entries.
var weeklyElements = map[string]string{
	"天氣現象":    "Weather",
	"最高溫度":    "MaxTemperature",
	"最高體感溫度":  "MaxApparentTemperature",
	"最低溫度":    "MinTemperature",
	"最低體感溫度":  "MinApparentTemperature",
	"平均相對濕度":  "RelativeHumidity",
	"12小時降雨機率": "ProbabilityOfPrecipitation",
	"風速":      "WindSpeed",
	"風向":      "WindDirection",
	"最大舒適度指數": "MaxComfortIndexDescription",
	"最小舒適度指數": "MinComfortIndexDescription",
	"紫外線指數":   "UVIndex",
}

// ForecastWeek fetches the one-week forecast as 12-hour day/night periods.
func (c *Client) ForecastWeek(ctx context.Context, city string) ([]weather.ForecastPeriod, error) {
	params := url.Values{}
	params.Set("LocationName", city)
	body, err := c.fetch(ctx, datasetWeekly, params)
	if err != nil {
		return nil, err
	}
	return parseForecastWeek(body, city)
}

func parseForecastWeek(body []byte, city string) ([]weather.ForecastPeriod, error) {
	var raw townForecastResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.Wrap("weather_decode", "decode weekly forecast response", err)
	}

	location := findTownLocation(raw, city)
	if location == nil {
		return nil, apperrors.Wrap("weather_not_found", fmt.Sprintf("no weekly forecast for %q", city), nil)
	}

	periods := make(map[string]*weather.ForecastPeriod)
	for _, element := range location.WeatherElement {
		field, ok := weeklyElements[element.ElementName]
		if !ok {
			continue
		}
		for _, entry := range element.Time {
			start, ok := parseFeedTime(entry.StartTime)
			if !ok {
				continue
			}
			end, _ := parseFeedTime(entry.EndTime)
			if len(entry.ElementValue) == 0 {
				continue
			}
			value := entry.ElementValue[0][field]

			key := entry.StartTime
			period, ok := periods[key]
			if !ok {
				period = &weather.ForecastPeriod{Start: start, End: end}
				periods[key] = period
			}

			switch field {
			case "Weather":
				period.Weather = value
			case "MaxTemperature":
				period.MaxTemp = floatField(value)
			case "MaxApparentTemperature":
				period.MaxApparent = floatField(value)
			case "MinTemperature":
				period.MinTemp = floatField(value)
			case "MinApparentTemperature":
				period.MinApparent = floatField(value)
			case "RelativeHumidity":
				period.Humidity = floatField(value)
			case "ProbabilityOfPrecipitation":
				period.PoP = floatField(value)
			case "WindSpeed":
				period.WindSpeed = floatField(value)
			case "WindDirection":
				period.WindDirection = value
			case "MaxComfortIndexDescription":
				period.ComfortMax = value
			case "MinComfortIndexDescription":
				period.ComfortMin = value
			case "UVIndex":
				period.UVIndex = floatField(value)
			}
		}
	}

	out := make([]weather.ForecastPeriod, 0, len(periods))
	for _, p := range periods {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func findTownLocation(raw townForecastResponse, city string) *townLocation {
	for _, group := range raw.Records.Locations {
		for i := range group.Location {
			if group.Location[i].LocationName == city {
				return &group.Location[i]
			}
		}
	}
	return nil
}
