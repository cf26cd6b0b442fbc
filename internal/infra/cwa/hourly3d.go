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

// ForecastHourly fetches the 3-day hourly forecast slots carrying apparent
// temperature, humidity and wind.
func (c *Client) ForecastHourly(ctx context.Context, city string) ([]weather.HourlySlot, error) {
	params := url.Values{}
	params.Set("LocationName", city)
	body, err := c.fetch(ctx, datasetHourly, params)
	if err != nil {
		return nil, err
	}
	return parseForecastHourly(body, city)
}

func parseForecastHourly(body []byte, city string) ([]weather.HourlySlot, error) {
	var raw townForecastResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.Wrap("weather_decode", "decode hourly forecast response", err)
	}

	location := findTownLocation(raw, city)
	if location == nil {
		return nil, apperrors.Wrap("weather_not_found", fmt.Sprintf("no hourly forecast for %q", city), nil)
	}

	slots := make(map[string]*weather.HourlySlot)
	for _, element := range location.WeatherElement {
		for _, entry := range element.Time {
			at, ok := parseFeedTime(entry.DataTime)
			if !ok || len(entry.ElementValue) == 0 {
				continue
			}
			value := entry.ElementValue[0]

			slot, ok := slots[entry.DataTime]
			if !ok {
				slot = &weather.HourlySlot{At: at}
				slots[entry.DataTime] = slot
			}

			switch element.ElementName {
			case "體感溫度":
				slot.ApparentTemp = floatField(value["ApparentTemperature"])
			case "相對濕度":
				slot.Humidity = floatField(value["RelativeHumidity"])
			case "風速":
				if speed := floatField(value["WindSpeed"]); speed != nil {
					scale := weather.BeaufortScale(*speed)
					slot.WindScale = &scale
				}
			case "風向":
				slot.WindDirection = value["WindDirection"]
			}
		}
	}

	out := make([]weather.HourlySlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out, nil
}
