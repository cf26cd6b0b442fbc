package cwa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	apperrors "github.com/yijuchen/cwabot/pkg/errors"

	"github.com/yijuchen/cwabot/internal/domain/weather"
)

type observationResponse struct {
	Records struct {
		Station []observationStation `json:"Station"`
	} `json:"records"`
}

type observationStation struct {
	StationName string `json:"StationName"`
	ObsTime     struct {
		DateTime string `json:"DateTime"`
	} `json:"ObsTime"`
	WeatherElement struct {
		Weather string `json:"Weather"`
		Now     struct {
			Precipitation string `json:"Precipitation"`
		} `json:"Now"`
		WindDirection    string `json:"WindDirection"`
		WindSpeed        string `json:"WindSpeed"`
		AirTemperature   string `json:"AirTemperature"`
		RelativeHumidity string `json:"RelativeHumidity"`
		AirPressure      string `json:"AirPressure"`
		UVIndex          string `json:"UVIndex"`
	} `json:"WeatherElement"`
}

// Observation fetches the current measurement for one staffed station. The
// station name must match exactly; there is no nearest-station fallback.
func (c *Client) Observation(ctx context.Context, stationName string) (weather.Observation, error) {
	params := url.Values{}
	params.Set("StationName", stationName)
	body, err := c.fetch(ctx, datasetObservation, params)
	if err != nil {
		return weather.Observation{}, err
	}
	return parseObservation(body, stationName)
}

func parseObservation(body []byte, stationName string) (weather.Observation, error) {
	var raw observationResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return weather.Observation{}, apperrors.Wrap("weather_decode", "decode observation response", err)
	}

	var station *observationStation
	for i := range raw.Records.Station {
		if raw.Records.Station[i].StationName == stationName {
			station = &raw.Records.Station[i]
			break
		}
	}
	if station == nil {
		return weather.Observation{}, apperrors.Wrap("weather_not_found",
			fmt.Sprintf("no observation station named %q", stationName), nil)
	}

	elems := station.WeatherElement
	obs := weather.Observation{
		StationName:   station.StationName,
		Weather:       elems.Weather,
		Temperature:   floatField(elems.AirTemperature),
		Humidity:      floatField(elems.RelativeHumidity),
		Precipitation: floatField(elems.Now.Precipitation),
		WindSpeed:     floatField(elems.WindSpeed),
		WindDegrees:   floatField(elems.WindDirection),
		Pressure:      floatField(elems.AirPressure),
		UVIndex:       floatField(elems.UVIndex),
	}
	if ts, ok := parseFeedTime(station.ObsTime.DateTime); ok {
		obs.ObservedAt = ts
	}
	if obs.Temperature != nil && obs.Humidity != nil {
		apparent := weather.ApparentTemperature(*obs.Temperature, *obs.Humidity)
		obs.ApparentTemp = &apparent
	}
	return obs, nil
}
