package cwa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	apperrors "github.com/yijuchen/cwabot/pkg/errors"

	"github.com/yijuchen/cwabot/internal/domain/weather"
)

type uvResponse struct {
	Records struct {
		WeatherElement struct {
			Date     string `json:"Date"`
			Location []struct {
				StationID string    `json:"StationID"`
				UVIndex   flexFloat `json:"UVIndex"`
			} `json:"location"`
		} `json:"weatherElement"`
	} `json:"records"`
}

// UVIndex fetches the daily UV maximum for one monitoring station.
func (c *Client) UVIndex(ctx context.Context, stationID string) (weather.UVReading, error) {
	body, err := c.fetch(ctx, datasetUVIndex, url.Values{})
	if err != nil {
		return weather.UVReading{}, err
	}
	return parseUVIndex(body, stationID)
}

func parseUVIndex(body []byte, stationID string) (weather.UVReading, error) {
	var raw uvResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return weather.UVReading{}, apperrors.Wrap("weather_decode", "decode uv index response", err)
	}

	element := raw.Records.WeatherElement
	for _, loc := range element.Location {
		if loc.StationID != stationID {
			continue
		}
		return weather.UVReading{
			Date:      element.Date,
			StationID: loc.StationID,
			Index:     loc.UVIndex.value,
		}, nil
	}
	return weather.UVReading{}, apperrors.Wrap("weather_not_found", fmt.Sprintf("no uv reading for station %q", stationID), nil)
}
