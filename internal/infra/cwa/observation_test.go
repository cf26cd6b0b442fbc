package cwa

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yijuchen/cwabot/internal/domain/weather"
	apperrors "github.com/yijuchen/cwabot/pkg/errors"
)

const observationFixture = `{
  "success": "true",
  "records": {
    "Station": [
      {
        "StationName": "基隆",
        "ObsTime": {"DateTime": "2025-08-20T22:16:00+08:00"},
        "WeatherElement": {
          "Weather": "陰",
          "Now": {"Precipitation": "1.5"},
          "WindDirection": "45.0",
          "WindSpeed": "3.2",
          "AirTemperature": "27.4",
          "RelativeHumidity": "88",
          "AirPressure": "1008.3",
          "UVIndex": "-99.0"
        }
      },
      {
        "StationName": "臺中",
        "ObsTime": {"DateTime": "2025-08-20T22:10:00+08:00"},
        "WeatherElement": {
          "Weather": "晴",
          "Now": {"Precipitation": "-99.0"},
          "WindDirection": "180.0",
          "WindSpeed": "-99.0",
          "AirTemperature": "33.0",
          "RelativeHumidity": "80",
          "AirPressure": "-99.0",
          "UVIndex": "5.0"
        }
      }
    ]
  }
}`

func TestParseObservation(t *testing.T) {
	obs, err := parseObservation([]byte(observationFixture), "臺中")
	require.NoError(t, err)

	require.Equal(t, "臺中", obs.StationName)
	require.Equal(t, "晴", obs.Weather)
	require.Equal(t, 33.0, *obs.Temperature)
	require.Equal(t, 80.0, *obs.Humidity)
	require.Equal(t, 5.0, *obs.UVIndex)
	require.Equal(t, 180.0, *obs.WindDegrees)

	// Sentinel -99.0 collapses to nil, never to zero.
	require.Nil(t, obs.Precipitation)
	require.Nil(t, obs.WindSpeed)
	require.Nil(t, obs.Pressure)

	// Apparent temperature is derived when both inputs are present.
	require.NotNil(t, obs.ApparentTemp)
	require.Equal(t, weather.ApparentTemperature(33.0, 80.0), *obs.ApparentTemp)

	want := time.Date(2025, 8, 20, 22, 10, 0, 0, weather.Taipei)
	require.True(t, obs.ObservedAt.Equal(want))
}

func TestParseObservationSentinelUV(t *testing.T) {
	obs, err := parseObservation([]byte(observationFixture), "基隆")
	require.NoError(t, err)
	require.Nil(t, obs.UVIndex)
	require.Equal(t, 1.5, *obs.Precipitation)
}

func TestParseObservationStationNotFound(t *testing.T) {
	_, err := parseObservation([]byte(observationFixture), "澎湖")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "weather_not_found"))
}

func TestParseObservationMalformed(t *testing.T) {
	_, err := parseObservation([]byte(`{"records": "not an object"}`), "臺中")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "weather_decode"))
}
