package cwa

import (
	"context"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/yijuchen/cwabot/pkg/errors"

	"github.com/yijuchen/cwabot/internal/domain/typhoon"
)

type typhoonResponse struct {
	Records struct {
		TropicalCyclones struct {
			TropicalCyclone []tropicalCyclone `json:"tropicalCyclone"`
		} `json:"tropicalCyclones"`
	} `json:"records"`
}

type tropicalCyclone struct {
	Year           string `json:"year"`
	TyphoonName    string `json:"typhoonName"`
	CwaTyphoonName string `json:"cwaTyphoonName"`
	CwaTdNo        string `json:"cwaTdNo"`
	AnalysisData   struct {
		Fix []cycloneFix `json:"fix"`
	} `json:"analysisData"`
	ForecastData struct {
		Fix []cycloneForecastFix `json:"fix"`
	} `json:"forecastData"`
}

type cycloneFix struct {
	FixTime         string       `json:"fixTime"`
	Coordinate      string       `json:"coordinate"`
	MaxWindSpeed    string       `json:"maxWindSpeed"`
	MaxGustSpeed    string       `json:"maxGustSpeed"`
	Pressure        string       `json:"pressure"`
	MovingSpeed     string       `json:"movingSpeed"`
	MovingDirection string       `json:"movingDirection"`
	CircleOf15Ms    circleOf15Ms `json:"circleOf15Ms"`
}

type cycloneForecastFix struct {
	Tau          string       `json:"tau"`
	InitTime     string       `json:"initTime"`
	Coordinate   string       `json:"coordinate"`
	MaxWindSpeed string       `json:"maxWindSpeed"`
	MaxGustSpeed string       `json:"maxGustSpeed"`
	Pressure     string       `json:"pressure"`
	CircleOf15Ms circleOf15Ms `json:"circleOf15Ms"`
	Radius70     string       `json:"radiusOf70PercentProbability"`
}

type circleOf15Ms struct {
	Radius        string `json:"radius"`
	QuadrantRadii struct {
		Radius []struct {
			Dir   string `json:"dir"`
			Value string `json:"value"`
		} `json:"radius"`
	} `json:"quadrantRadii"`
}

// ActiveTyphoon fetches the tropical cyclone warning feed. A nil report with
// a nil error means no cyclone is currently under advisory.
func (c *Client) ActiveTyphoon(ctx context.Context) (*typhoon.Report, error) {
	body, err := c.fetch(ctx, datasetTyphoon, url.Values{})
	if err != nil {
		return nil, err
	}
	return parseTyphoon(body)
}

func parseTyphoon(body []byte) (*typhoon.Report, error) {
	var raw typhoonResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.Wrap("weather_decode", "decode typhoon response", err)
	}

	cyclones := raw.Records.TropicalCyclones.TropicalCyclone
	if len(cyclones) == 0 {
		return nil, nil
	}
	// The feed lists every cyclone under advisory; the cards track the first.
	cyclone := cyclones[0]

	report := &typhoon.Report{
		Name:    cyclone.CwaTyphoonName,
		EngName: cyclone.TyphoonName,
		TDNo:    cyclone.CwaTdNo,
	}
	if cyclone.Year != "" && cyclone.TyphoonName != "" {
		report.ID = cyclone.Year + "_" + cyclone.TyphoonName
	}

	if fixes := cyclone.AnalysisData.Fix; len(fixes) > 0 {
		latest := fixes[len(fixes)-1]
		if ts, ok := parseFeedTime(latest.FixTime); ok {
			report.FixedAt = ts
		}
		report.Longitude, report.Latitude = splitCoordinate(latest.Coordinate)
		report.MaxWindSpeed = floatField(latest.MaxWindSpeed)
		report.MaxGustSpeed = floatField(latest.MaxGustSpeed)
		report.Pressure = floatField(latest.Pressure)
		report.MovingSpeed = floatField(latest.MovingSpeed)
		report.MovingDirection = typhoon.DirectionLabel(latest.MovingDirection)
		report.StormRadius = floatField(latest.CircleOf15Ms.Radius)
		for _, quadrant := range latest.CircleOf15Ms.QuadrantRadii.Radius {
			if quadrant.Dir == "" || quadrant.Value == "" {
				continue
			}
			report.StormQuadrants = append(report.StormQuadrants,
				typhoon.DirectionLabel(quadrant.Dir)+quadrant.Value+"公里")
		}
	}

	for _, point := range cyclone.ForecastData.Fix {
		tau, err := strconv.Atoi(strings.TrimSpace(point.Tau))
		if err != nil || tau == 0 {
			continue
		}
		forecast := typhoon.Forecast{
			Tau:             tau,
			MaxWindSpeed:    floatField(point.MaxWindSpeed),
			MaxGustSpeed:    floatField(point.MaxGustSpeed),
			Pressure:        floatField(point.Pressure),
			StormRadius:     floatField(point.CircleOf15Ms.Radius),
			Radius70Percent: floatField(point.Radius70),
		}
		forecast.Longitude, forecast.Latitude = splitCoordinate(point.Coordinate)
		if ts, ok := parseFeedTime(point.InitTime); ok {
			forecast.At = ts.Add(time.Duration(tau) * time.Hour)
		}
		report.Forecasts = append(report.Forecasts, forecast)
	}
	sort.Slice(report.Forecasts, func(i, j int) bool {
		return report.Forecasts[i].Tau < report.Forecasts[j].Tau
	})

	return report, nil
}

// splitCoordinate splits the feed's "lon,lat" string.
func splitCoordinate(raw string) (lon, lat string) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return "", ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}
