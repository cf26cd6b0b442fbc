package outfit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yijuchen/cwabot/internal/domain/weather"
)

func TestAdviseHotHumidHighUV(t *testing.T) {
	in := weather.OutfitInputs{
		FeelsLike: weather.Float(33),
		Humidity:  weather.Float(80),
		PoP:       weather.Float(10),
		Weather:   "晴",
		WindScale: weather.Int(weather.BeaufortScale(2)),
		UVIndex:   weather.Int(9),
	}
	advice := Advise(in)

	require.Equal(t, []string{
		lineHotExtremeHumid, // humid variant replaces the base hot line
		lineNoWind,
		lineUVExcess,
		lineUVCoverUp,
	}, advice.Lines)
	require.NotContains(t, advice.Lines, lineHeavyRain)
	require.NotContains(t, advice.Lines, lineModerateRain)
	// Excessive UV overrides the hot image; hot alone is neither rain nor cold.
	require.Equal(t, ImageHighUVI, advice.Image)
}

func TestAdviseFreezingHeavyRainStrongWind(t *testing.T) {
	in := weather.OutfitInputs{
		FeelsLike: weather.Float(8),
		Humidity:  weather.Float(50),
		PoP:       weather.Float(90),
		Weather:   "大雨",
		WindScale: weather.Int(weather.BeaufortScale(15)),
		UVIndex:   weather.Int(1),
	}
	require.Equal(t, 7, *in.WindScale)

	advice := Advise(in)
	require.Equal(t, []string{
		lineFreezing,
		lineHeavyRain,
		lineStrongWind,
		lineUVLow,
	}, advice.Lines)
	// Rain wins the image over both cold and wind.
	require.Equal(t, ImageHeavyRain, advice.Image)
}

func TestAdviseRuleOrderingAccumulates(t *testing.T) {
	in := weather.OutfitInputs{
		FeelsLike: weather.Float(25),
		Humidity:  weather.Float(30),
		PoP:       weather.Float(30),
		Weather:   "短暫陣雨",
		WindScale: weather.Int(5),
		UVIndex:   weather.Int(6),
	}
	advice := Advise(in)
	require.Equal(t, []string{
		lineWarm,
		lineDryAir,
		lineModerateRain,
		lineMildWind,
		lineUVHigh,
	}, advice.Lines)
	require.Equal(t, ImageRainy, advice.Image)
}

func TestAdviseUVDangerYieldsImageToCold(t *testing.T) {
	in := weather.OutfitInputs{
		FeelsLike: weather.Float(12),
		UVIndex:   weather.Int(11),
	}
	advice := Advise(in)
	require.Contains(t, advice.Lines, lineUVDanger)
	// Text is appended but the cold image stands.
	require.Equal(t, ImageCold, advice.Image)
}

func TestAdviseThunderstormKeyword(t *testing.T) {
	in := weather.OutfitInputs{
		FeelsLike: weather.Float(30),
		PoP:       weather.Float(30),
		Weather:   "午後雷陣雨",
	}
	advice := Advise(in)
	require.Equal(t, []string{lineHot, lineThunderstorm}, advice.Lines)
	require.Equal(t, ImageLightRain, advice.Image)
}

func TestAdviseApparentTemperatureFallback(t *testing.T) {
	in := weather.OutfitInputs{
		MinTemp: weather.Float(20),
		MaxTemp: weather.Float(28),
	}
	advice := Advise(in)
	require.Equal(t, []string{lineFallbackMild}, advice.Lines)
	require.Equal(t, ImageWarm, advice.Image)
}

func TestAdviseAllNullsNeverEmpty(t *testing.T) {
	advice := Advise(weather.OutfitInputs{})
	require.NotEmpty(t, advice.Lines)
	require.Equal(t, []string{lineComfortable}, advice.Lines)
	require.Equal(t, ImageComfortable, advice.Image)
}

func TestAdviseDeterministic(t *testing.T) {
	in := weather.OutfitInputs{
		FeelsLike: weather.Float(27.6),
		Humidity:  weather.Float(77),
		PoP:       weather.Float(40),
		Weather:   "多雲短暫雨",
		WindScale: weather.Int(3),
		UVIndex:   weather.Int(4),
	}
	first := Advise(in)
	second := Advise(in)
	require.Equal(t, first, second)
}

func TestAdviseThresholdPrecision(t *testing.T) {
	// 23.6 must fall in the cool band even if it would display as 24.
	advice := Advise(weather.OutfitInputs{FeelsLike: weather.Float(23.6)})
	require.Equal(t, []string{lineCool}, advice.Lines)

	advice = Advise(weather.OutfitInputs{FeelsLike: weather.Float(24.0)})
	require.Equal(t, []string{lineWarm}, advice.Lines)
}

func TestForObservation(t *testing.T) {
	obs := weather.Observation{
		StationName:   "臺中",
		Weather:       "晴",
		Temperature:   weather.Float(30),
		ApparentTemp:  weather.Float(34.2),
		Humidity:      weather.Float(78),
		Precipitation: weather.Float(0),
		WindSpeed:     weather.Float(2.0),
		UVIndex:       weather.Float(7),
	}
	advice := ForObservation(obs)
	require.Equal(t, []string{
		lineHotExtremeHumid,
		lineNoWind,
		lineUVHigh,
	}, advice.Lines)
	// High (not excessive) UV keeps the temperature image.
	require.Equal(t, ImageHot, advice.Image)
}

func TestForObservationFallsBackToAirTemperature(t *testing.T) {
	obs := weather.Observation{
		Weather:     "多雲",
		Temperature: weather.Float(16),
	}
	advice := ForObservation(obs)
	require.Equal(t, []string{lineChilly}, advice.Lines)
	require.Equal(t, ImageChilly, advice.Image)
}
