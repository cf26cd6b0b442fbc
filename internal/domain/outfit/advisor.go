// Package outfit derives clothing advice from normalized weather records.
// The advisor is a pure function: no clock, no randomness, no state between
// calls, and missing inputs skip a rule's contribution instead of failing.
package outfit

import (
	"strings"

	"github.com/yijuchen/cwabot/internal/domain/weather"
)

const (
	lineHotExtreme      = "天氣極度炎熱，請穿著最輕薄、透氣的衣物。"
	lineHotExtremeHumid = "天氣極度炎熱且潮濕悶熱，請選擇吸濕排汗、最輕薄透氣的衣物。"
	lineHot             = "天氣炎熱，建議穿著涼爽的短袖、短褲或裙子。"
	lineHotHumid        = "天氣炎熱且濕度偏高，體感悶熱，建議穿著透氣寬鬆的衣物。"
	lineWarm            = "天氣溫暖舒適，穿著短袖即可，可備薄外套應付室內外溫差。"
	lineWarmHumid       = "天氣溫暖但濕度偏高，建議穿著透氣排汗的短袖衣物。"
	lineCool            = "天氣涼爽，建議穿著薄長袖上衣或薄外套。"
	lineChilly          = "天氣微涼，建議穿著毛衣或較厚的外套，注意保暖。"
	lineCold            = "天氣寒冷，請穿著厚外套、毛衣，務必注意保暖。"
	lineFreezing        = "天氣非常寒冷，建議羽絨外套、厚毛衣、圍巾與手套，做好全面保暖。"

	lineFallbackHot  = "缺少體感溫度資料，依氣溫推估天氣偏熱，建議穿著輕薄透氣的衣物。"
	lineFallbackMild = "缺少體感溫度資料，依氣溫推估天氣溫和，建議依活動彈性增減衣物。"
	lineFallbackCool = "缺少體感溫度資料，依氣溫推估天氣偏涼，建議準備保暖外套。"

	lineDryAir = "空氣較乾燥，可攜帶保濕用品。"

	lineHeavyRain    = "降雨明顯，外出務必攜帶雨具，建議穿著防水衣物與鞋子。"
	lineThunderstorm = "午後有雷陣雨，外出請攜帶雨具。"
	lineModerateRain = "可能有降雨，建議攜帶雨具備用，穿著易乾的衣物。"

	lineStrongWind = "風勢強勁，風寒效應明顯，建議穿著防風外套並注意保暖。"
	lineMildWind   = "風勢稍強，體感溫度可能略低，可備一件薄防風外套。"
	lineLightWind  = "有微風，對穿著影響不大。"
	lineNoWind     = "風勢和緩，不需特別考量防風。"

	lineUVDanger   = "紫外線達危險級，避免長時間曝曬，務必做好全面防曬。"
	lineUVExcess   = "紫外線過量，外出請戴帽、太陽眼鏡並塗防曬乳。"
	lineUVCoverUp  = "天氣炎熱且紫外線強，可考慮穿著防曬衣物。"
	lineUVHigh     = "紫外線偏高，外出建議做好防曬措施。"
	lineUVModerate = "紫外線中等，適度防曬即可。"
	lineUVLow      = "紫外線低，無需特別防曬。"

	lineComfortable = "天氣狀況良好，穿著舒適即可。"
)

// humidVariants swap the phrasing of the hot-ish temperature lines when the
// air is also humid; humidity changes how the temperature advice reads, it is
// not an independent addition.
var humidVariants = map[string]string{
	lineHotExtreme: lineHotExtremeHumid,
	lineHot:        lineHotHumid,
	lineWarm:       lineWarmHumid,
}

// Advise applies the ordered rule set to one set of outfit inputs. Rules run
// in a fixed order (temperature, humidity, precipitation, wind, UV); advisory
// text only accumulates while later rules may override the selected image
// according to the priorities stated inline.
func Advise(in weather.OutfitInputs) Advice {
	var lines []string
	image := ImageDefault

	// Temperature band, by apparent temperature when available, otherwise a
	// coarser estimate from the day's temperature midpoint.
	baseLine := ""
	hotish := false
	if in.FeelsLike != nil {
		f := *in.FeelsLike
		switch {
		case f >= 32:
			baseLine, image = lineHotExtreme, ImageHot
		case f >= 28:
			baseLine, image = lineHot, ImageHot
		case f >= 24:
			baseLine, image = lineWarm, ImageWarm
		case f >= 19:
			baseLine, image = lineCool, ImageCool
		case f >= 14:
			baseLine, image = lineChilly, ImageChilly
		case f >= 10:
			baseLine, image = lineCold, ImageCold
		default:
			baseLine, image = lineFreezing, ImageFreezing
		}
		hotish = f >= 24
	} else if mid := tempMidpoint(in.MinTemp, in.MaxTemp); mid != nil {
		switch {
		case *mid >= 28:
			baseLine, image = lineFallbackHot, ImageHot
			hotish = true
		case *mid >= 22:
			baseLine, image = lineFallbackMild, ImageWarm
		default:
			baseLine, image = lineFallbackCool, ImageCool
		}
	}

	// Humidity rewrites the phrasing of a hot-ish temperature line; dry air
	// is an independent addition.
	if baseLine != "" {
		if in.Humidity != nil && *in.Humidity >= 75 && hotish {
			if variant, ok := humidVariants[baseLine]; ok {
				baseLine = variant
			}
		}
		lines = append(lines, baseLine)
	}
	if in.Humidity != nil && *in.Humidity <= 40 {
		lines = append(lines, lineDryAir)
	}

	// Precipitation. Rain images take priority over temperature images.
	rainKeyword := strings.Contains(in.Weather, "雨")
	switch {
	case heavyRain(in):
		lines = append(lines, lineHeavyRain)
		image = ImageHeavyRain
	case strings.Contains(in.Weather, "午後雷陣雨"):
		lines = append(lines, lineThunderstorm)
		image = ImageLightRain
	case rainKeyword && moderateRainLikely(in):
		lines = append(lines, lineModerateRain)
		image = ImageRainy
	}

	// Wind. The wind text is always appended; the windy image yields to rain.
	if in.WindScale != nil {
		switch w := *in.WindScale; {
		case w >= 7:
			lines = append(lines, lineStrongWind)
			if !image.isRain() {
				image = ImageWindy
			}
		case w >= 4:
			lines = append(lines, lineMildWind)
		case w == 3:
			lines = append(lines, lineLightWind)
		default:
			lines = append(lines, lineNoWind)
		}
	}

	// UV. High-UV imagery yields to rain and cold imagery, the text never does.
	if in.UVIndex != nil && *in.UVIndex >= 0 {
		switch uv := *in.UVIndex; {
		case uv >= 11:
			lines = append(lines, lineUVDanger)
			if !image.isRain() && !image.isCold() {
				image = ImageHighUVI
			}
		case uv >= 8:
			lines = append(lines, lineUVExcess)
			if hotish {
				lines = append(lines, lineUVCoverUp)
			}
			if !image.isRain() && !image.isCold() {
				image = ImageHighUVI
			}
		case uv >= 6:
			lines = append(lines, lineUVHigh)
		case uv >= 3:
			lines = append(lines, lineUVModerate)
		default:
			lines = append(lines, lineUVLow)
		}
	}

	// Guard against total data absence: always return something wearable.
	if len(lines) == 0 {
		lines = append(lines, lineComfortable)
		if image == ImageDefault {
			image = ImageComfortable
		}
	}

	return Advice{Lines: lines, Image: image}
}

// ForDaily derives advice for one aggregated forecast day.
func ForDaily(day weather.Daily) Advice {
	return Advise(day.Outfit)
}

// ForToday derives advice for the composed today summary.
func ForToday(summary weather.TodaySummary) Advice {
	return Advise(summary.Outfit)
}

// ForObservation derives advice for a current-observation snapshot. There is
// only a single reading, so no aggregation step runs.
func ForObservation(obs weather.Observation) Advice {
	in := weather.OutfitInputs{
		FeelsLike:     obs.ApparentTemp,
		Humidity:      obs.Humidity,
		Precipitation: obs.Precipitation,
		Weather:       obs.Weather,
	}
	if in.FeelsLike == nil {
		in.FeelsLike = obs.Temperature
	}
	if obs.WindSpeed != nil {
		scale := weather.BeaufortScale(*obs.WindSpeed)
		in.WindScale = &scale
	}
	if obs.UVIndex != nil {
		if value, _ := weather.UVCategory(obs.UVIndex); value >= 0 {
			in.UVIndex = &value
		}
	}
	return Advise(in)
}

func heavyRain(in weather.OutfitInputs) bool {
	if in.PoP != nil && *in.PoP > 50 {
		return true
	}
	if in.Precipitation != nil && *in.Precipitation > 5.0 {
		return true
	}
	return strings.Contains(in.Weather, "豪雨") || strings.Contains(in.Weather, "大雨")
}

func moderateRainLikely(in weather.OutfitInputs) bool {
	if in.PoP != nil {
		return *in.PoP >= 1 && *in.PoP <= 50
	}
	// Current-observation variant: no probability, judge by measured rainfall
	// or the phenomenon text alone.
	return in.Precipitation == nil || *in.Precipitation >= 0
}

func tempMidpoint(lo, hi *float64) *float64 {
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
