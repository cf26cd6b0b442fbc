package line

import (
	"testing"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/stretchr/testify/require"

	"github.com/yijuchen/cwabot/internal/domain/outfit"
	"github.com/yijuchen/cwabot/internal/domain/typhoon"
	"github.com/yijuchen/cwabot/internal/domain/weather"
)

// flattenTexts walks a component tree and collects every FlexText string.
func flattenTexts(components []messaging_api.FlexComponentInterface) []string {
	var out []string
	for _, component := range components {
		switch c := component.(type) {
		case *messaging_api.FlexText:
			out = append(out, c.Text)
		case *messaging_api.FlexBox:
			out = append(out, flattenTexts(c.Contents)...)
		}
	}
	return out
}

func bubbleTexts(t *testing.T, msg *messaging_api.FlexMessage) []string {
	t.Helper()
	bubble, ok := msg.Contents.(*messaging_api.FlexBubble)
	require.True(t, ok, "expected a bubble, got %T", msg.Contents)
	texts := flattenTexts(bubble.Header.Contents)
	return append(texts, flattenTexts(bubble.Body.Contents)...)
}

func TestTodayCardRows(t *testing.T) {
	summary := weather.TodaySummary{
		Location:     "臺北市",
		DateDisplay:  "日期：2025年7月2日 (三)",
		Weather:      "多雲時晴",
		MinTemp:      weather.Int(26),
		MaxTemp:      weather.Int(34),
		PoP:          weather.Int(60),
		Comfort:      "悶熱",
		ApparentTemp: weather.Float(36.5),
		Humidity:     weather.Float(72),
		WindScale:    weather.Int(4),
		WindLabel:    "和風",
		UVIndex:      weather.Int(9),
		UVLabel:      "過量",
	}

	texts := bubbleTexts(t, todayCard(summary))
	require.Contains(t, texts, "📍 臺北市 今日天氣")
	require.Contains(t, texts, "日期：2025年7月2日 (三)")
	require.Contains(t, texts, "🌈 天氣狀況：")
	require.Contains(t, texts, "多雲時晴")
	require.Contains(t, texts, "26°C ~ 34°C")
	require.Contains(t, texts, "36.5°C")
	require.Contains(t, texts, "60%")
	require.Contains(t, texts, "4 級 (和風)")
	require.Contains(t, texts, "9 (過量)")
	require.Contains(t, texts, "想查詢其他縣市的今日天氣嗎？可以直接輸入縣市名稱哦！")
}

func TestTodayCardMissingValuesStayVisible(t *testing.T) {
	texts := bubbleTexts(t, todayCard(weather.TodaySummary{Location: "臺北市"}))
	count := 0
	for _, text := range texts {
		if text == weather.NoData {
			count++
		}
	}
	// Every value row renders 無資料 rather than disappearing.
	require.GreaterOrEqual(t, count, 6)
}

func TestCurrentWeatherCard(t *testing.T) {
	obs := weather.Observation{
		StationName:   "臺北",
		ObservedAt:    time.Date(2025, 8, 20, 22, 16, 0, 0, weather.Taipei),
		Weather:       "陰",
		Temperature:   weather.Float(30.2),
		ApparentTemp:  weather.Float(35.1),
		Humidity:      weather.Float(79),
		Precipitation: weather.Float(0),
		WindSpeed:     weather.Float(2.1),
		WindDegrees:   weather.Float(90),
		Pressure:      weather.Float(1006.8),
	}

	msg := currentWeatherCard("臺北市", obs)
	require.Equal(t, "臺北市 即時天氣", msg.AltText)
	texts := bubbleTexts(t, msg)
	require.Contains(t, texts, "日期：2025年8月20日 (三) 22:16")
	require.Contains(t, texts, "30.2°C")
	require.Contains(t, texts, "35.1°C")
	require.Contains(t, texts, "無")
	require.Contains(t, texts, "東")
	require.Contains(t, texts, "1006.8 hPa")
	require.Contains(t, texts, "--- 資訊僅供參考，請以中央氣象署最新發布為準 ---")
}

func TestForecastCarouselPrefixesDates(t *testing.T) {
	now := time.Date(2025, 7, 2, 10, 0, 0, 0, weather.Taipei)
	days := []weather.Daily{
		{Date: "2025-07-02", DateDisplay: "日期：2025年7月2日 (三)"},
		{Date: "2025-07-03", DateDisplay: "日期：2025年7月3日 (四)"},
		{Date: "2025-07-04", DateDisplay: "日期：2025年7月4日 (五)"},
	}

	msg := forecastCarousel("臺北市", "臺北市 一週天氣預報", days, now)
	carousel, ok := msg.Contents.(*messaging_api.FlexCarousel)
	require.True(t, ok)
	require.Len(t, carousel.Contents, 3)

	headers := []string{
		flattenTexts(carousel.Contents[0].Header.Contents)[0],
		flattenTexts(carousel.Contents[1].Header.Contents)[0],
		flattenTexts(carousel.Contents[2].Header.Contents)[0],
	}
	require.Equal(t, []string{"今天 臺北市", "明天 臺北市", "07/04 臺北市"}, headers)
}

func TestForecastCarouselCapsAtTenBubbles(t *testing.T) {
	days := make([]weather.Daily, 14)
	for i := range days {
		days[i] = weather.Daily{Date: "2025-07-02"}
	}
	msg := forecastCarousel("臺北市", "alt", days, time.Now())
	carousel := msg.Contents.(*messaging_api.FlexCarousel)
	require.Len(t, carousel.Contents, 10)
}

func TestOutfitCardHeroImage(t *testing.T) {
	advice := outfit.Advice{
		Lines: []string{"天氣炎熱，建議穿著涼爽的短袖、短褲或裙子。"},
		Image: outfit.ImageHot,
	}
	msg := outfitCard("👕 臺北市 今日穿搭建議", advice, "https://img.example.com/outfit")
	bubble := msg.Contents.(*messaging_api.FlexBubble)
	hero, ok := bubble.Hero.(*messaging_api.FlexImage)
	require.True(t, ok)
	require.Equal(t, "https://img.example.com/outfit/hot.png", hero.Url)
	require.Contains(t, flattenTexts(bubble.Body.Contents), "．天氣炎熱，建議穿著涼爽的短袖、短褲或裙子。")
}

func TestOutfitCardWithoutBaseURLHasNoHero(t *testing.T) {
	msg := outfitCard("title", outfit.Advice{Lines: []string{"x"}, Image: outfit.ImageHot}, "")
	bubble := msg.Contents.(*messaging_api.FlexBubble)
	require.Nil(t, bubble.Hero)
}

func TestTyphoonCardSections(t *testing.T) {
	fixed := time.Date(2025, 7, 23, 14, 0, 0, 0, weather.Taipei)
	report := &typhoon.Report{
		ID:              "2025_GAEMI",
		Name:            "凱米",
		EngName:         "GAEMI",
		FixedAt:         fixed,
		Longitude:       "125.3",
		Latitude:        "22.1",
		MaxWindSpeed:    weather.Float(43),
		MaxGustSpeed:    weather.Float(53),
		Pressure:        weather.Float(950),
		MovingSpeed:     weather.Float(12),
		MovingDirection: "西北",
		StormRadius:     weather.Float(200),
		StormQuadrants:  []string{"東北250公里", "西南180公里"},
		Forecasts: []typhoon.Forecast{
			{
				Tau: 24, At: fixed.Add(24 * time.Hour),
				Longitude: "123.0", Latitude: "23.5",
				MaxWindSpeed: weather.Float(45), MaxGustSpeed: weather.Float(55),
				StormRadius: weather.Float(220), Radius70Percent: weather.Float(90),
			},
		},
	}

	msg := typhoonCard(report)
	require.Equal(t, "颱風 凱米 警報資訊", msg.AltText)
	texts := bubbleTexts(t, msg)
	require.Contains(t, texts, "🌀 颱風 凱米 (GAEMI) 現況")
	require.Contains(t, texts, "北緯 22.1 度，東經 125.3 度")
	require.Contains(t, texts, "43 公尺/秒 (陣風 53 公尺/秒)")
	require.Contains(t, texts, "950 hPa")
	require.Contains(t, texts, "西北，時速 12 公里")
	require.Contains(t, texts, "200 公里")
	require.Contains(t, texts, "　東北250公里")
	require.Contains(t, texts, "24 小時後 (07/24 14:00)")
	require.Contains(t, texts, "　最大風速：預估 45 公尺/秒 (陣風 55 公尺/秒)")
	require.Contains(t, texts, "　七級風暴風半徑：220 公里，70% 機率半徑：90 公里")
	require.Contains(t, texts, "48 小時後 (無資料)")
	require.Contains(t, texts, "72 小時後 (無資料)")
}

func TestFormatHelpers(t *testing.T) {
	require.Equal(t, weather.NoData, formatTemp(nil))
	require.Equal(t, "23.4°C", formatTemp(weather.Float(23.4)))
	require.Equal(t, "與實際溫度相近", formatSensation(weather.Float(30.3), weather.Float(30.0)))
	require.Equal(t, "33.0°C", formatSensation(weather.Float(33.0), weather.Float(30.0)))
	require.Equal(t, "無", formatPrecipitation(weather.Float(0.05)))
	require.Equal(t, "3.5 mm", formatPrecipitation(weather.Float(3.5)))
	require.Equal(t, "2 級 (輕風)", formatWindFromSpeed(weather.Float(2.0)))
	require.Equal(t, weather.NoData, formatUV(nil, ""))
}
