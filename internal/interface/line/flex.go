package line

import (
	"fmt"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/yijuchen/cwabot/internal/domain/outfit"
	"github.com/yijuchen/cwabot/internal/domain/typhoon"
	"github.com/yijuchen/cwabot/internal/domain/weather"
)

const (
	labelColor = "#8C8C8C"
	noteColor  = "#AAAAAA"
)

// kvRow renders one "label: value" card row.
func kvRow(label, value string) messaging_api.FlexComponentInterface {
	return &messaging_api.FlexBox{
		Layout: messaging_api.FlexBoxLAYOUT_HORIZONTAL,
		Contents: []messaging_api.FlexComponentInterface{
			&messaging_api.FlexText{Text: label, Size: "sm", Color: labelColor, Flex: 4},
			&messaging_api.FlexText{Text: value, Size: "sm", Flex: 6, Wrap: true},
		},
	}
}

func headerBox(title, subtitle string) *messaging_api.FlexBox {
	contents := []messaging_api.FlexComponentInterface{
		&messaging_api.FlexText{Text: title, Weight: "bold", Size: "lg", Wrap: true},
	}
	if subtitle != "" {
		contents = append(contents,
			&messaging_api.FlexText{Text: subtitle, Size: "sm", Color: labelColor, Wrap: true})
	}
	return &messaging_api.FlexBox{
		Layout:   messaging_api.FlexBoxLAYOUT_VERTICAL,
		Contents: contents,
	}
}

func footerNote(text string) messaging_api.FlexComponentInterface {
	return &messaging_api.FlexText{Text: text, Size: "xs", Color: noteColor, Wrap: true, Margin: "md"}
}

func bodyBox(rows []messaging_api.FlexComponentInterface) *messaging_api.FlexBox {
	return &messaging_api.FlexBox{
		Layout:   messaging_api.FlexBoxLAYOUT_VERTICAL,
		Spacing:  "sm",
		Contents: rows,
	}
}

// currentWeatherCard renders the observation card for one city.
func currentWeatherCard(city string, obs weather.Observation) *messaging_api.FlexMessage {
	rows := []messaging_api.FlexComponentInterface{
		kvRow("🌈 天氣狀況：", textOrNoData(obs.Weather)),
		kvRow("🌡️ 溫度：", formatTemp(obs.Temperature)),
		kvRow("🧥 體感溫度：", formatSensation(obs.ApparentTemp, obs.Temperature)),
		kvRow("💧 濕度：", formatPercentFloat(obs.Humidity)),
		kvRow("🌧️ 降雨量：", formatPrecipitation(obs.Precipitation)),
		kvRow("🌬️ 風速：", formatWindFromSpeed(obs.WindSpeed)),
		kvRow("🧭 風向：", weather.CompassLabel(obs.WindDegrees)),
		kvRow("🗜️ 氣壓：", formatPressure(obs.Pressure)),
		footerNote("--- 資訊僅供參考，請以中央氣象署最新發布為準 ---"),
	}
	bubble := messaging_api.FlexBubble{
		Header: headerBox(fmt.Sprintf("📍 %s 即時天氣", city), formatObservedAt(obs.ObservedAt)),
		Body:   bodyBox(rows),
	}
	return &messaging_api.FlexMessage{
		AltText:  fmt.Sprintf("%s 即時天氣", city),
		Contents: &bubble,
	}
}

// todayCard renders the composed today summary.
func todayCard(summary weather.TodaySummary) *messaging_api.FlexMessage {
	wind := formatWindFromScale(summary.WindScale)
	if summary.WindDirection != "" && summary.WindDirection != weather.NoData {
		wind += fmt.Sprintf("，%s", summary.WindDirection)
	}
	rows := []messaging_api.FlexComponentInterface{
		kvRow("🌈 天氣狀況：", textOrNoData(summary.Weather)),
		kvRow("🧥 體感溫度：", formatTemp(summary.ApparentTemp)),
		kvRow("🌡️ 溫度：", formatTempRange(summary.MinTemp, summary.MaxTemp)),
		kvRow("💧 濕度：", formatPercentFloat(summary.Humidity)),
		kvRow("🌧️ 降雨機率：", formatPercentInt(summary.PoP)),
		kvRow("🌬️ 風速：", wind),
		kvRow("☀️ 紫外線：", formatUV(summary.UVIndex, summary.UVLabel)),
		kvRow("😌 舒適度：", textOrNoData(summary.Comfort)),
		footerNote("想查詢其他縣市的今日天氣嗎？可以直接輸入縣市名稱哦！"),
	}
	bubble := messaging_api.FlexBubble{
		Header: headerBox(fmt.Sprintf("📍 %s 今日天氣", summary.Location), summary.DateDisplay),
		Body:   bodyBox(rows),
	}
	return &messaging_api.FlexMessage{
		AltText:  fmt.Sprintf("%s 今日天氣預報", summary.Location),
		Contents: &bubble,
	}
}

// dailyBubble renders one aggregated forecast day.
func dailyBubble(city string, day weather.Daily, now time.Time) messaging_api.FlexBubble {
	title := fmt.Sprintf("%s %s", datePrefix(day.Date, now), city)
	rows := []messaging_api.FlexComponentInterface{
		kvRow("🌈 天氣狀況：", textOrNoData(day.Weather)),
		kvRow("🌡️ 溫度：", formatTempRange(day.MinTemp, day.MaxTemp)),
		kvRow("🧥 體感溫度：", formatTempRange(day.MinApparent, day.MaxApparent)),
		kvRow("💧 濕度：", formatPercentInt(day.Humidity)),
		kvRow("🌧️ 降雨機率：", formatPercentInt(day.PoP)),
		kvRow("🌬️ 風速：", formatWindFromScale(day.WindScale)),
		kvRow("☀️ 紫外線：", formatUV(day.UVIndex, day.UVLabel)),
		kvRow("😌 舒適度：", textOrNoData(day.ComfortMax)),
	}
	return messaging_api.FlexBubble{
		Header: headerBox(title, day.DateDisplay),
		Body:   bodyBox(rows),
	}
}

// forecastCarousel renders up to ten daily bubbles (the carousel limit).
func forecastCarousel(city, altText string, days []weather.Daily, now time.Time) *messaging_api.FlexMessage {
	if len(days) > 10 {
		days = days[:10]
	}
	bubbles := make([]messaging_api.FlexBubble, 0, len(days))
	for _, day := range days {
		bubbles = append(bubbles, dailyBubble(city, day, now))
	}
	return &messaging_api.FlexMessage{
		AltText:  altText,
		Contents: &messaging_api.FlexCarousel{Contents: bubbles},
	}
}

// outfitImages maps each advice image to its file name under the image base
// URL.
var outfitImages = map[outfit.Image]string{
	outfit.ImageDefault:     "default.png",
	outfit.ImageHot:         "hot.png",
	outfit.ImageWarm:        "warm.png",
	outfit.ImageCool:        "cool.png",
	outfit.ImageChilly:      "chilly.png",
	outfit.ImageCold:        "cold.png",
	outfit.ImageFreezing:    "freezing.png",
	outfit.ImageHeavyRain:   "heavy_rain.png",
	outfit.ImageRainy:       "rainy.png",
	outfit.ImageLightRain:   "light_rain.png",
	outfit.ImageWindy:       "windy.png",
	outfit.ImageHighUVI:     "high_uvi.png",
	outfit.ImageComfortable: "comfortable.png",
}

// outfitBubble renders clothing advice with its illustrative hero image.
func outfitBubble(title string, advice outfit.Advice, imageBaseURL string) messaging_api.FlexBubble {
	rows := make([]messaging_api.FlexComponentInterface, 0, len(advice.Lines))
	for _, line := range advice.Lines {
		rows = append(rows, &messaging_api.FlexText{Text: "．" + line, Size: "sm", Wrap: true})
	}
	bubble := messaging_api.FlexBubble{
		Header: headerBox(title, ""),
		Body:   bodyBox(rows),
	}
	if imageBaseURL != "" {
		if file, ok := outfitImages[advice.Image]; ok {
			bubble.Hero = &messaging_api.FlexImage{
				Url:         imageBaseURL + "/" + file,
				Size:        "full",
				AspectRatio: "20:13",
				AspectMode:  "cover",
			}
		}
	}
	return bubble
}

func outfitCard(title string, advice outfit.Advice, imageBaseURL string) *messaging_api.FlexMessage {
	bubble := outfitBubble(title, advice, imageBaseURL)
	return &messaging_api.FlexMessage{
		AltText:  title,
		Contents: &bubble,
	}
}

// outfitCarousel renders one advice bubble per forecast day.
func outfitCarousel(city, altText string, days []weather.Daily, now time.Time, imageBaseURL string) *messaging_api.FlexMessage {
	if len(days) > 10 {
		days = days[:10]
	}
	bubbles := make([]messaging_api.FlexBubble, 0, len(days))
	for _, day := range days {
		title := fmt.Sprintf("👕 %s %s 穿搭建議", datePrefix(day.Date, now), city)
		bubbles = append(bubbles, outfitBubble(title, outfit.ForDaily(day), imageBaseURL))
	}
	return &messaging_api.FlexMessage{
		AltText:  altText,
		Contents: &messaging_api.FlexCarousel{Contents: bubbles},
	}
}

// typhoonCard renders the cyclone advisory with the 1-3 day track forecast.
func typhoonCard(report *typhoon.Report) *messaging_api.FlexMessage {
	rows := []messaging_api.FlexComponentInterface{
		&messaging_api.FlexText{Text: "即時現況", Weight: "bold", Size: "md"},
		kvRow("．中心位置：", fmt.Sprintf("北緯 %s 度，東經 %s 度", textOrNoData(report.Latitude), textOrNoData(report.Longitude))),
		kvRow("．最大風速：", typhoonWind(report.MaxWindSpeed, report.MaxGustSpeed)),
		kvRow("．中心氣壓：", typhoonValue(report.Pressure, "hPa")),
		kvRow("．移動：", typhoonMovement(report)),
		kvRow("．七級風暴風半徑：", typhoonValue(report.StormRadius, "公里")),
	}
	for _, quadrant := range report.StormQuadrants {
		rows = append(rows, &messaging_api.FlexText{Text: "　" + quadrant, Size: "sm", Wrap: true})
	}
	rows = append(rows,
		&messaging_api.FlexSeparator{Margin: "md"},
		&messaging_api.FlexText{Text: "未來趨勢預報", Weight: "bold", Size: "md", Margin: "md"},
	)
	for _, tau := range []int{24, 48, 72} {
		rows = append(rows, forecastSection(report, tau)...)
	}

	title := fmt.Sprintf("🌀 颱風 %s (%s) 現況", textOrNoData(report.Name), textOrNoData(report.EngName))
	bubble := messaging_api.FlexBubble{
		Header: headerBox(title, "觀測時間："+formatObservedAt(report.FixedAt)),
		Body:   bodyBox(rows),
	}
	return &messaging_api.FlexMessage{
		AltText:  fmt.Sprintf("颱風 %s 警報資訊", textOrNoData(report.Name)),
		Contents: &bubble,
	}
}

func forecastSection(report *typhoon.Report, tau int) []messaging_api.FlexComponentInterface {
	label := fmt.Sprintf("%d 小時後", tau)
	point := report.ForecastAt(tau)
	if point == nil {
		return []messaging_api.FlexComponentInterface{
			&messaging_api.FlexText{Text: fmt.Sprintf("%s (無資料)", label), Size: "sm", Color: labelColor, Margin: "sm"},
		}
	}
	at := point.At.In(weather.Taipei)
	return []messaging_api.FlexComponentInterface{
		&messaging_api.FlexText{
			Text:   fmt.Sprintf("%s (%02d/%02d %02d:%02d)", label, int(at.Month()), at.Day(), at.Hour(), at.Minute()),
			Size:   "sm",
			Weight: "bold",
			Margin: "sm",
		},
		&messaging_api.FlexText{
			Text: fmt.Sprintf("　位置：北緯 %s 度，東經 %s 度", textOrNoData(point.Latitude), textOrNoData(point.Longitude)),
			Size: "sm", Wrap: true,
		},
		&messaging_api.FlexText{
			Text: "　最大風速：預估 " + typhoonWind(point.MaxWindSpeed, point.MaxGustSpeed),
			Size: "sm", Wrap: true,
		},
		&messaging_api.FlexText{
			Text: "　七級風暴風半徑：" + typhoonValue(point.StormRadius, "公里") +
				"，70% 機率半徑：" + typhoonValue(point.Radius70Percent, "公里"),
			Size: "sm", Wrap: true,
		},
	}
}

func typhoonWind(speed, gust *float64) string {
	if speed == nil {
		return weather.NoData
	}
	out := fmt.Sprintf("%.0f 公尺/秒", *speed)
	if gust != nil {
		out += fmt.Sprintf(" (陣風 %.0f 公尺/秒)", *gust)
	}
	return out
}

func typhoonValue(v *float64, unit string) string {
	if v == nil {
		return weather.NoData
	}
	return fmt.Sprintf("%.0f %s", *v, unit)
}

func typhoonMovement(report *typhoon.Report) string {
	if report.MovingSpeed == nil {
		return textOrNoData(report.MovingDirection)
	}
	return fmt.Sprintf("%s，時速 %.0f 公里", textOrNoData(report.MovingDirection), *report.MovingSpeed)
}

func textOrNoData(v string) string {
	if v == "" {
		return weather.NoData
	}
	return v
}
