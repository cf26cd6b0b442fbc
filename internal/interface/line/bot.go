package line

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	apperrors "github.com/yijuchen/cwabot/pkg/errors"

	"github.com/yijuchen/cwabot/internal/domain/outfit"
	"github.com/yijuchen/cwabot/internal/domain/place"
	"github.com/yijuchen/cwabot/internal/domain/typhoon"
	"github.com/yijuchen/cwabot/internal/domain/user"
	"github.com/yijuchen/cwabot/internal/domain/weather"
)

const fallbackCity = "臺北市"

const (
	textWelcome = "歡迎使用天氣小幫手！\n" +
		"輸入「今日天氣」「一週天氣」「颱風動態」等關鍵字查詢，" +
		"或直接輸入縣市名稱查今日天氣。\n輸入「設定城市」可以更改預設縣市。"
	textHelp = "可以試試這些指令：\n" +
		"．目前天氣 / 今日天氣 / 一週天氣 / 週末天氣\n" +
		"．目前穿搭 / 今日穿搭 / 一週穿搭\n" +
		"．颱風動態\n" +
		"．設定城市 / 推播設定\n" +
		"或直接輸入縣市名稱（例如：臺北市）查今日天氣。"
	textAskCity       = "請輸入想設定的預設縣市名稱（例如：臺北市）。"
	textCityInvalid   = "看不懂這個縣市名稱，請輸入臺灣的縣市全名（例如：臺北市）。"
	textWeatherSorry  = "目前無法取得天氣資訊，請稍候再試。"
	textTyphoonSorry  = "目前無法取得颱風資訊，請稍候再試。"
	textNoTyphoon     = "目前沒有發布中的颱風警報。"
	textWeekendNoData = "本週末的預報資料尚未發布，請晚點再試。"
)

// TyphoonSource fetches the active cyclone advisory, nil when none is active.
type TyphoonSource interface {
	ActiveTyphoon(ctx context.Context) (*typhoon.Report, error)
}

// Bot answers chat events. It owns no transport: the webhook handler feeds it
// events and it returns the messages to send back.
type Bot struct {
	weather      weather.Service
	users        user.Service
	typhoons     TyphoonSource
	imageBaseURL string
	logger       *slog.Logger
	now          func() time.Time
}

// NewBot builds the conversation logic.
func NewBot(weatherSvc weather.Service, users user.Service, typhoons TyphoonSource, imageBaseURL string, logger *slog.Logger) *Bot {
	return &Bot{
		weather:      weatherSvc,
		users:        users,
		typhoons:     typhoons,
		imageBaseURL: imageBaseURL,
		logger:       logger.With("component", "line_bot"),
		now:          time.Now,
	}
}

// HandleFollow greets a user who just added the bot.
func (b *Bot) HandleFollow(ctx context.Context, userID string) []messaging_api.MessageInterface {
	if _, err := b.users.Profile(ctx, userID); err != nil {
		b.logger.Warn("load profile on follow", "user", userID, "error", err)
	}
	return textMessages(textWelcome)
}

// HandleText answers one text message and returns the reply messages.
func (b *Bot) HandleText(ctx context.Context, userID, text string) []messaging_api.MessageInterface {
	profile, err := b.users.Profile(ctx, userID)
	if err != nil {
		b.logger.Error("load profile", "user", userID, "error", err)
		return textMessages(textWeatherSorry)
	}

	if profile.State == user.StateAwaitingCity {
		return b.completeCitySelection(ctx, userID, text)
	}

	action, cityOverride := Dispatch(text)
	city := profile.DefaultCity
	if cityOverride != "" {
		city = cityOverride
	}
	if city == "" {
		city = fallbackCity
	}

	switch action {
	case ActionCurrent:
		return b.currentWeather(ctx, city)
	case ActionToday:
		return b.todayWeather(ctx, city)
	case ActionForecast:
		return b.weekWeather(ctx, city)
	case ActionWeekend:
		return b.weekendWeather(ctx, city)
	case ActionOutfitCurrent:
		return b.currentOutfit(ctx, city)
	case ActionOutfitToday:
		return b.todayOutfit(ctx, city)
	case ActionOutfitForecast:
		return b.weekOutfit(ctx, city)
	case ActionTyphoon:
		return b.typhoonStatus(ctx)
	case ActionSetCity:
		if err := b.users.BeginCitySelection(ctx, userID); err != nil {
			b.logger.Error("begin city selection", "user", userID, "error", err)
			return textMessages(textWeatherSorry)
		}
		return textMessages(textAskCity)
	case ActionPushSettings:
		return textMessages(pushSettingsText(profile))
	case ActionEnableDailyPush:
		return b.togglePush(ctx, userID, user.PushDaily, true)
	case ActionDisableDailyPush:
		return b.togglePush(ctx, userID, user.PushDaily, false)
	case ActionEnableWeekendPush:
		return b.togglePush(ctx, userID, user.PushWeekend, true)
	case ActionDisableWeekendPush:
		return b.togglePush(ctx, userID, user.PushWeekend, false)
	case ActionEnableTyphoonPush:
		return b.togglePush(ctx, userID, user.PushTyphoon, true)
	case ActionDisableTyphoonPush:
		return b.togglePush(ctx, userID, user.PushTyphoon, false)
	default:
		return textMessages(textHelp)
	}
}

func (b *Bot) completeCitySelection(ctx context.Context, userID, text string) []messaging_api.MessageInterface {
	profile, err := b.users.SetDefaultCity(ctx, userID, text)
	if err != nil {
		if apperrors.IsCode(err, "place_invalid") {
			// State stays awaiting so the user can retry in place.
			return textMessages(textCityInvalid)
		}
		b.logger.Error("set default city", "user", userID, "error", err)
		return textMessages(textWeatherSorry)
	}
	return textMessages(fmt.Sprintf("已將預設城市設定為 %s！直接輸入關鍵字就會查詢這裡的天氣。", profile.DefaultCity))
}

func (b *Bot) currentWeather(ctx context.Context, city string) []messaging_api.MessageInterface {
	obs, err := b.weather.Current(ctx, city)
	if err != nil {
		return b.weatherFailure("current weather", city, err)
	}
	return []messaging_api.MessageInterface{currentWeatherCard(place.Normalize(city), obs)}
}

func (b *Bot) todayWeather(ctx context.Context, city string) []messaging_api.MessageInterface {
	summary, err := b.weather.Today(ctx, city)
	if err != nil {
		return b.weatherFailure("today weather", city, err)
	}
	return []messaging_api.MessageInterface{todayCard(summary)}
}

func (b *Bot) weekWeather(ctx context.Context, city string) []messaging_api.MessageInterface {
	days, err := b.weather.Week(ctx, city)
	if err != nil || len(days) == 0 {
		return b.weatherFailure("week weather", city, err)
	}
	normalized := place.Normalize(city)
	alt := fmt.Sprintf("%s 一週天氣預報", normalized)
	return []messaging_api.MessageInterface{forecastCarousel(normalized, alt, days, b.now())}
}

func (b *Bot) weekendWeather(ctx context.Context, city string) []messaging_api.MessageInterface {
	days, err := b.weather.Weekend(ctx, city)
	if err != nil {
		return b.weatherFailure("weekend weather", city, err)
	}
	if len(days) == 0 {
		return textMessages(textWeekendNoData)
	}
	normalized := place.Normalize(city)
	alt := fmt.Sprintf("%s 週末天氣預報", normalized)
	return []messaging_api.MessageInterface{forecastCarousel(normalized, alt, days, b.now())}
}

func (b *Bot) currentOutfit(ctx context.Context, city string) []messaging_api.MessageInterface {
	obs, err := b.weather.Current(ctx, city)
	if err != nil {
		return b.weatherFailure("current outfit", city, err)
	}
	title := fmt.Sprintf("👕 %s 現在的穿搭建議", place.Normalize(city))
	return []messaging_api.MessageInterface{outfitCard(title, outfit.ForObservation(obs), b.imageBaseURL)}
}

func (b *Bot) todayOutfit(ctx context.Context, city string) []messaging_api.MessageInterface {
	summary, err := b.weather.Today(ctx, city)
	if err != nil {
		return b.weatherFailure("today outfit", city, err)
	}
	title := fmt.Sprintf("👕 %s 今日穿搭建議", summary.Location)
	return []messaging_api.MessageInterface{outfitCard(title, outfit.ForToday(summary), b.imageBaseURL)}
}

func (b *Bot) weekOutfit(ctx context.Context, city string) []messaging_api.MessageInterface {
	days, err := b.weather.Week(ctx, city)
	if err != nil || len(days) == 0 {
		return b.weatherFailure("week outfit", city, err)
	}
	normalized := place.Normalize(city)
	alt := fmt.Sprintf("%s 一週穿搭建議", normalized)
	return []messaging_api.MessageInterface{outfitCarousel(normalized, alt, days, b.now(), b.imageBaseURL)}
}

func (b *Bot) typhoonStatus(ctx context.Context) []messaging_api.MessageInterface {
	report, err := b.typhoons.ActiveTyphoon(ctx)
	if err != nil {
		b.logger.Error("typhoon status", "error", err)
		return textMessages(textTyphoonSorry)
	}
	if report == nil {
		return textMessages(textNoTyphoon)
	}
	return []messaging_api.MessageInterface{typhoonCard(report)}
}

func (b *Bot) togglePush(ctx context.Context, userID string, kind user.PushKind, enabled bool) []messaging_api.MessageInterface {
	profile, err := b.users.SetPush(ctx, userID, kind, enabled)
	if err != nil {
		b.logger.Error("toggle push", "user", userID, "kind", string(kind), "error", err)
		return textMessages(textWeatherSorry)
	}
	return textMessages(fmt.Sprintf("設定完成！\n%s", pushSettingsText(profile)))
}

func (b *Bot) weatherFailure(op, city string, err error) []messaging_api.MessageInterface {
	if apperrors.IsCode(err, "place_invalid") {
		return textMessages(textCityInvalid)
	}
	b.logger.Error(op, "city", city, "error", err)
	return textMessages(textWeatherSorry)
}

func pushSettingsText(profile user.Profile) string {
	var sb strings.Builder
	sb.WriteString("目前的推播設定：\n")
	sb.WriteString(fmt.Sprintf("．每日天氣（每天 08:00）：%s\n", onOff(profile.DailyPush)))
	sb.WriteString(fmt.Sprintf("．週末天氣（週五 19:00）：%s\n", onOff(profile.WeekendPush)))
	sb.WriteString(fmt.Sprintf("．颱風警報：%s\n", onOff(profile.TyphoonPush)))
	sb.WriteString("輸入「開啟每日推播」「關閉颱風推播」等指令即可切換。")
	return sb.String()
}

func onOff(enabled bool) string {
	if enabled {
		return "開啟"
	}
	return "關閉"
}

func textMessages(text string) []messaging_api.MessageInterface {
	return []messaging_api.MessageInterface{&messaging_api.TextMessage{Text: text}}
}

// Push card builders reused by the scheduler.

// TodayPushMessages renders the morning push: the today card plus its outfit
// advice.
func TodayPushMessages(summary weather.TodaySummary, imageBaseURL string) []messaging_api.MessageInterface {
	title := fmt.Sprintf("👕 %s 今日穿搭建議", summary.Location)
	return []messaging_api.MessageInterface{
		todayCard(summary),
		outfitCard(title, outfit.ForToday(summary), imageBaseURL),
	}
}

// WeekendPushMessages renders the Friday-evening weekend forecast push.
func WeekendPushMessages(city string, days []weather.Daily, now time.Time) []messaging_api.MessageInterface {
	alt := fmt.Sprintf("%s 週末天氣預報", city)
	return []messaging_api.MessageInterface{forecastCarousel(city, alt, days, now)}
}

// TyphoonPushMessages renders the typhoon alert push.
func TyphoonPushMessages(report *typhoon.Report) []messaging_api.MessageInterface {
	return []messaging_api.MessageInterface{typhoonCard(report)}
}
