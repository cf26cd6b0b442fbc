package line

import (
	"strings"

	"github.com/yijuchen/cwabot/internal/domain/place"
)

// Action is what the user asked the bot to do.
type Action int

const (
	ActionNone Action = iota
	ActionCurrent
	ActionToday
	ActionForecast
	ActionWeekend
	ActionOutfitCurrent
	ActionOutfitToday
	ActionOutfitForecast
	ActionTyphoon
	ActionSetCity
	ActionPushSettings
	ActionEnableDailyPush
	ActionDisableDailyPush
	ActionEnableWeekendPush
	ActionDisableWeekendPush
	ActionEnableTyphoonPush
	ActionDisableTyphoonPush
)

// keywordActions maps exact message text to an action. Matching is
// whole-message after trimming, not substring, so chatter does not trigger
// cards.
var keywordActions = map[string]Action{
	"目前天氣": ActionCurrent,
	"即時天氣": ActionCurrent,
	"今日天氣": ActionToday,
	"一週天氣": ActionForecast,
	"一周天氣": ActionForecast,
	"週末天氣": ActionWeekend,
	"周末天氣": ActionWeekend,
	"目前穿搭": ActionOutfitCurrent,
	"即時穿搭": ActionOutfitCurrent,
	"今日穿搭": ActionOutfitToday,
	"一週穿搭": ActionOutfitForecast,
	"一周穿搭": ActionOutfitForecast,
	"颱風動態": ActionTyphoon,
	"颱風資訊": ActionTyphoon,
	"更改城市": ActionSetCity,
	"設定城市": ActionSetCity,
	"推播設定": ActionPushSettings,

	"開啟每日推播": ActionEnableDailyPush,
	"關閉每日推播": ActionDisableDailyPush,
	"開啟週末推播": ActionEnableWeekendPush,
	"關閉週末推播": ActionDisableWeekendPush,
	"開啟颱風推播": ActionEnableTyphoonPush,
	"關閉颱風推播": ActionDisableTyphoonPush,
}

// Dispatch classifies a text message. A bare city name maps to the today
// card for that city; cityOverride is the normalized name when set.
func Dispatch(text string) (action Action, cityOverride string) {
	trimmed := strings.TrimSpace(text)
	if action, ok := keywordActions[trimmed]; ok {
		return action, ""
	}
	if normalized := place.Normalize(trimmed); place.IsValid(normalized) {
		return ActionToday, normalized
	}
	return ActionNone, ""
}
