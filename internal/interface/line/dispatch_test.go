package line

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatchKeywords(t *testing.T) {
	cases := []struct {
		text string
		want Action
	}{
		{"目前天氣", ActionCurrent},
		{"即時天氣", ActionCurrent},
		{" 今日天氣 ", ActionToday},
		{"一週天氣", ActionForecast},
		{"一周天氣", ActionForecast},
		{"週末天氣", ActionWeekend},
		{"今日穿搭", ActionOutfitToday},
		{"一週穿搭", ActionOutfitForecast},
		{"颱風動態", ActionTyphoon},
		{"設定城市", ActionSetCity},
		{"更改城市", ActionSetCity},
		{"推播設定", ActionPushSettings},
		{"開啟每日推播", ActionEnableDailyPush},
		{"關閉颱風推播", ActionDisableTyphoonPush},
	}
	for _, tc := range cases {
		action, city := Dispatch(tc.text)
		require.Equal(t, tc.want, action, "text %q", tc.text)
		require.Empty(t, city, "text %q", tc.text)
	}
}

func TestDispatchCityName(t *testing.T) {
	action, city := Dispatch("台中市")
	require.Equal(t, ActionToday, action)
	require.Equal(t, "臺中市", city)

	action, city = Dispatch(" 高雄市 ")
	require.Equal(t, ActionToday, action)
	require.Equal(t, "高雄市", city)
}

func TestDispatchChatterIsNone(t *testing.T) {
	for _, text := range []string{"你好", "天氣如何", "今天會下雨嗎", ""} {
		action, city := Dispatch(text)
		require.Equal(t, ActionNone, action, "text %q", text)
		require.Empty(t, city)
	}
}

func TestDispatchNoSubstringMatch(t *testing.T) {
	action, _ := Dispatch("請告訴我今日天氣好嗎")
	require.Equal(t, ActionNone, action)
}
