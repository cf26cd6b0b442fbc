package line

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yijuchen/cwabot/pkg/errors"

	"github.com/yijuchen/cwabot/internal/domain/typhoon"
	"github.com/yijuchen/cwabot/internal/domain/user"
	"github.com/yijuchen/cwabot/internal/domain/weather"
	"github.com/yijuchen/cwabot/internal/infra/userrepo"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubWeather struct {
	currentCity string
	todayCity   string
	weekCity    string
	weekendCity string

	observation weather.Observation
	summary     weather.TodaySummary
	days        []weather.Daily
	err         error
}

func (s *stubWeather) Current(_ context.Context, city string) (weather.Observation, error) {
	s.currentCity = city
	return s.observation, s.err
}

func (s *stubWeather) Today(_ context.Context, city string) (weather.TodaySummary, error) {
	s.todayCity = city
	if s.err != nil {
		return weather.TodaySummary{}, s.err
	}
	summary := s.summary
	summary.Location = city
	return summary, nil
}

func (s *stubWeather) Week(_ context.Context, city string) ([]weather.Daily, error) {
	s.weekCity = city
	return s.days, s.err
}

func (s *stubWeather) Weekend(_ context.Context, city string) ([]weather.Daily, error) {
	s.weekendCity = city
	return s.days, s.err
}

type stubTyphoons struct {
	report *typhoon.Report
	err    error
}

func (s *stubTyphoons) ActiveTyphoon(context.Context) (*typhoon.Report, error) {
	return s.report, s.err
}

func newTestBot(t *testing.T, source *stubWeather, typhoons *stubTyphoons) (*Bot, user.Service) {
	t.Helper()
	users := user.NewService(userrepo.NewMemoryRepository(), testLogger())
	return NewBot(source, users, typhoons, "https://img.example.com/outfit", testLogger()), users
}

func textOf(t *testing.T, messages []messaging_api.MessageInterface) string {
	t.Helper()
	require.Len(t, messages, 1)
	msg, ok := messages[0].(*messaging_api.TextMessage)
	require.True(t, ok, "expected a text message, got %T", messages[0])
	return msg.Text
}

func altOf(t *testing.T, msg messaging_api.MessageInterface) string {
	t.Helper()
	flex, ok := msg.(*messaging_api.FlexMessage)
	require.True(t, ok, "expected a flex message, got %T", msg)
	return flex.AltText
}

func TestHandleTextPlainCityNameYieldsTodayCard(t *testing.T) {
	source := &stubWeather{summary: weather.TodaySummary{Weather: "多雲時晴"}}
	bot, _ := newTestBot(t, source, &stubTyphoons{})

	messages := bot.HandleText(context.Background(), "U1", "台中市")
	require.Equal(t, "臺中市", source.todayCity)
	require.Len(t, messages, 1)
	require.Equal(t, "臺中市 今日天氣預報", altOf(t, messages[0]))
}

func TestHandleTextUsesDefaultCity(t *testing.T) {
	source := &stubWeather{summary: weather.TodaySummary{}}
	bot, users := newTestBot(t, source, &stubTyphoons{})
	_, err := users.SetDefaultCity(context.Background(), "U1", "高雄市")
	require.NoError(t, err)

	bot.HandleText(context.Background(), "U1", "今日天氣")
	require.Equal(t, "高雄市", source.todayCity)
}

func TestHandleTextFallsBackToTaipei(t *testing.T) {
	source := &stubWeather{observation: weather.Observation{StationName: "臺北"}}
	bot, _ := newTestBot(t, source, &stubTyphoons{})

	bot.HandleText(context.Background(), "U-new", "目前天氣")
	require.Equal(t, "臺北市", source.currentCity)
}

func TestHandleTextCitySelectionFlow(t *testing.T) {
	source := &stubWeather{}
	bot, users := newTestBot(t, source, &stubTyphoons{})
	ctx := context.Background()

	reply := textOf(t, bot.HandleText(ctx, "U1", "設定城市"))
	require.Contains(t, reply, "縣市名稱")

	// Garbage keeps the prompt and the awaiting state.
	reply = textOf(t, bot.HandleText(ctx, "U1", "火星"))
	require.Contains(t, reply, "縣市全名")
	profile, err := users.Profile(ctx, "U1")
	require.NoError(t, err)
	require.Equal(t, user.StateAwaitingCity, profile.State)

	reply = textOf(t, bot.HandleText(ctx, "U1", "台南市"))
	require.Contains(t, reply, "臺南市")
	profile, err = users.Profile(ctx, "U1")
	require.NoError(t, err)
	require.Equal(t, "臺南市", profile.DefaultCity)
	require.Empty(t, profile.State)
}

func TestHandleTextUnknownYieldsHelp(t *testing.T) {
	bot, _ := newTestBot(t, &stubWeather{}, &stubTyphoons{})
	reply := textOf(t, bot.HandleText(context.Background(), "U1", "哈囉"))
	require.Contains(t, reply, "今日天氣")
	require.Contains(t, reply, "颱風動態")
}

func TestHandleTextTyphoon(t *testing.T) {
	report := &typhoon.Report{ID: "2025_GAEMI", Name: "凱米", EngName: "GAEMI"}
	bot, _ := newTestBot(t, &stubWeather{}, &stubTyphoons{report: report})

	messages := bot.HandleText(context.Background(), "U1", "颱風動態")
	require.Len(t, messages, 1)
	require.Equal(t, "颱風 凱米 警報資訊", altOf(t, messages[0]))
}

func TestHandleTextTyphoonNoneActive(t *testing.T) {
	bot, _ := newTestBot(t, &stubWeather{}, &stubTyphoons{})
	reply := textOf(t, bot.HandleText(context.Background(), "U1", "颱風動態"))
	require.Equal(t, textNoTyphoon, reply)
}

func TestHandleTextTyphoonSourceError(t *testing.T) {
	bot, _ := newTestBot(t, &stubWeather{}, &stubTyphoons{err: apperrors.Wrap("weather_upstream", "boom", nil)})
	reply := textOf(t, bot.HandleText(context.Background(), "U1", "颱風動態"))
	require.Equal(t, textTyphoonSorry, reply)
}

func TestHandleTextPushToggle(t *testing.T) {
	bot, users := newTestBot(t, &stubWeather{}, &stubTyphoons{})
	ctx := context.Background()

	reply := textOf(t, bot.HandleText(ctx, "U1", "開啟每日推播"))
	require.Contains(t, reply, "設定完成")
	profile, err := users.Profile(ctx, "U1")
	require.NoError(t, err)
	require.True(t, profile.DailyPush)
	require.False(t, profile.TyphoonPush)

	reply = textOf(t, bot.HandleText(ctx, "U1", "關閉每日推播"))
	require.Contains(t, reply, "設定完成")
	profile, err = users.Profile(ctx, "U1")
	require.NoError(t, err)
	require.False(t, profile.DailyPush)
}

func TestHandleTextPushSettingsSummary(t *testing.T) {
	bot, users := newTestBot(t, &stubWeather{}, &stubTyphoons{})
	ctx := context.Background()
	_, err := users.SetPush(ctx, "U1", user.PushTyphoon, true)
	require.NoError(t, err)

	reply := textOf(t, bot.HandleText(ctx, "U1", "推播設定"))
	require.Contains(t, reply, "颱風警報：開啟")
	require.Contains(t, reply, "每日天氣（每天 08:00）：關閉")
}

func TestHandleTextWeatherErrorYieldsApology(t *testing.T) {
	source := &stubWeather{err: apperrors.Wrap("weather_upstream", "boom", nil)}
	bot, _ := newTestBot(t, source, &stubTyphoons{})
	reply := textOf(t, bot.HandleText(context.Background(), "U1", "今日天氣"))
	require.Equal(t, textWeatherSorry, reply)
}

func TestHandleTextWeekendEmptyYieldsNotice(t *testing.T) {
	bot, _ := newTestBot(t, &stubWeather{}, &stubTyphoons{})
	reply := textOf(t, bot.HandleText(context.Background(), "U1", "週末天氣"))
	require.Equal(t, textWeekendNoData, reply)
}

func TestHandleFollowWelcomes(t *testing.T) {
	bot, _ := newTestBot(t, &stubWeather{}, &stubTyphoons{})
	reply := textOf(t, bot.HandleFollow(context.Background(), "U1"))
	require.Contains(t, reply, "歡迎")
}
