// Package scheduler drives the proactive pushes: the morning weather digest,
// the Friday-evening weekend forecast and typhoon alerts.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/yijuchen/cwabot/internal/domain/user"
	"github.com/yijuchen/cwabot/internal/domain/weather"
	linemsg "github.com/yijuchen/cwabot/internal/infra/line"
	botline "github.com/yijuchen/cwabot/internal/interface/line"
)

const defaultCity = "臺北市"

// Config tunes the schedule. Zero values fall back to the documented times.
type Config struct {
	// Tick is the wakeup interval; pushes dedupe per calendar slot so a finer
	// tick never double-sends.
	Tick time.Duration
	// DailyHour is the local hour of the morning digest.
	DailyHour int
	// WeekendHour is the local hour of the Friday weekend push.
	WeekendHour int
	// ImageBaseURL serves the outfit card images.
	ImageBaseURL string
}

func (c *Config) applyDefaults() {
	if c.Tick <= 0 {
		c.Tick = time.Minute
	}
	if c.DailyHour == 0 {
		c.DailyHour = 8
	}
	if c.WeekendHour == 0 {
		c.WeekendHour = 19
	}
}

// Scheduler owns the push loop.
type Scheduler struct {
	cfg       Config
	weather   weather.Service
	users     user.Service
	typhoons  botline.TyphoonSource
	messenger linemsg.Messenger
	logger    *slog.Logger
	now       func() time.Time

	lastDailyDate   string
	lastWeekendDate string
	lastTyphoonHour string
}

// New builds the scheduler.
func New(cfg Config, weatherSvc weather.Service, users user.Service, typhoons botline.TyphoonSource, messenger linemsg.Messenger, logger *slog.Logger) *Scheduler {
	cfg.applyDefaults()
	return &Scheduler{
		cfg:       cfg,
		weather:   weatherSvc,
		users:     users,
		typhoons:  typhoons,
		messenger: messenger,
		logger:    logger.With("component", "scheduler"),
		now:       time.Now,
	}
}

// Run blocks until ctx is cancelled, waking every tick to fire due pushes.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()
	s.logger.Info("scheduler started",
		"tick", s.cfg.Tick.String(), "daily_hour", s.cfg.DailyHour, "weekend_hour", s.cfg.WeekendHour)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runDue(ctx)
		}
	}
}

// runDue fires every push whose slot has arrived and was not yet served.
func (s *Scheduler) runDue(ctx context.Context) {
	now := s.now().In(weather.Taipei)
	date := now.Format("2006-01-02")

	if now.Hour() == s.cfg.DailyHour && s.lastDailyDate != date {
		s.lastDailyDate = date
		s.pushDaily(ctx)
	}
	if now.Weekday() == time.Friday && now.Hour() == s.cfg.WeekendHour && s.lastWeekendDate != date {
		s.lastWeekendDate = date
		s.pushWeekend(ctx)
	}
	if hour := now.Format("2006-01-02T15"); s.lastTyphoonHour != hour {
		s.lastTyphoonHour = hour
		s.pushTyphoon(ctx)
	}
}

func (s *Scheduler) pushDaily(ctx context.Context) {
	targets, err := s.users.PushTargets(ctx, user.PushDaily)
	if err != nil {
		s.logger.Error("list daily push targets", "error", err)
		return
	}
	summaries := make(map[string][]messaging_api.MessageInterface)
	sent := 0
	for _, target := range targets {
		city := targetCity(target)
		messages, ok := summaries[city]
		if !ok {
			summary, err := s.weather.Today(ctx, city)
			if err != nil {
				s.logger.Error("daily push weather", "city", city, "error", err)
				summaries[city] = nil
				continue
			}
			messages = botline.TodayPushMessages(summary, s.cfg.ImageBaseURL)
			summaries[city] = messages
		}
		if messages == nil {
			continue
		}
		if err := s.messenger.Push(target.ID, messages); err != nil {
			s.logger.Error("daily push send", "user", target.ID, "error", err)
			continue
		}
		sent++
	}
	s.logger.Info("daily push done", "targets", len(targets), "sent", sent)
}

func (s *Scheduler) pushWeekend(ctx context.Context) {
	targets, err := s.users.PushTargets(ctx, user.PushWeekend)
	if err != nil {
		s.logger.Error("list weekend push targets", "error", err)
		return
	}
	now := s.now().In(weather.Taipei)
	forecasts := make(map[string][]messaging_api.MessageInterface)
	sent := 0
	for _, target := range targets {
		city := targetCity(target)
		messages, ok := forecasts[city]
		if !ok {
			days, err := s.weather.Weekend(ctx, city)
			if err != nil || len(days) == 0 {
				if err != nil {
					s.logger.Error("weekend push weather", "city", city, "error", err)
				}
				forecasts[city] = nil
				continue
			}
			messages = botline.WeekendPushMessages(city, days, now)
			forecasts[city] = messages
		}
		if messages == nil {
			continue
		}
		if err := s.messenger.Push(target.ID, messages); err != nil {
			s.logger.Error("weekend push send", "user", target.ID, "error", err)
			continue
		}
		sent++
	}
	s.logger.Info("weekend push done", "targets", len(targets), "sent", sent)
}

// pushTyphoon alerts subscribers about a newly active cyclone. Each profile
// remembers the last advisory it saw, so an ongoing typhoon alerts once.
func (s *Scheduler) pushTyphoon(ctx context.Context) {
	report, err := s.typhoons.ActiveTyphoon(ctx)
	if err != nil {
		s.logger.Error("typhoon check", "error", err)
		return
	}
	if report == nil {
		return
	}
	targets, err := s.users.PushTargets(ctx, user.PushTyphoon)
	if err != nil {
		s.logger.Error("list typhoon push targets", "error", err)
		return
	}
	messages := botline.TyphoonPushMessages(report)
	sent := 0
	for _, target := range targets {
		if target.LastTyphoonID == report.ID {
			continue
		}
		if err := s.messenger.Push(target.ID, messages); err != nil {
			s.logger.Error("typhoon push send", "user", target.ID, "error", err)
			continue
		}
		if err := s.users.MarkTyphoonPushed(ctx, target.ID, report.ID); err != nil {
			s.logger.Error("typhoon push marker", "user", target.ID, "error", err)
		}
		sent++
	}
	if sent > 0 {
		s.logger.Info("typhoon push done", "typhoon", report.ID, "sent", sent)
	}
}

func targetCity(profile user.Profile) string {
	if profile.DefaultCity != "" {
		return profile.DefaultCity
	}
	return defaultCity
}
