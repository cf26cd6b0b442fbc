//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yijuchen/cwabot/internal/bootstrap"
	"github.com/yijuchen/cwabot/internal/domain/user"
	"github.com/yijuchen/cwabot/internal/domain/weather"
	"github.com/yijuchen/cwabot/internal/infra/config"
	"github.com/yijuchen/cwabot/internal/infra/cwa"
	httpiface "github.com/yijuchen/cwabot/internal/interface/http"
	lineiface "github.com/yijuchen/cwabot/internal/interface/line"
	"github.com/yijuchen/cwabot/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideCWAConfig,
		provideWeatherStore,
		cwa.NewClient,
		provideUserRepository,
		provideMessenger,
		provideBot,
		provideWebhookHandler,
		provideScheduler,
		weather.NewService,
		user.NewService,
		wire.Bind(new(weather.Source), new(*cwa.Client)),
		wire.Bind(new(lineiface.TyphoonSource), new(*cwa.Client)),
		wire.Bind(new(httpiface.WebhookHandler), new(*lineiface.Handler)),
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
