//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/Ahsan786123/solar-time-app/internal/bootstrap"
	"github.com/Ahsan786123/solar-time-app/internal/domain/location"
	"github.com/Ahsan786123/solar-time-app/internal/infra/config"
	httpiface "github.com/Ahsan786123/solar-time-app/internal/interface/http"
	"github.com/Ahsan786123/solar-time-app/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideLocationConfig,
		provideLocationStore,
		provideLocator,
		provideReferenceClock,
		provideCalculator,
		location.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
