//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/text-insights/internal/bootstrap"
	"github.com/yanqian/text-insights/internal/domain/insights"
	"github.com/yanqian/text-insights/internal/infra/config"
	httpiface "github.com/yanqian/text-insights/internal/interface/http"
	"github.com/yanqian/text-insights/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideInsightsConfig,
		provideHuggingFaceClient,
		provideChatGPTClient,
		provideSummaryModels,
		provideKeywordModels,
		provideTokenCounter,
		provideRateLimiter,
		insights.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
