//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/campus-faqbot/internal/bootstrap"
	"github.com/yanqian/campus-faqbot/internal/domain/faq"
	"github.com/yanqian/campus-faqbot/internal/infra/config"
	httpiface "github.com/yanqian/campus-faqbot/internal/interface/http"
	"github.com/yanqian/campus-faqbot/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		bootstrap.ProvideFAQConfig,
		bootstrap.ProvideKnowledgeBase,
		bootstrap.ProvideFAQStore,
		bootstrap.ProvideGenerator,
		faq.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
