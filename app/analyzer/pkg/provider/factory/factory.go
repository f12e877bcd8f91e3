package factory

import (
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/config"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/gemini"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/openai"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/provider"
)

// NewDispatcher 根据配置创建包含全部服务商的分派器
func NewDispatcher(cfg *config.Config) *provider.Dispatcher {
	cfg.ApplyDefaults()

	var geminiOpts []gemini.Option
	if cfg.Gemini.BaseURL != "" {
		geminiOpts = append(geminiOpts, gemini.WithBaseURL(cfg.Gemini.BaseURL))
	}

	return provider.NewDispatcher(map[provider.Name]provider.Analyzer{
		provider.Gemini: gemini.NewClient(cfg.Gemini.Model, geminiOpts...),
		provider.OpenAI: openai.NewClient(cfg.OpenAI.BaseURL, cfg.OpenAI.Model, nil),
	})
}
