package server

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/config"
	anLogger "github.com/iWorld-y/brand_spark/app/analyzer/pkg/logger"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/provider/factory"
	"github.com/iWorld-y/brand_spark/app/display/internal/conf"
	"github.com/iWorld-y/brand_spark/app/display/internal/usecase"
)

// NewDispatcher 初始化 Gemini / OpenAI 分派器
func NewDispatcher(c *conf.Analyzer, logger log.Logger) (usecase.Dispatcher, error) {
	// 将 internal/conf.Analyzer 转换为 pkg/config.Config，API Key 由用户在页面上提供
	cfg := &config.Config{}
	if c != nil {
		if c.Gemini != nil {
			cfg.Gemini = config.LLMConfig{BaseURL: c.Gemini.BaseUrl, Model: c.Gemini.Model}
		}
		if c.Openai != nil {
			cfg.OpenAI = config.LLMConfig{BaseURL: c.Openai.BaseUrl, Model: c.Openai.Model}
		}
		if c.Log != nil {
			cfg.Log = config.LogConfig{Level: c.Log.Level, File: c.Log.File}
		}
	}
	cfg.ApplyDefaults()

	// 初始化日志
	if err := anLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.NewHelper(logger).Errorf("Failed to init analyzer logger: %v", err)
		_ = anLogger.InitLogger("info", "") // 降级处理
	}

	log.NewHelper(logger).Infof("analyzer ready: gemini=%s openai=%s (%s)",
		cfg.Gemini.Model, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
	return factory.NewDispatcher(cfg), nil
}
