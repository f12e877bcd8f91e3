package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// 默认模型与接口地址
const (
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultOpenAIModel   = "gpt-4o"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
)

// Config 项目配置结构体
type Config struct {
	Provider string    `yaml:"provider"` // gemini 或 openai
	APIKey   string    `yaml:"api_key"`
	Gemini   LLMConfig `yaml:"gemini"`
	OpenAI   LLMConfig `yaml:"openai"`
	Log      LogConfig `yaml:"log"`
}

// LLMConfig 单个服务商的配置
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default 返回填充了默认值的配置
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults 为空字段填充默认值
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = "gemini"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = DefaultGeminiModel
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = DefaultOpenAIModel
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = DefaultOpenAIBaseURL
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}
