package gemini

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/logger"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/model"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/provider"
)

const (
	msgInvalidKey = "Your Gemini API key is not valid. Please check it and try again."
	msgGeneric    = "Failed to get a valid response from the Gemini API. Please check your API key and try again."
)

// Client 基于 GenAI SDK 的 Gemini 分析器，使用结构化输出 schema
type Client struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option Client 可选项
type Option func(*Client)

// WithBaseURL 覆盖 API 地址
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient 指定底层 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient 创建一个新的 Gemini 分析器
func NewClient(model string, opts ...Option) *Client {
	c := &Client{model: model}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Ensure Client implements provider.Analyzer
var _ provider.Analyzer = (*Client)(nil)

// Analyze implements provider.Analyzer
func (c *Client) Analyze(ctx context.Context, domains, apiKey string) (*model.Report, error) {
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.baseURL != "" {
		cc.HTTPOptions.BaseURL = c.baseURL
	}
	if c.httpClient != nil {
		cc.HTTPClient = c.httpClient
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, toProviderError(err)
	}

	temperature := provider.Temperature
	resp, err := client.Models.GenerateContent(ctx, c.model,
		genai.Text(provider.UserPrompt(domains)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(provider.SystemPrompt, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    reportSchema(),
			Temperature:       &temperature,
		},
	)
	if err != nil {
		return nil, toProviderError(err)
	}

	return provider.DecodeReport(provider.Gemini, resp.Text())
}

// toProviderError 将 SDK 错误转换为 ProviderError，无效密钥单独提示
func toProviderError(err error) error {
	logger.Log.WithField("provider", provider.Gemini).Errorf("Gemini API call failed: %v", err)
	msg := msgGeneric
	if strings.Contains(err.Error(), "API key not valid") {
		msg = msgInvalidKey
	}
	return model.ErrorProvider(msg).WithCause(err)
}
