package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	acl "github.com/cloudwego/eino-ext/libs/acl/openai"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/logger"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/model"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/provider"
)

const (
	msgGeneric = "An error occurred with the OpenAI API."
	msgEmpty   = "Received an empty response from OpenAI."
)

// Client 基于 eino ChatModel 的 OpenAI 分析器，只依赖 JSON 模式和提示词约束输出
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient 创建一个新的 OpenAI 分析器
func NewClient(baseURL, model string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		model:      model,
		httpClient: httpClient,
	}
}

// Ensure Client implements provider.Analyzer
var _ provider.Analyzer = (*Client)(nil)

// Analyze implements provider.Analyzer
func (c *Client) Analyze(ctx context.Context, domains, apiKey string) (*model.Report, error) {
	temperature := provider.Temperature
	chatModel, err := einoopenai.NewChatModel(ctx, &einoopenai.ChatModelConfig{
		BaseURL:     c.baseURL,
		APIKey:      apiKey,
		Model:       c.model,
		HTTPClient:  c.httpClient,
		Temperature: &temperature,
		ResponseFormat: &acl.ChatCompletionResponseFormat{
			Type: acl.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, toProviderError(err)
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: provider.SystemPrompt},
		{Role: schema.User, Content: provider.UserPrompt(domains)},
	}

	resp, err := chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, toProviderError(err)
	}

	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		logger.Log.WithField("provider", provider.OpenAI).Error("OpenAI 返回内容为空")
		return nil, model.ErrorMalformed(msgEmpty)
	}

	return provider.DecodeReport(provider.OpenAI, resp.Content)
}

// toProviderError 优先透传服务商返回的 error.message
func toProviderError(err error) error {
	logger.Log.WithField("provider", provider.OpenAI).Errorf("OpenAI API call failed: %v", err)
	return model.ErrorProvider(providerMessage(err)).WithCause(err)
}

// providerMessage 取服务商返回的 error.message；
// 网关返回的非 JSON 错误体等其它情况一律使用通用提示，不把原始响应暴露给用户。
func providerMessage(err error) string {
	var apiErr *einoopenai.APIError
	if errors.As(err, &apiErr) {
		if msg := strings.TrimSpace(apiErr.Message); msg != "" {
			return msg
		}
	}
	return msgGeneric
}
