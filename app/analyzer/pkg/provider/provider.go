package provider

import (
	"context"
	"fmt"

	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/logger"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/model"
)

// Name AI 服务商标识
type Name string

const (
	Gemini Name = "gemini"
	OpenAI Name = "openai"
)

// Temperature 固定的采样温度
const Temperature float32 = 0.3

// Names 按界面展示顺序列出所有服务商
var Names = []Name{Gemini, OpenAI}

// ParseName 解析服务商标识
func ParseName(s string) (Name, error) {
	switch Name(s) {
	case Gemini, OpenAI:
		return Name(s), nil
	default:
		return "", fmt.Errorf("unknown provider: %q", s)
	}
}

// DisplayName 用于提示信息的名称
func (n Name) DisplayName() string {
	switch n {
	case Gemini:
		return "Gemini"
	case OpenAI:
		return "OpenAI"
	default:
		return string(n)
	}
}

// Title 用于服务商选择控件的名称
func (n Name) Title() string {
	if n == Gemini {
		return "Google Gemini"
	}
	return n.DisplayName()
}

// Analyzer 将一组域名交给 AI 服务商分析
type Analyzer interface {
	Analyze(ctx context.Context, domains, apiKey string) (*model.Report, error)
}

// Dispatcher 按服务商标识把请求分派给唯一的 Analyzer
type Dispatcher struct {
	analyzers map[Name]Analyzer
}

// NewDispatcher 创建分派器
func NewDispatcher(analyzers map[Name]Analyzer) *Dispatcher {
	return &Dispatcher{analyzers: analyzers}
}

// Analyze 调用指定服务商，单次尝试，不重试
func (d *Dispatcher) Analyze(ctx context.Context, name Name, domains, apiKey string) (*model.Report, error) {
	a, ok := d.analyzers[name]
	if !ok {
		return nil, model.ErrorValidation("Unsupported AI provider: %s.", name)
	}

	logger.Log.WithField("provider", name).Infof("开始分析 %d 字节的域名列表", len(domains))
	report, err := a.Analyze(ctx, domains, apiKey)
	if err != nil {
		logger.Log.WithField("provider", name).Errorf("分析失败: %v", err)
		return nil, err
	}

	for _, issue := range report.Validate() {
		logger.Log.WithField("provider", name).Warnf("报告不变量不满足: %s", issue)
	}
	logger.Log.WithField("provider", name).Infof("分析完成: %d 行, %d 个推荐",
		len(report.AnalysisTable), len(report.ExecutiveBriefing))
	return report, nil
}
