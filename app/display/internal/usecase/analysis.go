package usecase

import (
	"context"
	stderrors "errors"
	"io"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/model"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/normalize"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/provider"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/view"
	"github.com/iWorld-y/brand_spark/app/display/internal/domain"
	"github.com/iWorld-y/brand_spark/app/display/internal/metrics"
	"github.com/iWorld-y/brand_spark/app/display/internal/repo"
)

// MessageUnknown 错误没有可展示信息时的兜底提示
const MessageUnknown = "An unknown error occurred. Check the logs for details."

// Dispatcher 按服务商分派分析请求
type Dispatcher interface {
	Analyze(ctx context.Context, name provider.Name, domains, apiKey string) (*model.Report, error)
}

// AnalysisUseCase 分析流程业务逻辑
type AnalysisUseCase struct {
	repo       repo.SessionRepo
	dispatcher Dispatcher
	log        *log.Helper
}

// NewAnalysisUseCase 创建分析业务逻辑实例
func NewAnalysisUseCase(repo repo.SessionRepo, dispatcher Dispatcher, logger log.Logger) *AnalysisUseCase {
	return &AnalysisUseCase{repo: repo, dispatcher: dispatcher, log: log.NewHelper(logger)}
}

// Session 获取会话，不存在或已过期时新建
func (uc *AnalysisUseCase) Session(ctx context.Context, id string) *domain.Session {
	if id != "" {
		if s, ok := uc.repo.Get(ctx, id); ok {
			return s
		}
	}
	return uc.repo.Create(ctx)
}

// Validate 在发起任何网络请求之前校验输入
func Validate(in domain.Input) error {
	if strings.TrimSpace(in.Domains) == "" {
		return model.ErrorValidation("Please enter at least one domain name.")
	}
	if _, err := provider.ParseName(string(in.Provider)); err != nil {
		return model.ErrorValidation("Unsupported AI provider: %s.", in.Provider)
	}
	if in.APIKey == "" {
		return model.ErrorValidation("Please enter an API key for %s.", in.Provider.DisplayName())
	}
	return nil
}

// Analyze 记录输入并开始一次分析。校验失败直接进入 Failed；
// 否则进入 Loading，服务商调用在后台完成。返回的 channel 在结果提交（或被丢弃）后关闭。
func (uc *AnalysisUseCase) Analyze(ctx context.Context, s *domain.Session, in domain.Input) <-chan struct{} {
	done := make(chan struct{})
	s.SetInput(in)
	in = s.Input()

	if err := Validate(in); err != nil {
		uc.log.WithContext(ctx).Warnf("会话 %s 输入校验失败: %v", s.ID, err)
		metrics.AnalysesTotal.WithLabelValues(providerLabel(in.Provider), metrics.OutcomeValidation).Inc()
		s.Reject(Message(err))
		close(done)
		return done
	}

	id := s.Begin()
	uc.log.WithContext(ctx).Infof("会话 %s 开始第 %d 次分析, provider=%s", s.ID, id, in.Provider)

	// 请求结束后页面仍需拿到结果，因此不随 HTTP 请求取消
	bg := context.WithoutCancel(ctx)
	go func() {
		defer close(done)
		report, err := uc.dispatch(bg, in)
		if err != nil {
			if !s.Fail(id, Message(err)) {
				uc.log.WithContext(bg).Infof("会话 %s 第 %d 次分析已过期，丢弃错误结果", s.ID, id)
			}
			return
		}
		if !s.Commit(id, report) {
			uc.log.WithContext(bg).Infof("会话 %s 第 %d 次分析已过期，丢弃报告", s.ID, id)
		}
	}()
	return done
}

// AnalyzeOnce 无状态的同步分析，供 JSON API 使用
func (uc *AnalysisUseCase) AnalyzeOnce(ctx context.Context, in domain.Input) (*model.Report, error) {
	if err := Validate(in); err != nil {
		uc.log.WithContext(ctx).Warnf("输入校验失败: %v", err)
		metrics.AnalysesTotal.WithLabelValues(providerLabel(in.Provider), metrics.OutcomeValidation).Inc()
		return nil, err
	}
	return uc.dispatch(ctx, in)
}

func (uc *AnalysisUseCase) dispatch(ctx context.Context, in domain.Input) (*model.Report, error) {
	metrics.AnalysesActive.Inc()
	defer metrics.AnalysesActive.Dec()

	start := time.Now()
	report, err := uc.dispatcher.Analyze(ctx, in.Provider, in.Domains, in.APIKey)
	metrics.AnalysisDuration.WithLabelValues(providerLabel(in.Provider)).Observe(time.Since(start).Seconds())
	metrics.AnalysesTotal.WithLabelValues(providerLabel(in.Provider), outcome(err)).Inc()

	if err != nil {
		uc.log.WithContext(ctx).Errorf("分析失败, provider=%s: %v", in.Provider, err)
		return nil, err
	}
	return report, nil
}

// Upload 读取上传文件并替换域名输入。失败只记录日志，不修改已有输入和状态。
func (uc *AnalysisUseCase) Upload(ctx context.Context, s *domain.Session, name string, r io.Reader) error {
	text, err := normalize.FromReader(name, r)
	if err != nil {
		uc.log.WithContext(ctx).Warnf("会话 %s 读取文件 %s 失败: %v", s.ID, name, err)
		return err
	}
	s.SetDomains(text)
	return nil
}

// Sort 点击表头
func (uc *AnalysisUseCase) Sort(ctx context.Context, s *domain.Session, key view.SortKey) view.SortConfig {
	return s.RequestSort(key)
}

// Normalize 规整粘贴的文本
func (uc *AnalysisUseCase) Normalize(ctx context.Context, text string) string {
	return normalize.Domains(text)
}

// Message 错误中面向用户的提示信息
func Message(err error) string {
	var ke *errors.Error
	if stderrors.As(err, &ke) {
		if ke.Message != "" {
			return ke.Message
		}
		return MessageUnknown
	}
	if err == nil || err.Error() == "" {
		return MessageUnknown
	}
	return err.Error()
}

// providerLabel 未知服务商统一归为一个标签，避免用户输入产生无限多的时间序列
func providerLabel(n provider.Name) string {
	if _, err := provider.ParseName(string(n)); err != nil {
		return metrics.ProviderUnknown
	}
	return string(n)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case model.IsValidation(err):
		return metrics.OutcomeValidation
	case model.IsProvider(err):
		return metrics.OutcomeProvider
	case model.IsMalformed(err):
		return metrics.OutcomeMalformed
	default:
		return metrics.OutcomeUnknown
	}
}
