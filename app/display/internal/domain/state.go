package domain

import "github.com/iWorld-y/brand_spark/app/analyzer/pkg/model"

// Phase 分析流程所处阶段
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State 显式的状态值：Idle | Loading | Success(Report) | Failed(message)。
// 只能通过下面的构造函数创建，避免出现 "加载中且有错误" 之类的组合。
type State struct {
	phase   Phase
	report  *model.Report
	message string
}

func Idle() State { return State{phase: PhaseIdle} }

func Loading() State { return State{phase: PhaseLoading} }

func Succeeded(r *model.Report) State { return State{phase: PhaseSuccess, report: r} }

func Failed(message string) State { return State{phase: PhaseFailed, message: message} }

// Phase 当前阶段
func (s State) Phase() Phase { return s.phase }

// Report 仅在 Success 阶段返回报告
func (s State) Report() (*model.Report, bool) {
	if s.phase != PhaseSuccess {
		return nil, false
	}
	return s.report, true
}

// Message 仅在 Failed 阶段返回错误信息
func (s State) Message() (string, bool) {
	if s.phase != PhaseFailed {
		return "", false
	}
	return s.message, true
}
