package domain

import (
	"sync"
	"time"

	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/model"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/provider"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/view"
)

// Input 用户在界面上填写的内容
type Input struct {
	Domains  string
	APIKey   string
	Provider provider.Name
}

// Session 一个浏览器会话的界面状态，只保存在内存中
type Session struct {
	ID string

	mu       sync.Mutex
	input    Input
	state    State
	retained *model.Report // 最近一次成功的报告，失败时隐藏但不修改
	seq      uint64        // 单调递增的请求序号，只有最新请求的结果会被提交
	sort     view.SortConfig
	lastSeen time.Time
}

// Snapshot 渲染页面所需的只读副本
type Snapshot struct {
	ID       string
	Input    Input
	State    State
	Sort     view.SortConfig
	Table    []model.DomainAnalysis
	Briefing []model.ExecutivePick
}

// NewSession 创建处于 Idle 状态的会话
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:       id,
		input:    Input{Provider: provider.Gemini},
		state:    Idle(),
		sort:     view.DefaultSort(),
		lastSeen: now,
	}
}

// SetInput 替换全部输入
func (s *Session) SetInput(in Input) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.Provider == "" {
		in.Provider = s.input.Provider
	}
	s.input = in
}

// SetDomains 仅替换域名列表，例如上传文件之后
func (s *Session) SetDomains(domains string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input.Domains = domains
}

// Input 当前输入
func (s *Session) Input() Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// Reject 校验失败，直接进入 Failed，同时作废仍在进行中的请求
func (s *Session) Reject(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.state = Failed(message)
}

// Begin 进入 Loading 并返回本次请求的序号
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.state = Loading()
	return s.seq
}

// Commit 提交成功结果；请求已过期时丢弃并返回 false
func (s *Session) Commit(id uint64, r *model.Report) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.seq {
		return false
	}
	s.state = Succeeded(r)
	s.retained = r
	return true
}

// Fail 提交失败结果；请求已过期时丢弃并返回 false
func (s *Session) Fail(id uint64, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.seq {
		return false
	}
	s.state = Failed(message)
	return true
}

// State 当前状态
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Retained 最近一次成功的报告，不论当前是否展示
func (s *Session) Retained() *model.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.retained
}

// RequestSort 点击表头
func (s *Session) RequestSort(key view.SortKey) view.SortConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = s.sort.RequestSort(key)
	return s.sort
}

// Touch 记录最近访问时间
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

// LastSeen 最近访问时间
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Snapshot 生成用于展示的副本，表格按当前排序状态重新计算
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:    s.ID,
		Input: s.input,
		State: s.state,
		Sort:  s.sort,
	}
	if r, ok := s.state.Report(); ok {
		snap.Table = view.SortTable(r.AnalysisTable, s.sort)
		snap.Briefing = view.Briefing(r.ExecutiveBriefing)
	}
	return snap
}
