package domain

import (
	"testing"
	"time"

	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/model"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/provider"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/view"
)

func sampleReport() *model.Report {
	return &model.Report{
		AnalysisTable: []model.DomainAnalysis{
			{DomainName: "low.com", AtomScore: 3},
			{DomainName: "top.com", AtomScore: 9},
		},
		ExecutiveBriefing: []model.ExecutivePick{{Rank: 2, DomainName: "low.com"}, {Rank: 1, DomainName: "top.com"}},
	}
}

func TestState_Variants(t *testing.T) {
	if _, ok := Loading().Report(); ok {
		t.Error("Loading has a report")
	}
	if _, ok := Loading().Message(); ok {
		t.Error("Loading has a message")
	}
	r := sampleReport()
	if got, ok := Succeeded(r).Report(); !ok || got != r {
		t.Error("Success lost its report")
	}
	if msg, ok := Failed("boom").Message(); !ok || msg != "boom" {
		t.Error("Failed lost its message")
	}
	if _, ok := Failed("boom").Report(); ok {
		t.Error("Failed exposes a report")
	}
	if Idle().Phase().String() != "idle" || PhaseFailed.String() != "failed" {
		t.Error("unexpected phase names")
	}
}

func TestSession_Lifecycle(t *testing.T) {
	s := NewSession("s1", time.Now())
	if s.State().Phase() != PhaseIdle || s.Input().Provider != provider.Gemini {
		t.Fatalf("new session = %+v", s.Snapshot())
	}

	id := s.Begin()
	if s.State().Phase() != PhaseLoading {
		t.Fatalf("phase = %v, want loading", s.State().Phase())
	}
	if !s.Commit(id, sampleReport()) {
		t.Fatal("Commit() rejected current request")
	}

	snap := s.Snapshot()
	if snap.State.Phase() != PhaseSuccess {
		t.Fatalf("phase = %v, want success", snap.State.Phase())
	}
	// 默认按 atomScore 降序，简报按 rank 升序
	if snap.Table[0].DomainName != "top.com" || snap.Briefing[0].Rank != 1 {
		t.Errorf("snapshot = %+v", snap)
	}

	// 失败后隐藏报告，但保留的报告不变
	id = s.Begin()
	s.Fail(id, "Invalid response format from OpenAI API.")
	snap = s.Snapshot()
	if snap.State.Phase() != PhaseFailed || snap.Table != nil {
		t.Errorf("failed snapshot = %+v", snap)
	}
	if r := s.Retained(); r == nil || len(r.AnalysisTable) != 2 || r.AnalysisTable[0].DomainName != "low.com" {
		t.Errorf("retained report altered: %+v", r)
	}
}

func TestSession_StaleResultDiscarded(t *testing.T) {
	s := NewSession("s1", time.Now())
	first := s.Begin()
	second := s.Begin()

	if s.Commit(first, sampleReport()) {
		t.Error("stale Commit() accepted")
	}
	if s.State().Phase() != PhaseLoading {
		t.Errorf("phase = %v after stale commit, want loading", s.State().Phase())
	}
	if !s.Fail(second, "boom") {
		t.Error("current Fail() rejected")
	}

	third := s.Begin()
	s.Reject("Please enter at least one domain name.")
	if s.Commit(third, sampleReport()) {
		t.Error("Commit() accepted after a newer validation failure")
	}
	if msg, _ := s.State().Message(); msg != "Please enter at least one domain name." {
		t.Errorf("message = %q", msg)
	}
}

func TestSession_SortDoesNotTouchCanonicalOrder(t *testing.T) {
	s := NewSession("s1", time.Now())
	r := sampleReport()
	s.Commit(s.Begin(), r)

	s.RequestSort(view.KeyDomainName)
	snap := s.Snapshot()
	if snap.Sort != (view.SortConfig{Key: view.KeyDomainName, Direction: view.Ascending}) {
		t.Errorf("sort = %+v", snap.Sort)
	}
	if snap.Table[0].DomainName != "low.com" || snap.Table[1].DomainName != "top.com" {
		t.Errorf("table = %+v", snap.Table)
	}
	if r.AnalysisTable[0].DomainName != "low.com" || r.ExecutiveBriefing[0].Rank != 2 {
		t.Error("canonical report reordered")
	}
}

func TestSession_SetInputKeepsProvider(t *testing.T) {
	s := NewSession("s1", time.Now())
	s.SetInput(Input{Domains: "a.com", APIKey: "k", Provider: provider.OpenAI})
	s.SetInput(Input{Domains: "b.com"})
	if in := s.Input(); in.Provider != provider.OpenAI || in.Domains != "b.com" || in.APIKey != "" {
		t.Errorf("input = %+v", in)
	}
	s.SetDomains("c.com")
	if s.Input().Domains != "c.com" {
		t.Error("SetDomains() ignored")
	}
}
