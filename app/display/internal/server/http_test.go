package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/go-cmp/cmp"

	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/model"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/provider"
	"github.com/iWorld-y/brand_spark/app/display/internal/conf"
	"github.com/iWorld-y/brand_spark/app/display/internal/data"
	"github.com/iWorld-y/brand_spark/app/display/internal/service"
	"github.com/iWorld-y/brand_spark/app/display/internal/usecase"
)

// stubDispatcher 立即返回固定结果
type stubDispatcher struct {
	report *model.Report
	err    error
	calls  chan string
}

func (s *stubDispatcher) Analyze(ctx context.Context, name provider.Name, domains, apiKey string) (*model.Report, error) {
	s.calls <- string(name) + "|" + domains
	return s.report, s.err
}

var testReport = &model.Report{
	AnalysisTable: []model.DomainAnalysis{
		{DomainName: "zenvo.com", BrandArchetype: "The Sage", AtomScore: 8, Valuation: "$1,500 / $8,500"},
		{DomainName: "brightly.com", BrandArchetype: "The Creator", AtomScore: 6, Valuation: "$900 / $14,000"},
	},
	ExecutiveBriefing: []model.ExecutivePick{
		{Rank: 2, DomainName: "brightly.com", Justification: "Runner up."},
		{Rank: 1, DomainName: "zenvo.com", Justification: "Best pick."},
	},
}

func newTestServer(t *testing.T, d usecase.Dispatcher) *http.Server {
	t.Helper()
	dd, cleanup, err := data.NewData(&conf.Data{}, log.DefaultLogger)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(cleanup)
	uc := usecase.NewAnalysisUseCase(data.NewSessionRepo(dd, log.DefaultLogger), d, log.DefaultLogger)
	svc := service.NewDisplayService(uc, log.DefaultLogger)
	return NewHTTPServer(&conf.Server{Http: &conf.HTTP{Timeout: "0s"}}, svc, log.DefaultLogger)
}

// browser 手动维护会话 cookie
type browser struct {
	t      *testing.T
	srv    *http.Server
	cookie *nethttp.Cookie
}

func (b *browser) do(req *nethttp.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	rec := httptest.NewRecorder()
	b.srv.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == service.SessionCookie {
			b.cookie = c
		}
	}
	return rec
}

func (b *browser) get() string {
	return b.do(httptest.NewRequest(nethttp.MethodGet, "/", nil)).Body.String()
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(nethttp.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

// waitFor 轮询页面直到出现指定内容
func (b *browser) waitFor(substr string) string {
	b.t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		body := b.get()
		if strings.Contains(body, substr) {
			return body
		}
		if time.Now().After(deadline) {
			b.t.Fatalf("page never contained %q:\n%s", substr, body)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestPage_AnalyzeAndSort(t *testing.T) {
	d := &stubDispatcher{report: testReport, calls: make(chan string, 4)}
	b := &browser{t: t, srv: newTestServer(t, d)}

	body := b.get()
	if b.cookie == nil {
		t.Fatal("no session cookie issued")
	}
	if !strings.Contains(body, "Gemini API Key") || strings.Contains(body, "Executive Briefing") {
		t.Errorf("unexpected idle page:\n%s", body)
	}

	rec := b.post("/analyze", url.Values{"provider": {"openai"}, "apiKey": {"sk-test"}, "domains": {"zenvo.com, brightly.com"}})
	if rec.Code != nethttp.StatusSeeOther {
		t.Fatalf("POST /analyze status = %d", rec.Code)
	}
	if got := <-d.calls; got != "openai|zenvo.com, brightly.com" {
		t.Errorf("dispatched %q", got)
	}

	body = b.waitFor("Executive Briefing: Top 5 Picks")
	if strings.Index(body, "#1 zenvo.com") > strings.Index(body, "#2 brightly.com") {
		t.Error("briefing not in rank order")
	}
	if !strings.Contains(body, "8/10") || !strings.Contains(body, "OpenAI API Key") {
		t.Error("missing score or provider label")
	}
	// 默认 Atom Score 降序
	table := body[strings.Index(body, "Comprehensive Analysis"):]
	if strings.Index(table, "zenvo.com") > strings.Index(table, "brightly.com") {
		t.Error("default sort is not atomScore descending")
	}

	// 点击 Valuation：按零售价升序
	b.post("/sort", url.Values{"key": {"valuation"}})
	table = b.get()
	table = table[strings.Index(table, "Comprehensive Analysis"):]
	if strings.Index(table, "zenvo.com") > strings.Index(table, "brightly.com") {
		t.Error("valuation ascending should put $8,500 before $14,000")
	}
	b.post("/sort", url.Values{"key": {"valuation"}})
	table = b.get()
	table = table[strings.Index(table, "Comprehensive Analysis"):]
	if strings.Index(table, "brightly.com") > strings.Index(table, "zenvo.com") {
		t.Error("valuation descending should put $14,000 first")
	}
}

func TestPage_ValidationAndProviderError(t *testing.T) {
	d := &stubDispatcher{err: model.ErrorProvider("An error occurred with the OpenAI API."), calls: make(chan string, 4)}
	b := &browser{t: t, srv: newTestServer(t, d)}

	b.post("/analyze", url.Values{"provider": {"gemini"}, "domains": {"a.com"}})
	body := b.get()
	if !strings.Contains(body, "Please enter an API key for Gemini.") {
		t.Errorf("validation message missing:\n%s", body)
	}
	if len(d.calls) != 0 {
		t.Error("provider called despite missing key")
	}

	b.post("/analyze", url.Values{"provider": {"openai"}, "apiKey": {"sk"}, "domains": {"a.com"}})
	b.waitFor("An error occurred with the OpenAI API.")
}

func TestPage_Upload(t *testing.T) {
	b := &browser{t: t, srv: newTestServer(t, &stubDispatcher{calls: make(chan string, 1)})}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("provider", "openai")
	_ = w.WriteField("apiKey", "sk")
	_ = w.WriteField("domains", "old.com")
	fw, _ := w.CreateFormFile("file", "domains.csv")
	_, _ = fw.Write([]byte("zenvo.com;brightly.com\nquantix.io"))
	_ = w.Close()

	req := httptest.NewRequest(nethttp.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if rec := b.do(req); rec.Code != nethttp.StatusSeeOther {
		t.Fatalf("POST /upload status = %d", rec.Code)
	}

	body := b.get()
	if !strings.Contains(body, "zenvo.com, brightly.com, quantix.io</textarea>") {
		t.Errorf("uploaded domains not in textarea:\n%s", body)
	}
	if !strings.Contains(body, `value="openai" data-label="OpenAI API Key" checked`) {
		t.Error("provider selection lost on upload")
	}
}

func TestAPI_Analyze(t *testing.T) {
	d := &stubDispatcher{report: testReport, calls: make(chan string, 4)}
	srv := newTestServer(t, d)

	call := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/analyze", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		return rec
	}

	rec := call(`{"provider":"gemini","domains":"zenvo.com, brightly.com","apiKey":"k"}`)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var got model.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(*testReport, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}

	rec = call(`{"provider":"openai","domains":"","apiKey":"k"}`)
	if rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var e struct {
		Reason  string `json:"reason"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &e)
	if e.Reason != model.ReasonValidation || e.Message != "Please enter at least one domain name." {
		t.Errorf("error body = %s", rec.Body)
	}
}

func TestAPI_NormalizeAndMetrics(t *testing.T) {
	srv := newTestServer(t, &stubDispatcher{calls: make(chan string, 1)})

	req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/normalize", strings.NewReader(`{"text":"a.com\n b.com;c.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), `"domains":"a.com, b.com, c.com"`) {
		t.Errorf("normalize body = %s", rec.Body)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "brandspark_sessions_active") {
		t.Error("metrics endpoint missing brandspark gauges")
	}
}

func TestPage_OversizedUploadKeepsTypedInput(t *testing.T) {
	b := &browser{t: t, srv: newTestServer(t, &stubDispatcher{calls: make(chan string, 1)})}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("provider", "openai")
	_ = w.WriteField("apiKey", "sk-typed")
	_ = w.WriteField("domains", "typed.com, unsaved.io")
	fw, _ := w.CreateFormFile("file", "huge.txt")
	_, _ = fw.Write(bytes.Repeat([]byte("a.com\n"), 2<<20/6))
	_ = w.Close()

	req := httptest.NewRequest(nethttp.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if rec := b.do(req); rec.Code != nethttp.StatusSeeOther {
		t.Fatalf("POST /upload status = %d", rec.Code)
	}

	body := b.get()
	if !strings.Contains(body, "typed.com, unsaved.io</textarea>") {
		t.Error("typed domains lost after oversized upload")
	}
	if !strings.Contains(body, `value="sk-typed"`) || !strings.Contains(body, `value="openai" data-label="OpenAI API Key" checked`) {
		t.Error("typed key or provider lost after oversized upload")
	}
	if strings.Contains(body, "Error: ") {
		t.Error("upload failure surfaced as analysis error")
	}
}

func TestMetrics_UnknownProviderLabel(t *testing.T) {
	srv := newTestServer(t, &stubDispatcher{calls: make(chan string, 1)})
	b := &browser{t: t, srv: srv}

	b.post("/analyze", url.Values{"provider": {"bogus-form-provider"}, "apiKey": {"k"}, "domains": {"a.com"}})
	if !strings.Contains(b.get(), "Unsupported AI provider: bogus-form-provider.") {
		t.Error("unknown provider not rejected")
	}

	req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/analyze",
		strings.NewReader(`{"provider":"bogus-api-provider","domains":"a.com","apiKey":"k"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/metrics", nil))
	metricsBody := rec.Body.String()
	if strings.Contains(metricsBody, "bogus") {
		t.Error("user supplied provider leaked into metric labels")
	}
	if !strings.Contains(metricsBody, `provider="unknown"`) {
		t.Error("unknown provider label missing")
	}
}
