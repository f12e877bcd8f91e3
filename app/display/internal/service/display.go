package service

import (
	"context"
	"embed"
	"html/template"
	"io"
	"mime/multipart"
	nethttp "net/http"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/model"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/normalize"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/provider"
	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/view"
	pb "github.com/iWorld-y/brand_spark/app/display/api/display/v1"
	"github.com/iWorld-y/brand_spark/app/display/internal/domain"
	"github.com/iWorld-y/brand_spark/app/display/internal/usecase"
)

// SessionCookie 保存会话ID的 cookie 名称
const SessionCookie = "brandspark_session"

//go:embed assets/index.html
var assets embed.FS

var page = template.Must(template.ParseFS(assets, "assets/index.html"))

type DisplayService struct {
	uc  *usecase.AnalysisUseCase
	log *log.Helper
}

func NewDisplayService(uc *usecase.AnalysisUseCase, logger log.Logger) *DisplayService {
	return &DisplayService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// Analyze 无状态 JSON 接口
func (s *DisplayService) Analyze(ctx context.Context, req *pb.AnalyzeRequest) (*model.Report, error) {
	return s.uc.AnalyzeOnce(ctx, domain.Input{
		Domains:  req.Domains,
		APIKey:   req.ApiKey,
		Provider: provider.Name(req.Provider),
	})
}

func (s *DisplayService) Normalize(ctx context.Context, req *pb.NormalizeRequest) (*pb.NormalizeReply, error) {
	return &pb.NormalizeReply{Domains: s.uc.Normalize(ctx, req.Text)}, nil
}

// session 根据 cookie 取得会话，必要时新建并下发 cookie
func (s *DisplayService) session(w nethttp.ResponseWriter, r *nethttp.Request) *domain.Session {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}
	sess := s.uc.Session(r.Context(), id)
	if sess.ID != id {
		nethttp.SetCookie(w, &nethttp.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: nethttp.SameSiteLaxMode,
		})
	}
	return sess
}

// Index 渲染当前会话的页面
func (s *DisplayService) Index(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.URL.Path != "/" {
		nethttp.NotFound(w, r)
		return
	}
	sess := s.session(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := page.Execute(w, newPageData(sess.Snapshot())); err != nil {
		s.log.WithContext(r.Context()).Errorf("渲染页面失败: %v", err)
	}
}

// SubmitAnalyze 处理 "Analyze Domains" 表单
func (s *DisplayService) SubmitAnalyze(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodPost {
		nethttp.Error(w, "method not allowed", nethttp.StatusMethodNotAllowed)
		return
	}
	sess := s.session(w, r)
	// 按钮在 Loading 时被禁用，这里不做额外拦截
	s.uc.Analyze(r.Context(), sess, formInput(r))
	nethttp.Redirect(w, r, "/", nethttp.StatusSeeOther)
}

// SubmitUpload 读取上传的 .csv/.txt 文件替换域名输入。
// 逐段读取表单，即使文件过大或读取失败，已填写的其它输入也会保留。
func (s *DisplayService) SubmitUpload(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodPost {
		nethttp.Error(w, "method not allowed", nethttp.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	sess := s.session(w, r)
	r.Body = nethttp.MaxBytesReader(w, r.Body, normalize.MaxFileSize+64<<10)
	mr, err := r.MultipartReader()
	if err != nil {
		s.log.WithContext(ctx).Warnf("会话 %s 上传表单解析失败: %v", sess.ID, err)
		nethttp.Redirect(w, r, "/", nethttp.StatusSeeOther)
		return
	}

	in := sess.Input()
	uploaded := false
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.log.WithContext(ctx).Warnf("会话 %s 上传表单读取中断: %v", sess.ID, err)
			break
		}
		switch part.FormName() {
		case "domains":
			in.Domains = readField(part)
		case "apiKey":
			in.APIKey = readField(part)
		case "provider":
			in.Provider = provider.Name(readField(part))
		case "file":
			if part.FileName() == "" {
				break
			}
			// 读取失败只记录日志，不影响已有输入
			if err := s.uc.Upload(ctx, sess, part.FileName(), part); err == nil {
				uploaded = true
			}
		}
		part.Close()
	}
	if uploaded {
		// 文件内容优先于表单中的域名
		in.Domains = sess.Input().Domains
	} else {
		s.log.WithContext(ctx).Warnf("会话 %s 未成功读取上传文件", sess.ID)
	}
	sess.SetInput(in)
	nethttp.Redirect(w, r, "/", nethttp.StatusSeeOther)
}

func readField(part *multipart.Part) string {
	b, _ := io.ReadAll(io.LimitReader(part, normalize.MaxFileSize))
	return string(b)
}

// SubmitSort 点击表头排序
func (s *DisplayService) SubmitSort(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodPost {
		nethttp.Error(w, "method not allowed", nethttp.StatusMethodNotAllowed)
		return
	}
	sess := s.session(w, r)
	if key, ok := view.ParseSortKey(r.FormValue("key")); ok {
		s.uc.Sort(r.Context(), sess, key)
	}
	nethttp.Redirect(w, r, "/#analysis", nethttp.StatusSeeOther)
}

func formInput(r *nethttp.Request) domain.Input {
	return domain.Input{
		Domains:  r.FormValue("domains"),
		APIKey:   r.FormValue("apiKey"),
		Provider: provider.Name(r.FormValue("provider")),
	}
}
