package v1

import (
	"context"

	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/brand_spark/app/analyzer/pkg/model"
)

const (
	OperationDisplayAnalyze   = "/display.v1.Display/Analyze"
	OperationDisplayNormalize = "/display.v1.Display/Normalize"
)

// AnalyzeRequest 无状态分析请求
type AnalyzeRequest struct {
	Provider string `json:"provider"`
	Domains  string `json:"domains"`
	ApiKey   string `json:"apiKey"`
}

type NormalizeRequest struct {
	Text string `json:"text"`
}

type NormalizeReply struct {
	Domains string `json:"domains"`
}

// DisplayHTTPServer JSON API
type DisplayHTTPServer interface {
	Analyze(context.Context, *AnalyzeRequest) (*model.Report, error)
	Normalize(context.Context, *NormalizeRequest) (*NormalizeReply, error)
}

func RegisterDisplayHTTPServer(s *http.Server, srv DisplayHTTPServer) {
	r := s.Route("/")
	r.POST("/api/v1/analyze", analyzeHandler(srv))
	r.POST("/api/v1/normalize", normalizeHandler(srv))
}

func analyzeHandler(srv DisplayHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in AnalyzeRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationDisplayAnalyze)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.Analyze(ctx, req.(*AnalyzeRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*model.Report))
	}
}

func normalizeHandler(srv DisplayHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in NormalizeRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationDisplayNormalize)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.Normalize(ctx, req.(*NormalizeRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*NormalizeReply))
	}
}
