package server

import (
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	pb "github.com/iWorld-y/brand_spark/app/display/api/display/v1"
	"github.com/iWorld-y/brand_spark/app/display/internal/conf"
	"github.com/iWorld-y/brand_spark/app/display/internal/service"
)

func NewHTTPServer(c *conf.Server, s *service.DisplayService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				// 0 表示不设置本地超时
				opts = append(opts, http.Timeout(d))
			} else {
				log.NewHelper(logger).Warnf("忽略无效的 http.timeout %q: %v", c.Http.Timeout, err)
			}
		}
	}

	srv := http.NewServer(opts...)
	pb.RegisterDisplayHTTPServer(srv, s)

	srv.Handle("/metrics", promhttp.Handler())
	srv.HandleFunc("/analyze", s.SubmitAnalyze)
	srv.HandleFunc("/upload", s.SubmitUpload)
	srv.HandleFunc("/sort", s.SubmitSort)
	srv.HandleFunc("/", s.Index)

	return srv
}
