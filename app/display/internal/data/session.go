package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/iWorld-y/brand_spark/app/display/internal/domain"
	"github.com/iWorld-y/brand_spark/app/display/internal/metrics"
	"github.com/iWorld-y/brand_spark/app/display/internal/repo"
)

type sessionRepo struct {
	data *Data
	log  *log.Helper
}

func NewSessionRepo(data *Data, logger log.Logger) repo.SessionRepo {
	return &sessionRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*domain.Session, bool) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()

	s, ok := r.data.sessions[id]
	if !ok {
		return nil, false
	}
	now := r.data.now()
	if now.Sub(s.LastSeen()) > r.data.ttl {
		delete(r.data.sessions, id)
		metrics.SessionsActive.Set(float64(len(r.data.sessions)))
		return nil, false
	}
	s.Touch(now)
	return s, true
}

func (r *sessionRepo) Create(ctx context.Context) *domain.Session {
	s := domain.NewSession(uuid.NewString(), r.data.now())

	r.data.mu.Lock()
	r.data.sessions[s.ID] = s
	n := len(r.data.sessions)
	r.data.mu.Unlock()

	metrics.SessionsActive.Set(float64(n))
	r.log.WithContext(ctx).Debugf("新建会话 %s", s.ID)
	return s
}

func (r *sessionRepo) Count(ctx context.Context) int {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	return len(r.data.sessions)
}
