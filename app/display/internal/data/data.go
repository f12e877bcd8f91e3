package data

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/brand_spark/app/display/internal/conf"
	"github.com/iWorld-y/brand_spark/app/display/internal/domain"
	"github.com/iWorld-y/brand_spark/app/display/internal/metrics"
)

// DefaultSessionTTL 未配置时的会话空闲过期时间
const DefaultSessionTTL = 30 * time.Minute

// Data 内存中的会话存储，进程退出即丢失
type Data struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	ttl      time.Duration
	now      func() time.Time
	log      *log.Helper
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	ttl := DefaultSessionTTL
	if c != nil && c.SessionTtl != "" {
		d, err := time.ParseDuration(c.SessionTtl)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid session_ttl %q: %w", c.SessionTtl, err)
		}
		if d > 0 {
			ttl = d
		}
	}

	d := &Data{
		sessions: make(map[string]*domain.Session),
		ttl:      ttl,
		now:      time.Now,
		log:      log.NewHelper(logger),
	}

	stop := make(chan struct{})
	go d.sweep(stop)

	cleanup := func() {
		d.log.Info("closing the data resources")
		close(stop)
	}
	return d, cleanup, nil
}

// sweep 定期清理空闲过期的会话
func (d *Data) sweep(stop <-chan struct{}) {
	ticker := time.NewTicker(max(d.ttl/2, time.Second))
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if n := d.evictExpired(); n > 0 {
				d.log.Infof("清理过期会话 %d 个", n)
			}
		}
	}
}

func (d *Data) evictExpired() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	n := 0
	for id, s := range d.sessions {
		if now.Sub(s.LastSeen()) > d.ttl {
			delete(d.sessions, id)
			n++
		}
	}
	metrics.SessionsActive.Set(float64(len(d.sessions)))
	return n
}
