package repo

import (
	"context"

	"github.com/iWorld-y/brand_spark/app/display/internal/domain"
)

// SessionRepo 会话仓库接口，会话只存在于内存中
type SessionRepo interface {
	// Get 根据ID获取会话，不存在或已过期时返回 false
	Get(ctx context.Context, id string) (*domain.Session, bool)
	// Create 创建新会话
	Create(ctx context.Context) *domain.Session
	// Count 当前存活的会话数量
	Count(ctx context.Context) int
}
