package dbctx

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/farm-catalog-backend/internal/pkg/ctxutil"
)

// Context bundles a request context with an optional GORM transaction.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// DB returns the transaction when one is attached, otherwise fallback, bound to Ctx.
func (c Context) DB(fallback *gorm.DB) *gorm.DB {
	txx := c.Tx
	if txx == nil {
		txx = fallback
	}
	return txx.WithContext(ctxutil.Default(c.Ctx))
}
