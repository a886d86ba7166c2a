package auth

import (
	"context"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
)

type ctxKey struct{}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext extracts the authenticated user, if any.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*domain.User)
	if !ok || u == nil {
		return nil, false
	}
	return u, true
}
