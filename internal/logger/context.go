package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const (
	sessionIDKey ctxKey = "session_id"
	userKey      ctxKey = "user"
)

func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

func SessionIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(sessionIDKey).(string); ok {
		return v
	}
	return ""
}

func WithUser(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userKey, email)
}

func UserFrom(ctx context.Context) string {
	if v, ok := ctx.Value(userKey).(string); ok {
		return v
	}
	return ""
}

// FromCtx returns logger with session_id and user automatically added
func FromCtx(ctx context.Context) *zap.Logger {
	l := L()
	if id := SessionIDFrom(ctx); id != "" {
		l = l.With(zap.String("session_id", id))
	}
	if u := UserFrom(ctx); u != "" {
		l = l.With(zap.String("user", u))
	}
	return l
}
