package utils

import (
	"context"

	"github.com/VoteScope/VS-Dashboards/internal/session"
)

type contextKey string

const ContextSessionKey contextKey = "session"

func GetSessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(ContextSessionKey).(*session.Session)
	return s, ok
}
