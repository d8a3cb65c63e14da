package context

import (
	"context"
)

// ActorContext identifies who performed a request. Authentication itself is
// handled upstream; the back office only records the actor on audit rows.
type ActorContext struct {
	ActorID string
	Name    string
}

type actorContextKey struct{}

// WithActor adds ActorContext to context.
func WithActor(ctx context.Context, actor *ActorContext) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// GetActor returns ActorContext from context.
func GetActor(ctx context.Context) *ActorContext {
	if v, ok := ctx.Value(actorContextKey{}).(*ActorContext); ok {
		return v
	}
	return nil
}

// GetActorID returns the actor ID from context or "system" when absent
// (seed scripts, scheduled jobs).
func GetActorID(ctx context.Context) string {
	if a := GetActor(ctx); a != nil && a.ActorID != "" {
		return a.ActorID
	}
	return "system"
}
