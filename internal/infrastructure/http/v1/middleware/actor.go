package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "essentia/internal/core/context"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorName = "X-Actor-Name"
)

// Actor middleware propagates the acting back-office user to the domain
// layer. Authentication happens upstream (gateway); conversion records
// only need to know who to attribute the operation to.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(HeaderActorID)
		if actorID == "" {
			c.Next()
			return
		}

		ctx := appctx.WithActor(c.Request.Context(), &appctx.ActorContext{
			ActorID: actorID,
			Name:    c.GetHeader(HeaderActorName),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Set("actor_id", actorID)

		c.Next()
	}
}
