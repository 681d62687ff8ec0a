package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/http/response"
	"github.com/agoralabs/agora-backend/internal/platform/ctxutil"
)

const (
	headerActorType = "X-Actor-Type"
	headerActorID   = "X-Actor-Id"
)

// AttachActor reads the gateway-supplied actor identity headers into the
// request context. The gateway in front of this service authenticates the
// caller and sets the headers; here they are only parsed. Requests without
// the headers pass through anonymous, handlers that need an identity use
// RequireActor.
func AttachActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawType := strings.TrimSpace(c.GetHeader(headerActorType))
		rawID := strings.TrimSpace(c.GetHeader(headerActorID))
		if rawType == "" && rawID == "" {
			c.Next()
			return
		}

		actorType, err := domain.ParseActorType(rawType)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
			c.Abort()
			return
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_argument",
				fmt.Errorf("invalid %s header: %w", headerActorID, err))
			c.Abort()
			return
		}

		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
			Actor: domain.ActorRef{Type: actorType, ID: id},
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireActor aborts with 403 when no actor identity was attached.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil || rd.Actor.Validate() != nil {
			response.RespondError(c, http.StatusForbidden, "forbidden",
				fmt.Errorf("missing actor identity"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActorFrom returns the attached actor, or false when the request is
// anonymous.
func ActorFrom(c *gin.Context) (domain.ActorRef, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.Actor.Validate() != nil {
		return domain.ActorRef{}, false
	}
	return rd.Actor, true
}
