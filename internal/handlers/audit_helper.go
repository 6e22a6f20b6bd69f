package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/logger"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/middleware"
)

// actorID is the authenticated user recorded on audit entries and on
// created rows. nil when the route is not authenticated.
func actorID(c *gin.Context) *uuid.UUID {
	identity, ok := middleware.IdentityFrom(c)
	if !ok || identity.UserID == uuid.Nil {
		return nil
	}
	id := identity.UserID
	return &id
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func optionalUUID(c *gin.Context, key string) (*uuid.UUID, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid "+key)
		return nil, false
	}
	return &id, true
}

// fail writes err. Anything that is not a business error is logged with
// the request logger before the generic 500 goes out.
func fail(c *gin.Context, err error) {
	if httperr.StatusOf(err) >= 500 {
		logger.From(c).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	httperr.FromError(c, err)
}

func invalidBody(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", err.Error())
}
