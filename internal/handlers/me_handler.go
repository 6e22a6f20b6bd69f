package handlers

import (
	"errors"
	"sort"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httpresp"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/middleware"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe returns the caller's user, the staff profile when there is one and
// the permissions carried by the token in use.
func (h *MeHandler) GetMe(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Not authenticated")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Role").
		First(&user, "id = ?", identity.UserID).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found")
			return
		}
		fail(c, err)
		return
	}

	var staff *models.Staff
	var s models.Staff
	err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", user.ID).
		First(&s).Error
	switch {
	case err == nil:
		staff = &s
	case !errors.Is(err, gorm.ErrRecordNotFound):
		fail(c, err)
		return
	}

	perms := make([]string, 0, len(identity.Permissions))
	for p := range identity.Permissions {
		perms = append(perms, string(p))
	}
	sort.Strings(perms)

	httpresp.OK(c, gin.H{
		"user":        user,
		"staff":       staff,
		"role":        identity.Role,
		"permissions": perms,
	})
}
