package middleware

import (
	"github.com/aokumo/dept-task-api/internal/constants"
	apierrors "github.com/aokumo/dept-task-api/internal/errors"
	"github.com/aokumo/dept-task-api/internal/models"
	"github.com/aokumo/dept-task-api/internal/repository"
	"github.com/gin-gonic/gin"
)

// LoadActor resolves the authenticated session into a full user profile and
// stores it in the request context. Inactive profiles are rejected here so
// services can assume a live actor.
func LoadActor(userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		profile, err := userRepo.FindByID(userID)
		if err != nil || !profile.IsActive {
			apierrors.Unauthorized(c, "Account is not active")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyActor, profile)
		c.Next()
	}
}

// GetActor retrieves the loaded profile from context
func GetActor(c *gin.Context) (*models.UserProfile, bool) {
	value, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return nil, false
	}
	actor, ok := value.(*models.UserProfile)
	return actor, ok
}
