package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RPleshkov/SessionVault/domain"
)

// AdminHandlers handles administrative user management
type AdminHandlers struct {
	userRepo domain.UserRepository
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(userRepo domain.UserRepository) *AdminHandlers {
	return &AdminHandlers{userRepo: userRepo}
}

// ActivateUser re-enables a deactivated account
func (h *AdminHandlers) ActivateUser(c *gin.Context) {
	h.setActive(c, true)
}

// DeactivateUser disables an account. Existing access tokens keep failing
// validation through the active-flag re-check, not through revocation.
func (h *AdminHandlers) DeactivateUser(c *gin.Context) {
	h.setActive(c, false)
}

func (h *AdminHandlers) setActive(c *gin.Context, active bool) {
	userID := c.Param("id")

	user, err := h.userRepo.FindByID(c.Request.Context(), userID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find user"})
		return
	}

	if err := h.userRepo.SetActive(c.Request.Context(), user.ID, active); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	log.Printf("USER_ACTIVE_CHANGED: user_id=%s email=%s active=%t", user.ID, user.Email, active)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"user_id":   user.ID,
			"is_active": active,
		},
	})
}
