package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/siriassis-creator/Sit-logistics-app/internal/auth"
	"github.com/siriassis-creator/Sit-logistics-app/internal/models"
	"github.com/siriassis-creator/Sit-logistics-app/internal/store"
)

type AuthHandler struct {
	Issuer *auth.TokenIssuer
	Store  store.Store
}

// AnonymousLogin mints a throwaway staff identity and a session token,
// mirroring the dashboard's anonymous sign-in. No credentials exist.
func (h *AuthHandler) AnonymousLogin(c *gin.Context) {
	userID := fmt.Sprintf("staff-%s", uuid.New().String()[:8])

	token, err := h.Issuer.Generate(userID, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session token"})
		return
	}

	user := models.User{
		UserID:    userID,
		Anonymous: true,
		CreatedAt: time.Now(),
	}
	if _, err := h.Store.Create(context.Background(), "users", user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "userId": userID})
}
