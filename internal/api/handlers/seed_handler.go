package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siriassis-creator/Sit-logistics-app/internal/database"
	"github.com/siriassis-creator/Sit-logistics-app/internal/store"
)

type SeedHandler struct {
	Store store.Store
}

// SeedDemoData bootstraps an empty install with demo fleet and drivers.
func (h *SeedHandler) SeedDemoData(c *gin.Context) {
	err := database.SeedDemoData(context.Background(), h.Store)
	if err != nil {
		if errors.Is(err, database.ErrAlreadySeeded) {
			c.JSON(http.StatusConflict, gin.H{"error": "Demo data already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed demo data"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Demo data created"})
}
