package handlers

import (
	"context"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/siriassis-creator/Sit-logistics-app/internal/models"
	"github.com/siriassis-creator/Sit-logistics-app/internal/store"
)

type DashboardHandler struct {
	Store store.Store
}

// GetSummary returns the headline counters for the landing dashboard.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := h.Store.List(context.Background(), "fleet", &vehicles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query fleet"})
		return
	}
	var orders []models.Order
	if err := h.Store.List(context.Background(), "orders", &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query orders"})
		return
	}
	var tickets []models.MaintenanceTicket
	if err := h.Store.List(context.Background(), "maintenance", &tickets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query maintenance"})
		return
	}

	pending := 0
	inTransit := 0
	for _, o := range orders {
		switch o.Status {
		case models.OrderDraft, models.OrderAwaiting:
			pending++
		case models.OrderInTransit:
			inTransit++
		}
	}

	openMaintenance := 0
	for _, t := range tickets {
		if t.Status != models.MaintenanceCompleted && t.Status != models.MaintenanceRejected {
			openMaintenance++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalTrucks":     len(vehicles),
		"pendingOrders":   pending,
		"inTransit":       inTransit,
		"openMaintenance": openMaintenance,
	})
}

// GetFleetUtilization breaks the fleet down by operational status.
func (h *DashboardHandler) GetFleetUtilization(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := h.Store.List(context.Background(), "fleet", &vehicles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query fleet"})
		return
	}

	counts := map[string]int{
		models.VehicleAvailable:   0,
		models.VehicleInTransit:   0,
		models.VehicleMaintenance: 0,
		models.VehicleInactive:    0,
	}
	for _, v := range vehicles {
		status := v.Status
		if status == "" {
			status = models.VehicleAvailable
		}
		counts[status]++
	}

	c.JSON(http.StatusOK, gin.H{"total": len(vehicles), "byStatus": counts})
}

// GetCompletedOrders returns the completed-trip counts per day, oldest
// first, for the throughput chart.
func (h *DashboardHandler) GetCompletedOrders(c *gin.Context) {
	var orders []models.Order
	if err := h.Store.List(context.Background(), "orders", &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query orders"})
		return
	}

	byDay := map[string]int{}
	for _, o := range orders {
		if o.Status != models.OrderCompleted || o.CompletedDate == "" {
			continue
		}
		byDay[o.CompletedDate]++
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)

	series := make([]gin.H, 0, len(days))
	for _, d := range days {
		series = append(series, gin.H{"date": d, "completed": byDay[d]})
	}
	c.JSON(http.StatusOK, gin.H{"series": series})
}
