package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/siriassis-creator/Sit-logistics-app/internal/fleetview"
	"github.com/siriassis-creator/Sit-logistics-app/internal/models"
	"github.com/siriassis-creator/Sit-logistics-app/internal/saga"
	"github.com/siriassis-creator/Sit-logistics-app/internal/store"
)

// Maintenance job codes: MA-0001, MA-0002, ...
const (
	maintenanceJobPrefix = "MA-"
	maintenanceJobWidth  = 4
)

type MaintenanceHandler struct {
	Store       store.Store
	Transitions *saga.Transitions
}

type CreateTicketPayload struct {
	TruckID    string `json:"truckId" binding:"required"`
	Type       string `json:"type"`
	Priority   string `json:"priority"`
	Issue      string `json:"issue" binding:"required"`
	DriverName string `json:"driverName"`
	PhotoURL   string `json:"photoUrl"`
}

type CompleteTicketPayload struct {
	Cost       float64 `json:"cost" binding:"required"`
	FinishNote string  `json:"finishNote"`
}

// CreateTicket opens a Pending maintenance ticket and pulls the truck out
// of service. The plate is snapshotted onto the ticket for display.
func (h *MaintenanceHandler) CreateTicket(c *gin.Context) {
	var payload CreateTicketPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var truck models.Vehicle
	if err := h.Store.Get(context.Background(), "fleet", payload.TruckID, &truck); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid truck ID"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check truck"})
		}
		return
	}

	var existing []models.MaintenanceTicket
	if err := h.Store.List(context.Background(), "maintenance", &existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query maintenance tickets"})
		return
	}
	codes := make([]string, len(existing))
	for i, t := range existing {
		codes[i] = t.JobID
	}

	priority := payload.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}

	ticket := models.MaintenanceTicket{
		JobID:       fleetview.NextCode(codes, maintenanceJobPrefix, maintenanceJobWidth),
		TruckID:     payload.TruckID,
		TruckPlate:  truck.Plate,
		Type:        payload.Type,
		Priority:    priority,
		Issue:       payload.Issue,
		DriverName:  payload.DriverName,
		PhotoURL:    payload.PhotoURL,
		Status:      models.MaintenancePending,
		RequestDate: time.Now().Format(fleetview.DateLayout),
		CreatedAt:   time.Now(),
	}

	id, err := h.Transitions.OpenTicket(context.Background(), ticket)
	if err != nil {
		respondSagaError(c, "Failed to open maintenance ticket", err)
		return
	}
	ticket.ID = id

	c.JSON(http.StatusCreated, ticket)
}

// ApproveTicket moves a Pending ticket to In Progress.
func (h *MaintenanceHandler) ApproveTicket(c *gin.Context) {
	ticket, ok := h.loadTicket(c)
	if !ok {
		return
	}
	if ticket.Status != models.MaintenancePending {
		c.JSON(http.StatusConflict, gin.H{"error": "Only a pending ticket can be approved"})
		return
	}

	err := h.Transitions.ApplyTicketStatus(context.Background(), ticket, models.MaintenanceInProgress,
		bson.M{"approvedDate": time.Now().Format(fleetview.DateLayout)})
	if err != nil {
		respondSagaError(c, "Failed to approve ticket", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket approved", "jobId": ticket.JobID})
}

// CompleteTicket closes an In Progress ticket with its cost and releases
// the truck.
func (h *MaintenanceHandler) CompleteTicket(c *gin.Context) {
	var payload CompleteTicketPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, ok := h.loadTicket(c)
	if !ok {
		return
	}
	if ticket.Status != models.MaintenanceInProgress {
		c.JSON(http.StatusConflict, gin.H{"error": "Only a ticket in progress can be completed"})
		return
	}

	err := h.Transitions.ApplyTicketStatus(context.Background(), ticket, models.MaintenanceCompleted, bson.M{
		"cost":          payload.Cost,
		"finishNote":    payload.FinishNote,
		"completedDate": time.Now().Format(fleetview.DateLayout),
	})
	if err != nil {
		respondSagaError(c, "Failed to complete ticket", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket completed", "jobId": ticket.JobID})
}

// RejectTicket closes a Pending ticket without work and releases the
// truck. Terminal.
func (h *MaintenanceHandler) RejectTicket(c *gin.Context) {
	ticket, ok := h.loadTicket(c)
	if !ok {
		return
	}
	if ticket.Status != models.MaintenancePending {
		c.JSON(http.StatusConflict, gin.H{"error": "Only a pending ticket can be rejected"})
		return
	}

	err := h.Transitions.ApplyTicketStatus(context.Background(), ticket, models.MaintenanceRejected,
		bson.M{"rejectedDate": time.Now().Format(fleetview.DateLayout)})
	if err != nil {
		respondSagaError(c, "Failed to reject ticket", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket rejected", "jobId": ticket.JobID})
}

// GetAllTickets lists maintenance tickets, optionally filtered by status
// on the already-fetched array.
func (h *MaintenanceHandler) GetAllTickets(c *gin.Context) {
	var tickets []models.MaintenanceTicket
	if err := h.Store.List(context.Background(), "maintenance", &tickets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query maintenance tickets"})
		return
	}

	if status := c.Query("status"); status != "" {
		filtered := tickets[:0]
		for _, t := range tickets {
			if t.Status == status {
				filtered = append(filtered, t)
			}
		}
		tickets = filtered
	}
	if tickets == nil {
		tickets = []models.MaintenanceTicket{}
	}
	c.JSON(http.StatusOK, tickets)
}

// GetMaintenanceView returns tickets grouped by status or request date.
func (h *MaintenanceHandler) GetMaintenanceView(c *gin.Context) {
	var tickets []models.MaintenanceTicket
	if err := h.Store.List(context.Background(), "maintenance", &tickets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query maintenance tickets"})
		return
	}

	groups := deriveGroups(
		fleetview.MaintenanceRecords(tickets),
		viewQuery(c),
		groupByParam(c, fleetview.GroupByStatus),
		fleetview.MaintenanceStatusOrder,
	)
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (h *MaintenanceHandler) loadTicket(c *gin.Context) (models.MaintenanceTicket, bool) {
	var ticket models.MaintenanceTicket
	err := h.Store.Get(context.Background(), "maintenance", c.Param("id"), &ticket)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Maintenance ticket not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ticket"})
		}
		return models.MaintenanceTicket{}, false
	}
	return ticket, true
}

// respondSagaError names the failing step so staff know which half of a
// paired write needs manual correction.
func respondSagaError(c *gin.Context, message string, err error) {
	var stepErr *saga.StepError
	if errors.As(err, &stepErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": message, "failedStep": stepErr.Step})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
