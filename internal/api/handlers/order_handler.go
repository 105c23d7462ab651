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
	"github.com/siriassis-creator/Sit-logistics-app/internal/notify"
	"github.com/siriassis-creator/Sit-logistics-app/internal/saga"
	"github.com/siriassis-creator/Sit-logistics-app/internal/store"
)

// Shipment job codes: JOB-0001, JOB-0002, ...
const (
	orderJobPrefix = "JOB-"
	orderJobWidth  = 4
)

type OrderHandler struct {
	Store       store.Store
	Transitions *saga.Transitions
	Notifier    *notify.Notifier
}

type CreateOrderPayload struct {
	Date        string `json:"date" binding:"required"`
	SlotTime    string `json:"slotTime"`
	FactoryCall string `json:"factoryCall"`
	Customer    string `json:"customer"`
	Origin      string `json:"origin" binding:"required"`
	Destination string `json:"destination" binding:"required"`
	LoadingType string `json:"loadingType"`
	TruckID     string `json:"truckId"`
	TrailerID   string `json:"trailerId"`
}

type AssignDriverPayload struct {
	DriverID string `json:"driverId" binding:"required"`
}

type DispatchPayload struct {
	OrderIDs []string `json:"orderIds" binding:"required"`
}

type SiteInfoPayload struct {
	DocNumber   string `json:"docNumber"`
	TruckWeight string `json:"truckWeight"`
	CargoWeight string `json:"cargoWeight"`
	GateIn      string `json:"gateIn"`
	GateOut     string `json:"gateOut"`
	ECDNumber   string `json:"ecdNumber"`
}

// CreateOrder creates a Draft shipment. Truck and trailer plates are
// snapshotted onto the order for display.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload CreateOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order := models.Order{
		Date:        payload.Date,
		SlotTime:    payload.SlotTime,
		FactoryCall: payload.FactoryCall,
		Customer:    payload.Customer,
		Origin:      payload.Origin,
		Destination: payload.Destination,
		LoadingType: payload.LoadingType,
		Status:      models.OrderDraft,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if payload.TruckID != "" {
		var truck models.Vehicle
		if err := h.Store.Get(context.Background(), "fleet", payload.TruckID, &truck); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid truck ID"})
			return
		}
		order.TruckID = truck.ID
		order.TruckPlate = truck.Plate
	}
	if payload.TrailerID != "" {
		var trailer models.Vehicle
		if err := h.Store.Get(context.Background(), "fleet", payload.TrailerID, &trailer); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trailer ID"})
			return
		}
		order.TrailerID = trailer.ID
		order.TrailerPlate = trailer.Plate
	}

	var existing []models.Order
	if err := h.Store.List(context.Background(), "orders", &existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query orders"})
		return
	}
	codes := make([]string, len(existing))
	for i, o := range existing {
		codes[i] = o.JobID
	}
	order.JobID = fleetview.NextCode(codes, orderJobPrefix, orderJobWidth)

	id, err := h.Store.Create(context.Background(), "orders", order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}
	order.ID = id

	c.JSON(http.StatusCreated, order)
}

// UpdateOrder edits the bookable fields of a draft order. Truck and
// trailer swaps refresh the plate snapshots.
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var payload CreateOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, ok := h.loadOrder(c)
	if !ok {
		return
	}
	if order.Status != models.OrderDraft {
		c.JSON(http.StatusConflict, gin.H{"error": "Only a draft order can be edited"})
		return
	}

	patch := bson.M{
		"date":        payload.Date,
		"slotTime":    payload.SlotTime,
		"factoryCall": payload.FactoryCall,
		"customer":    payload.Customer,
		"origin":      payload.Origin,
		"destination": payload.Destination,
		"loadingType": payload.LoadingType,
		"updatedAt":   time.Now(),
	}
	if payload.TruckID != "" && payload.TruckID != order.TruckID {
		var truck models.Vehicle
		if err := h.Store.Get(context.Background(), "fleet", payload.TruckID, &truck); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid truck ID"})
			return
		}
		patch["truckId"] = truck.ID
		patch["truckPlate"] = truck.Plate
	}
	if payload.TrailerID != "" && payload.TrailerID != order.TrailerID {
		var trailer models.Vehicle
		if err := h.Store.Get(context.Background(), "fleet", payload.TrailerID, &trailer); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trailer ID"})
			return
		}
		patch["trailerId"] = trailer.ID
		patch["trailerPlate"] = trailer.Plate
	}

	if err := h.Store.Update(context.Background(), "orders", order.ID, patch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated", "jobId": order.JobID})
}

// AssignDriver denormalizes an active driver onto a draft order. The
// name and LINE handle are display snapshots taken now; the driver
// document stays the source of truth.
func (h *OrderHandler) AssignDriver(c *gin.Context) {
	var payload AssignDriverPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, ok := h.loadOrder(c)
	if !ok {
		return
	}
	if order.Status != models.OrderDraft {
		c.JSON(http.StatusConflict, gin.H{"error": "Only a draft order can be reassigned"})
		return
	}

	var driver models.Driver
	if err := h.Store.Get(context.Background(), "drivers", payload.DriverID, &driver); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid driver ID"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check driver"})
		}
		return
	}
	if driver.Status == models.DriverInactive {
		c.JSON(http.StatusConflict, gin.H{"error": "Driver is inactive"})
		return
	}

	patch := bson.M{
		"driverId":     driver.ID,
		"driverName":   driver.Name,
		"driverLineId": driver.LineID,
		"updatedAt":    time.Now(),
	}
	if err := h.Store.Update(context.Background(), "orders", order.ID, patch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign driver"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver assigned", "jobId": order.JobID, "driverName": driver.Name})
}

// DispatchOrders bulk-sends draft orders to their assigned drivers. Each
// order moves to Awaiting Acceptance, its truck goes In Transit, and the
// driver is notified through the webhook. Per-order failures do not stop
// the batch.
func (h *OrderHandler) DispatchOrders(c *gin.Context) {
	var payload DispatchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dispatched := []string{}
	skipped := []string{}
	failed := []gin.H{}

	for _, orderID := range payload.OrderIDs {
		var order models.Order
		if err := h.Store.Get(context.Background(), "orders", orderID, &order); err != nil {
			skipped = append(skipped, orderID)
			continue
		}
		if order.Status != models.OrderDraft || order.DriverID == "" {
			skipped = append(skipped, orderID)
			continue
		}

		if err := h.Transitions.DispatchOrder(context.Background(), order); err != nil {
			entry := gin.H{"orderId": orderID}
			var stepErr *saga.StepError
			if errors.As(err, &stepErr) {
				entry["failedStep"] = stepErr.Step
			}
			failed = append(failed, entry)
			continue
		}

		order.Status = models.OrderAwaiting
		h.Notifier.NotifyNewJob(order)
		dispatched = append(dispatched, orderID)
	}

	c.JSON(http.StatusOK, gin.H{
		"dispatched": dispatched,
		"skipped":    skipped,
		"failed":     failed,
	})
}

// StartOrder confirms the driver picked the job up.
func (h *OrderHandler) StartOrder(c *gin.Context) {
	order, ok := h.loadOrder(c)
	if !ok {
		return
	}
	if order.Status != models.OrderAwaiting {
		c.JSON(http.StatusConflict, gin.H{"error": "Only a dispatched order can start"})
		return
	}

	err := h.Transitions.ApplyOrderStatus(context.Background(), order, models.OrderInTransit,
		bson.M{"updatedAt": time.Now()})
	if err != nil {
		respondSagaError(c, "Failed to start order", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order started", "jobId": order.JobID})
}

// CompleteOrder closes the trip and releases the truck.
func (h *OrderHandler) CompleteOrder(c *gin.Context) {
	order, ok := h.loadOrder(c)
	if !ok {
		return
	}
	if order.Status != models.OrderInTransit {
		c.JSON(http.StatusConflict, gin.H{"error": "Only an order in transit can be completed"})
		return
	}

	err := h.Transitions.ApplyOrderStatus(context.Background(), order, models.OrderCompleted, bson.M{
		"completedDate": time.Now().Format(fleetview.DateLayout),
		"updatedAt":     time.Now(),
	})
	if err != nil {
		respondSagaError(c, "Failed to complete order", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order completed", "jobId": order.JobID})
}

// CancelOrder aborts a non-terminal order and releases the truck.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	order, ok := h.loadOrder(c)
	if !ok {
		return
	}
	if order.Terminal() {
		c.JSON(http.StatusConflict, gin.H{"error": "Order is already closed"})
		return
	}

	err := h.Transitions.ApplyOrderStatus(context.Background(), order, models.OrderCancelled,
		bson.M{"updatedAt": time.Now()})
	if err != nil {
		respondSagaError(c, "Failed to cancel order", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "jobId": order.JobID})
}

// UpdateSiteInfo appends the on-site capture pass: weigh-bridge numbers,
// gate times and customs reference.
func (h *OrderHandler) UpdateSiteInfo(c *gin.Context) {
	var payload SiteInfoPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := bson.M{
		"docNumber":   payload.DocNumber,
		"truckWeight": payload.TruckWeight,
		"cargoWeight": payload.CargoWeight,
		"gateIn":      payload.GateIn,
		"gateOut":     payload.GateOut,
		"ecdNumber":   payload.ECDNumber,
		"updatedAt":   time.Now(),
	}
	if err := h.Store.Update(context.Background(), "orders", c.Param("id"), patch); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update site info"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Site info updated"})
}

// GetAllOrders lists every shipment.
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := h.Store.List(context.Background(), "orders", &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query orders"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrdersView returns shipments grouped by scheduled date (newest
// first) or by status.
func (h *OrderHandler) GetOrdersView(c *gin.Context) {
	var orders []models.Order
	if err := h.Store.List(context.Background(), "orders", &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query orders"})
		return
	}

	groups := deriveGroups(
		fleetview.OrderRecords(orders),
		viewQuery(c),
		groupByParam(c, fleetview.GroupByDate),
		fleetview.OrderStatusOrder,
	)
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (h *OrderHandler) loadOrder(c *gin.Context) (models.Order, bool) {
	var order models.Order
	err := h.Store.Get(context.Background(), "orders", c.Param("id"), &order)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return models.Order{}, false
	}
	return order, true
}
