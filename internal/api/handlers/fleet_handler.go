package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/siriassis-creator/Sit-logistics-app/internal/fleetview"
	"github.com/siriassis-creator/Sit-logistics-app/internal/models"
	"github.com/siriassis-creator/Sit-logistics-app/internal/store"
)

type FleetHandler struct {
	Store store.Store
}

type VehiclePayload struct {
	Plate           string `json:"plate" binding:"required"`
	Type            string `json:"type"`
	Brand           string `json:"brand"`
	Model           string `json:"model"`
	Mileage         string `json:"mileage"`
	TaxExpiry       string `json:"taxExpiry"`
	InsuranceExpiry string `json:"insuranceExpiry"`
	Status          string `json:"status"`
	PhotoURL        string `json:"photoUrl"`
	Customer        string `json:"customer"`
}

// CreateVehicle registers a truck or trailer.
func (h *FleetHandler) CreateVehicle(c *gin.Context) {
	var payload VehiclePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := payload.Status
	if status == "" {
		status = models.VehicleAvailable
	}

	vehicle := models.Vehicle{
		Plate:           payload.Plate,
		Type:            payload.Type,
		Brand:           payload.Brand,
		Model:           payload.Model,
		Mileage:         payload.Mileage,
		TaxExpiry:       payload.TaxExpiry,
		InsuranceExpiry: payload.InsuranceExpiry,
		Status:          status,
		PhotoURL:        payload.PhotoURL,
		Customer:        payload.Customer,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	id, err := h.Store.Create(context.Background(), "fleet", vehicle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}
	vehicle.ID = id

	c.JSON(http.StatusCreated, vehicle)
}

// GetAllVehicles lists the fleet.
func (h *FleetHandler) GetAllVehicles(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := h.Store.List(context.Background(), "fleet", &vehicles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query fleet"})
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	c.JSON(http.StatusOK, vehicles)
}

// GetVehicle returns one vehicle by id.
func (h *FleetHandler) GetVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	err := h.Store.Get(context.Background(), "fleet", c.Param("id"), &vehicle)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vehicle"})
		}
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// UpdateVehicle overwrites the editable fields of a vehicle.
func (h *FleetHandler) UpdateVehicle(c *gin.Context) {
	var payload VehiclePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := bson.M{
		"plate":           payload.Plate,
		"type":            payload.Type,
		"brand":           payload.Brand,
		"model":           payload.Model,
		"mileage":         payload.Mileage,
		"taxExpiry":       payload.TaxExpiry,
		"insuranceExpiry": payload.InsuranceExpiry,
		"photoUrl":        payload.PhotoURL,
		"customer":        payload.Customer,
		"updatedAt":       time.Now(),
	}
	if payload.Status != "" {
		patch["status"] = payload.Status
	}

	if err := h.Store.Update(context.Background(), "fleet", c.Param("id"), patch); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle updated successfully"})
}

// DeleteVehicle removes a vehicle document.
func (h *FleetHandler) DeleteVehicle(c *gin.Context) {
	if err := h.Store.Delete(context.Background(), "fleet", c.Param("id")); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}

// GetFleetView returns the filtered, grouped fleet the dashboard renders.
func (h *FleetHandler) GetFleetView(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := h.Store.List(context.Background(), "fleet", &vehicles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query fleet"})
		return
	}

	groups := deriveGroups(
		fleetview.VehicleRecords(vehicles),
		viewQuery(c),
		groupByParam(c, fleetview.GroupByStatus),
		fleetview.VehicleStatusOrder,
	)
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}
