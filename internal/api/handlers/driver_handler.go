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

// Employee codes: SIT-000001, SIT-000002, ...
const (
	empIDPrefix = "SIT-"
	empIDWidth  = 6
)

type DriverHandler struct {
	Store store.Store
}

type DriverPayload struct {
	Name          string   `json:"name" binding:"required"`
	IDCard        string   `json:"idCard"`
	BirthDate     string   `json:"birthDate"`
	IDCardExpiry  string   `json:"idCardExpiry"`
	LicenseNumber string   `json:"licenseNumber"`
	LicenseType   string   `json:"licenseType"`
	LicenseExpiry string   `json:"licenseExpiry"`
	Phone         string   `json:"phone"`
	LineID        string   `json:"lineId"`
	StartDate     string   `json:"startDate"`
	Status        string   `json:"status"`
	Training      []string `json:"training"`
	PhotoURL      string   `json:"photoUrl"`
}

// CreateDriver registers an employee with the next sequential empId.
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var payload DriverPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing []models.Driver
	if err := h.Store.List(context.Background(), "drivers", &existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query drivers"})
		return
	}
	codes := make([]string, len(existing))
	for i, d := range existing {
		codes[i] = d.EmpID
	}

	status := payload.Status
	if status == "" {
		status = models.DriverActive
	}

	driver := models.Driver{
		EmpID:         fleetview.NextCode(codes, empIDPrefix, empIDWidth),
		Name:          payload.Name,
		IDCard:        payload.IDCard,
		BirthDate:     payload.BirthDate,
		IDCardExpiry:  payload.IDCardExpiry,
		LicenseNumber: payload.LicenseNumber,
		LicenseType:   payload.LicenseType,
		LicenseExpiry: payload.LicenseExpiry,
		Phone:         payload.Phone,
		LineID:        payload.LineID,
		StartDate:     payload.StartDate,
		Status:        status,
		Training:      payload.Training,
		PhotoURL:      payload.PhotoURL,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	id, err := h.Store.Create(context.Background(), "drivers", driver)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create driver"})
		return
	}
	driver.ID = id

	c.JSON(http.StatusCreated, driver)
}

// GetAllDrivers lists every driver.
func (h *DriverHandler) GetAllDrivers(c *gin.Context) {
	var drivers []models.Driver
	if err := h.Store.List(context.Background(), "drivers", &drivers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query drivers"})
		return
	}
	if drivers == nil {
		drivers = []models.Driver{}
	}
	c.JSON(http.StatusOK, drivers)
}

// GetDriver returns one driver by id.
func (h *DriverHandler) GetDriver(c *gin.Context) {
	var driver models.Driver
	err := h.Store.Get(context.Background(), "drivers", c.Param("id"), &driver)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve driver"})
		}
		return
	}
	c.JSON(http.StatusOK, driver)
}

// UpdateDriver overwrites the editable fields; empId never changes.
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	var payload DriverPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := bson.M{
		"name":          payload.Name,
		"idCard":        payload.IDCard,
		"birthDate":     payload.BirthDate,
		"idCardExpiry":  payload.IDCardExpiry,
		"licenseNumber": payload.LicenseNumber,
		"licenseType":   payload.LicenseType,
		"licenseExpiry": payload.LicenseExpiry,
		"phone":         payload.Phone,
		"lineId":        payload.LineID,
		"startDate":     payload.StartDate,
		"training":      payload.Training,
		"photoUrl":      payload.PhotoURL,
		"updatedAt":     time.Now(),
	}
	if payload.Status != "" {
		patch["status"] = payload.Status
	}

	if err := h.Store.Update(context.Background(), "drivers", c.Param("id"), patch); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver updated successfully"})
}

// DeleteDriver removes a driver document.
func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	if err := h.Store.Delete(context.Background(), "drivers", c.Param("id")); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete driver"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted successfully"})
}

// GetDriversView returns the filtered, grouped employee list.
func (h *DriverHandler) GetDriversView(c *gin.Context) {
	var drivers []models.Driver
	if err := h.Store.List(context.Background(), "drivers", &drivers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query drivers"})
		return
	}

	groups := deriveGroups(
		fleetview.DriverRecords(drivers),
		viewQuery(c),
		groupByParam(c, fleetview.GroupByStatus),
		fleetview.DriverStatusOrder,
	)
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}
