package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siriassis-creator/Sit-logistics-app/internal/models"
	"github.com/siriassis-creator/Sit-logistics-app/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func fleetRouter(mem *store.Memory) *gin.Engine {
	h := &FleetHandler{Store: mem}
	router := gin.New()
	router.POST("/fleet", h.CreateVehicle)
	router.GET("/fleet", h.GetAllVehicles)
	router.GET("/fleet/view", h.GetFleetView)
	router.GET("/fleet/:id", h.GetVehicle)
	router.PUT("/fleet/:id", h.UpdateVehicle)
	router.DELETE("/fleet/:id", h.DeleteVehicle)
	return router
}

func TestCreateVehicleDefaultsToAvailable(t *testing.T) {
	mem := store.NewMemory()
	router := fleetRouter(mem)

	w := performJSON(t, router, http.MethodPost, "/fleet", gin.H{
		"plate": "70-1234",
		"brand": "HINO",
		"type":  "หัวลาก 10 ล้อ",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Vehicle
	decodeBody(t, w, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.VehicleAvailable, created.Status)

	var stored models.Vehicle
	require.NoError(t, mem.Get(context.Background(), "fleet", created.ID, &stored))
	assert.Equal(t, "70-1234", stored.Plate)
}

func TestCreateVehicleRequiresPlate(t *testing.T) {
	router := fleetRouter(store.NewMemory())

	w := performJSON(t, router, http.MethodPost, "/fleet", gin.H{"brand": "HINO"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAllVehiclesEmptyIsArray(t *testing.T) {
	router := fleetRouter(store.NewMemory())

	w := performJSON(t, router, http.MethodGet, "/fleet", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestGetVehicleNotFound(t *testing.T) {
	router := fleetRouter(store.NewMemory())

	w := performJSON(t, router, http.MethodGet, "/fleet/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateVehiclePatchesFields(t *testing.T) {
	mem := store.NewMemory()
	router := fleetRouter(mem)

	id, err := mem.Create(context.Background(), "fleet",
		models.Vehicle{Plate: "70-1234", Status: models.VehicleAvailable})
	require.NoError(t, err)

	w := performJSON(t, router, http.MethodPut, "/fleet/"+id, gin.H{
		"plate":    "70-1234",
		"mileage":  "120000",
		"customer": "SCG",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Vehicle
	require.NoError(t, mem.Get(context.Background(), "fleet", id, &stored))
	assert.Equal(t, "120000", stored.Mileage)
	// blank status in the payload must not wipe the stored status
	assert.Equal(t, models.VehicleAvailable, stored.Status)
}

func TestDeleteVehicle(t *testing.T) {
	mem := store.NewMemory()
	router := fleetRouter(mem)

	id, err := mem.Create(context.Background(), "fleet", models.Vehicle{Plate: "70-1234"})
	require.NoError(t, err)

	w := performJSON(t, router, http.MethodDelete, "/fleet/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var v models.Vehicle
	assert.ErrorIs(t, mem.Get(context.Background(), "fleet", id, &v), store.ErrNotFound)
}

func TestGetFleetViewGroupsAndFilters(t *testing.T) {
	mem := store.NewMemory()
	router := fleetRouter(mem)
	ctx := context.Background()

	for _, v := range []models.Vehicle{
		{Plate: "70-1234", Brand: "HINO", Status: models.VehicleAvailable},
		{Plate: "71-5678", Brand: "PANUS", Status: models.VehicleInTransit},
		{Plate: "72-9012", Brand: "HINO", Status: models.VehicleInactive},
	} {
		_, err := mem.Create(ctx, "fleet", v)
		require.NoError(t, err)
	}

	w := performJSON(t, router, http.MethodGet, "/fleet/view", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Groups []struct {
			Key      string            `json:"key"`
			Expanded bool              `json:"expanded"`
			Records  []json.RawMessage `json:"records"`
		} `json:"groups"`
	}
	decodeBody(t, w, &resp)
	require.Len(t, resp.Groups, 3)
	assert.Equal(t, models.VehicleAvailable, resp.Groups[0].Key)
	assert.True(t, resp.Groups[0].Expanded)
	assert.Equal(t, models.VehicleInactive, resp.Groups[2].Key)
	assert.False(t, resp.Groups[2].Expanded)

	w = performJSON(t, router, http.MethodGet, "/fleet/view?search=panus", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, models.VehicleInTransit, resp.Groups[0].Key)

	w = performJSON(t, router, http.MethodGet, "/fleet/view?status="+models.VehicleInactive, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	require.Len(t, resp.Groups, 1)
	require.Len(t, resp.Groups[0].Records, 1)
}
