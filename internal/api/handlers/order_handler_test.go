package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/siriassis-creator/Sit-logistics-app/internal/models"
	"github.com/siriassis-creator/Sit-logistics-app/internal/notify"
	"github.com/siriassis-creator/Sit-logistics-app/internal/saga"
	"github.com/siriassis-creator/Sit-logistics-app/internal/store"
)

func orderRouter(mem *store.Memory, notifier *notify.Notifier) *gin.Engine {
	if notifier == nil {
		notifier = notify.New("", zap.NewNop())
	}
	h := &OrderHandler{
		Store:       mem,
		Transitions: &saga.Transitions{Store: mem, Runner: saga.NewRunner(zap.NewNop())},
		Notifier:    notifier,
	}
	router := gin.New()
	router.POST("/orders", h.CreateOrder)
	router.GET("/orders", h.GetAllOrders)
	router.GET("/orders/view", h.GetOrdersView)
	router.POST("/orders/dispatch", h.DispatchOrders)
	router.PUT("/orders/:id", h.UpdateOrder)
	router.POST("/orders/:id/assign", h.AssignDriver)
	router.POST("/orders/:id/start", h.StartOrder)
	router.POST("/orders/:id/complete", h.CompleteOrder)
	router.POST("/orders/:id/cancel", h.CancelOrder)
	router.PUT("/orders/:id/site", h.UpdateSiteInfo)
	return router
}

func seedDriver(t *testing.T, mem *store.Memory, status string) models.Driver {
	t.Helper()
	driver := models.Driver{
		EmpID:  "SIT-000001",
		Name:   "สมชาย ใจดี",
		LineID: "U1234567890",
		Status: status,
	}
	id, err := mem.Create(context.Background(), "drivers", driver)
	require.NoError(t, err)
	driver.ID = id
	return driver
}

func TestCreateOrderSnapshotsPlates(t *testing.T) {
	mem := store.NewMemory()
	router := orderRouter(mem, nil)

	truckID, err := mem.Create(context.Background(), "fleet",
		models.Vehicle{Plate: "70-1234", Status: models.VehicleAvailable})
	require.NoError(t, err)
	trailerID, err := mem.Create(context.Background(), "fleet",
		models.Vehicle{Plate: "71-5678", Status: models.VehicleAvailable})
	require.NoError(t, err)

	w := performJSON(t, router, http.MethodPost, "/orders", gin.H{
		"date":        "2024-06-20",
		"origin":      "ลาดกระบัง",
		"destination": "แหลมฉบัง",
		"customer":    "SCG",
		"truckId":     truckID,
		"trailerId":   trailerID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	decodeBody(t, w, &order)
	assert.Equal(t, "JOB-0001", order.JobID)
	assert.Equal(t, models.OrderDraft, order.Status)
	assert.Equal(t, "70-1234", order.TruckPlate)
	assert.Equal(t, "71-5678", order.TrailerPlate)
}

func TestCreateOrderRejectsUnknownTruck(t *testing.T) {
	router := orderRouter(store.NewMemory(), nil)

	w := performJSON(t, router, http.MethodPost, "/orders", gin.H{
		"date":        "2024-06-20",
		"origin":      "a",
		"destination": "b",
		"truckId":     "missing",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssignDriverDenormalizes(t *testing.T) {
	mem := store.NewMemory()
	router := orderRouter(mem, nil)
	driver := seedDriver(t, mem, models.DriverActive)

	orderID, err := mem.Create(context.Background(), "orders",
		models.Order{JobID: "JOB-0001", Status: models.OrderDraft})
	require.NoError(t, err)

	w := performJSON(t, router, http.MethodPost, "/orders/"+orderID+"/assign",
		gin.H{"driverId": driver.ID})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Order
	require.NoError(t, mem.Get(context.Background(), "orders", orderID, &stored))
	assert.Equal(t, driver.ID, stored.DriverID)
	assert.Equal(t, "สมชาย ใจดี", stored.DriverName)
	assert.Equal(t, "U1234567890", stored.DriverLineID)
}

func TestAssignDriverRejectsInactive(t *testing.T) {
	mem := store.NewMemory()
	router := orderRouter(mem, nil)
	driver := seedDriver(t, mem, models.DriverInactive)

	orderID, err := mem.Create(context.Background(), "orders",
		models.Order{Status: models.OrderDraft})
	require.NoError(t, err)

	w := performJSON(t, router, http.MethodPost, "/orders/"+orderID+"/assign",
		gin.H{"driverId": driver.ID})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDispatchOrdersNotifiesDriverAndSkipsUnready(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	received := make(chan notify.JobNotification, 1)
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var n notify.JobNotification
		_ = json.NewDecoder(r.Body).Decode(&n)
		received <- n
		w.WriteHeader(http.StatusOK)
	}))
	defer webhook.Close()

	router := orderRouter(mem, notify.New(webhook.URL, zap.NewNop()))

	truckID, err := mem.Create(ctx, "fleet",
		models.Vehicle{Plate: "70-1234", Status: models.VehicleAvailable})
	require.NoError(t, err)
	driver := seedDriver(t, mem, models.DriverActive)

	readyID, err := mem.Create(ctx, "orders", models.Order{
		JobID:        "JOB-0001",
		Status:       models.OrderDraft,
		TruckID:      truckID,
		DriverID:     driver.ID,
		DriverLineID: driver.LineID,
	})
	require.NoError(t, err)
	driverlessID, err := mem.Create(ctx, "orders", models.Order{
		JobID:  "JOB-0002",
		Status: models.OrderDraft,
	})
	require.NoError(t, err)

	w := performJSON(t, router, http.MethodPost, "/orders/dispatch", gin.H{
		"orderIds": []string{readyID, driverlessID, "missing"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Dispatched []string `json:"dispatched"`
		Skipped    []string `json:"skipped"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, []string{readyID}, resp.Dispatched)
	assert.ElementsMatch(t, []string{driverlessID, "missing"}, resp.Skipped)

	var order models.Order
	require.NoError(t, mem.Get(ctx, "orders", readyID, &order))
	assert.Equal(t, models.OrderAwaiting, order.Status)

	var truck models.Vehicle
	require.NoError(t, mem.Get(ctx, "fleet", truckID, &truck))
	assert.Equal(t, models.VehicleInTransit, truck.Status)

	select {
	case n := <-received:
		assert.Equal(t, "new_job", n.Event)
		assert.Equal(t, readyID, n.OrderID)
		assert.Equal(t, driver.ID, n.DriverID)
		assert.Equal(t, driver.LineID, n.LineID)
	case <-time.After(2 * time.Second):
		t.Fatal("driver webhook was never called")
	}
}

func TestOrderLifecycleReleasesTruckOnComplete(t *testing.T) {
	mem := store.NewMemory()
	router := orderRouter(mem, nil)
	ctx := context.Background()

	truckID, err := mem.Create(ctx, "fleet",
		models.Vehicle{Plate: "70-1234", Status: models.VehicleInTransit})
	require.NoError(t, err)
	orderID, err := mem.Create(ctx, "orders", models.Order{
		JobID:   "JOB-0001",
		Status:  models.OrderAwaiting,
		TruckID: truckID,
	})
	require.NoError(t, err)

	w := performJSON(t, router, http.MethodPost, "/orders/"+orderID+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	require.NoError(t, mem.Get(ctx, "orders", orderID, &order))
	assert.Equal(t, models.OrderInTransit, order.Status)

	w = performJSON(t, router, http.MethodPost, "/orders/"+orderID+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, mem.Get(ctx, "orders", orderID, &order))
	assert.Equal(t, models.OrderCompleted, order.Status)
	assert.NotEmpty(t, order.CompletedDate)

	var truck models.Vehicle
	require.NoError(t, mem.Get(ctx, "fleet", truckID, &truck))
	assert.Equal(t, models.VehicleAvailable, truck.Status)

	// completed is terminal
	w = performJSON(t, router, http.MethodPost, "/orders/"+orderID+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStartOrderRequiresDispatch(t *testing.T) {
	mem := store.NewMemory()
	router := orderRouter(mem, nil)

	orderID, err := mem.Create(context.Background(), "orders",
		models.Order{Status: models.OrderDraft})
	require.NoError(t, err)

	w := performJSON(t, router, http.MethodPost, "/orders/"+orderID+"/start", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCancelDraftOrder(t *testing.T) {
	mem := store.NewMemory()
	router := orderRouter(mem, nil)

	orderID, err := mem.Create(context.Background(), "orders",
		models.Order{Status: models.OrderDraft})
	require.NoError(t, err)

	w := performJSON(t, router, http.MethodPost, "/orders/"+orderID+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	require.NoError(t, mem.Get(context.Background(), "orders", orderID, &order))
	assert.Equal(t, models.OrderCancelled, order.Status)
}

func TestUpdateOrderOnlyWhileDraft(t *testing.T) {
	mem := store.NewMemory()
	router := orderRouter(mem, nil)

	orderID, err := mem.Create(context.Background(), "orders", models.Order{
		Status: models.OrderInTransit, Date: "2024-06-20",
	})
	require.NoError(t, err)

	w := performJSON(t, router, http.MethodPut, "/orders/"+orderID, gin.H{
		"date":        "2024-06-21",
		"origin":      "a",
		"destination": "b",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateSiteInfo(t *testing.T) {
	mem := store.NewMemory()
	router := orderRouter(mem, nil)

	orderID, err := mem.Create(context.Background(), "orders",
		models.Order{Status: models.OrderInTransit})
	require.NoError(t, err)

	w := performJSON(t, router, http.MethodPut, "/orders/"+orderID+"/site", gin.H{
		"docNumber":   "DOC-555",
		"truckWeight": "15000",
		"cargoWeight": "28000",
		"gateIn":      "08:30",
		"gateOut":     "11:45",
		"ecdNumber":   "ECD-99",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	require.NoError(t, mem.Get(context.Background(), "orders", orderID, &order))
	assert.Equal(t, "DOC-555", order.DocNumber)
	assert.Equal(t, "11:45", order.GateOut)
	assert.Equal(t, "ECD-99", order.ECDNumber)
}

func TestGetOrdersViewGroupsByDate(t *testing.T) {
	mem := store.NewMemory()
	router := orderRouter(mem, nil)
	ctx := context.Background()

	for _, o := range []models.Order{
		{JobID: "JOB-0001", Date: "2024-06-10", Status: models.OrderDraft},
		{JobID: "JOB-0002", Date: "2024-06-12", Status: models.OrderDraft},
		{JobID: "JOB-0003", Status: models.OrderDraft},
	} {
		_, err := mem.Create(ctx, "orders", o)
		require.NoError(t, err)
	}

	w := performJSON(t, router, http.MethodGet, "/orders/view", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Groups []struct {
			Key string `json:"key"`
		} `json:"groups"`
	}
	decodeBody(t, w, &resp)
	require.Len(t, resp.Groups, 3)
	assert.Equal(t, "2024-06-12", resp.Groups[0].Key)
	assert.Equal(t, "2024-06-10", resp.Groups[1].Key)
	assert.Equal(t, "Other", resp.Groups[2].Key)
}
