package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/siriassis-creator/Sit-logistics-app/config"
	"github.com/siriassis-creator/Sit-logistics-app/internal/api/handlers"
	"github.com/siriassis-creator/Sit-logistics-app/internal/api/middleware"
	"github.com/siriassis-creator/Sit-logistics-app/internal/auth"
	"github.com/siriassis-creator/Sit-logistics-app/internal/notify"
	"github.com/siriassis-creator/Sit-logistics-app/internal/saga"
	"github.com/siriassis-creator/Sit-logistics-app/internal/socket"
	"github.com/siriassis-creator/Sit-logistics-app/internal/store"
)

// SetupRouter wires the handlers to the API surface.
func SetupRouter(
	cfg config.Config,
	st store.Store,
	issuer *auth.TokenIssuer,
	transitions *saga.Transitions,
	notifier *notify.Notifier,
	wsHub *socket.Hub,
	log *zap.Logger,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.CORSAllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	authHandler := &handlers.AuthHandler{Issuer: issuer, Store: st}
	fleetHandler := &handlers.FleetHandler{Store: st}
	driverHandler := &handlers.DriverHandler{Store: st}
	courseHandler := &handlers.CourseHandler{Store: st}
	maintenanceHandler := &handlers.MaintenanceHandler{Store: st, Transitions: transitions}
	orderHandler := &handlers.OrderHandler{Store: st, Transitions: transitions, Notifier: notifier}
	dashboardHandler := &handlers.DashboardHandler{Store: st}
	seedHandler := &handlers.SeedHandler{Store: st}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, Store: st, Issuer: issuer, Log: log}

	apiV1 := router.Group("/api/v1")
	{
		// The websocket handshake carries its token in the query string.
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/anonymous", authHandler.AnonymousLogin)
		}

		protected := apiV1.Group("/")
		protected.Use(middleware.Authenticate(issuer))
		{
			admin := protected.Group("/admin")
			{
				admin.POST("/seed", seedHandler.SeedDemoData)
			}

			fleet := protected.Group("/fleet")
			{
				fleet.POST("/", fleetHandler.CreateVehicle)
				fleet.GET("/", fleetHandler.GetAllVehicles)
				fleet.GET("/view", fleetHandler.GetFleetView)
				fleet.GET("/:id", fleetHandler.GetVehicle)
				fleet.PUT("/:id", fleetHandler.UpdateVehicle)
				fleet.DELETE("/:id", fleetHandler.DeleteVehicle)
			}

			drivers := protected.Group("/drivers")
			{
				drivers.POST("/", driverHandler.CreateDriver)
				drivers.GET("/", driverHandler.GetAllDrivers)
				drivers.GET("/view", driverHandler.GetDriversView)
				drivers.GET("/:id", driverHandler.GetDriver)
				drivers.PUT("/:id", driverHandler.UpdateDriver)
				drivers.DELETE("/:id", driverHandler.DeleteDriver)
			}

			courses := protected.Group("/courses")
			{
				courses.POST("/", courseHandler.CreateCourse)
				courses.GET("/", courseHandler.GetAllCourses)
				courses.DELETE("/:id", courseHandler.DeleteCourse)
			}

			maintenance := protected.Group("/maintenance")
			{
				maintenance.POST("/", maintenanceHandler.CreateTicket)
				maintenance.GET("/", maintenanceHandler.GetAllTickets)
				maintenance.GET("/view", maintenanceHandler.GetMaintenanceView)
				maintenance.POST("/:id/approve", maintenanceHandler.ApproveTicket)
				maintenance.POST("/:id/complete", maintenanceHandler.CompleteTicket)
				maintenance.POST("/:id/reject", maintenanceHandler.RejectTicket)
			}

			orders := protected.Group("/orders")
			{
				orders.POST("/", orderHandler.CreateOrder)
				orders.GET("/", orderHandler.GetAllOrders)
				orders.GET("/view", orderHandler.GetOrdersView)
				orders.POST("/dispatch", orderHandler.DispatchOrders)
				orders.PUT("/:id", orderHandler.UpdateOrder)
				orders.POST("/:id/assign", orderHandler.AssignDriver)
				orders.POST("/:id/start", orderHandler.StartOrder)
				orders.POST("/:id/complete", orderHandler.CompleteOrder)
				orders.POST("/:id/cancel", orderHandler.CancelOrder)
				orders.PUT("/:id/site", orderHandler.UpdateSiteInfo)
			}

			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/summary", dashboardHandler.GetSummary)
			}

			reports := protected.Group("/reports")
			{
				reports.GET("/fleet-utilization", dashboardHandler.GetFleetUtilization)
				reports.GET("/completed-orders", dashboardHandler.GetCompletedOrders)
			}
		}
	}

	return router
}
