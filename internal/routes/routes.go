package routes

import (
	"time"

	"carwash-app-server/internal/cache"
	"carwash-app-server/internal/config"
	"carwash-app-server/internal/handlers"
	"carwash-app-server/internal/middleware"
	"carwash-app-server/internal/scheduling"
	"carwash-app-server/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Lifetime of cached list responses.
const listCacheTTL = 30 * time.Second

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Stores and shared services
	appointments := store.NewAppointments(db)
	vehicles := store.NewVehicles(db)
	evaluations := store.NewEvaluations(db)
	lists := cache.NewLists(listCacheTTL)
	scheduler := scheduling.NewScheduler(appointments, vehicles,
		cfg.Scheduling.OffsetDays, cfg.Scheduling.DefaultTime, cfg.Scheduling.DefaultService)

	// Handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(appointments, vehicles, lists)
	vehicleHandler := handlers.NewVehicleHandler(vehicles, scheduler)
	scheduleHandler := handlers.NewScheduleHandler(scheduler, lists)
	evaluationHandler := handlers.NewEvaluationHandler(appointments, evaluations, lists)
	reportHandler := handlers.NewReportHandler(evaluations)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.GET("/search", appointmentHandler.SearchAppointments)
			appointmentRoutes.GET("/occupied", appointmentHandler.GetOccupiedSlots)
			appointmentRoutes.GET("/availability", appointmentHandler.CheckAvailability)
			appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
		}

		vehicleRoutes := private.Group("/vehicles")
		{
			vehicleRoutes.GET("", vehicleHandler.GetVehicles)
			vehicleRoutes.GET("/recurrent", vehicleHandler.GetRecurrentVehicles)
			vehicleRoutes.DELETE("/:id", vehicleHandler.DeleteVehicle)
		}

		scheduleRoutes := private.Group("/schedule")
		{
			scheduleRoutes.POST("/recurrent", scheduleHandler.ScheduleRecurrent)
			scheduleRoutes.GET("/reference-date", scheduleHandler.GetReferenceDateVehicles)
			scheduleRoutes.POST("/from-date", scheduleHandler.ScheduleFromDate)
		}

		evaluationRoutes := private.Group("/evaluations")
		{
			evaluationRoutes.GET("/pending", evaluationHandler.GetPendingAppointments)
			evaluationRoutes.POST("", evaluationHandler.RecordEvaluation)
			evaluationRoutes.GET("", evaluationHandler.GetEvaluations)
			evaluationRoutes.GET("/export", evaluationHandler.ExportEvaluations)
			evaluationRoutes.DELETE("", evaluationHandler.DeleteAllEvaluations)
			evaluationRoutes.DELETE("/before/:date", evaluationHandler.DeleteEvaluationsBefore)
		}

		reportRoutes := private.Group("/reports")
		{
			reportRoutes.GET("/evaluations/pdf", reportHandler.ExportEvaluationsPDF)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
