package api

import (
	"net/http"
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/config"
	"github.com/guibitar/fit-flow-control-sub001/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services bundles everything SetupRoutes needs to wire the handlers.
type Services struct {
	Auth     service.AuthService
	Client   service.ClientService
	Training service.TrainingService
	Schedule service.ScheduleService
	Finance  service.FinanceService
	Progress service.ProgressService
	Exercise service.ExerciseService
	Message  service.MessageService
}

// SetupRoutes registers every route on the engine. Everything under
// /api/v1 except login requires a valid bearer token; the exercise-library
// write surface and user administration additionally require admin.
func SetupRoutes(router *gin.Engine, cfg config.ServerConfig, svcs Services) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := NewAuthHandler(svcs.Auth)
	clientHandler := NewClientHandler(svcs.Client)
	trainingHandler := NewTrainingHandler(svcs.Training)
	classHandler := NewClassHandler(svcs.Schedule)
	txHandler := NewTransactionHandler(svcs.Finance)
	progressHandler := NewProgressHandler(svcs.Progress)
	exerciseHandler := NewExerciseHandler(svcs.Exercise)
	messageHandler := NewMessageHandler(svcs.Message)

	authMiddleware := AuthMiddleware(svcs.Auth)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})

	apiV1 := router.Group("/api/v1")

	apiV1.POST("/auth/login", authHandler.Login)

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Auth & profile ---
		protected.GET("/auth/verify", authHandler.Verify)
		protected.POST("/auth/logout", authHandler.Logout)
		protected.PUT("/auth/me", authHandler.UpdateProfile)

		// --- Clients ---
		clients := protected.Group("/clients")
		{
			clients.GET("", clientHandler.List)
			clients.POST("", clientHandler.Create)
			clients.POST("/filter", clientHandler.Filter)
			clients.GET("/:id", clientHandler.Get)
			clients.PUT("/:id", clientHandler.Update)
			clients.DELETE("/:id", clientHandler.Delete)
			clients.GET("/:id/balance", clientHandler.Balance)
		}

		// --- Workout plans ---
		workouts := protected.Group("/workouts")
		{
			workouts.GET("", trainingHandler.ListPlans)
			workouts.POST("", trainingHandler.CreatePlan)
			workouts.POST("/filter", trainingHandler.FilterPlans)
			workouts.GET("/:id", trainingHandler.GetPlan)
			workouts.PUT("/:id", trainingHandler.UpdatePlan)
			workouts.DELETE("/:id", trainingHandler.DeletePlan)
		}

		// --- Workout history ---
		history := protected.Group("/workout-history")
		{
			history.GET("", trainingHandler.ListHistory)
			history.POST("", trainingHandler.CreateHistory)
			history.POST("/filter", trainingHandler.FilterHistory)
			history.GET("/:id", trainingHandler.GetHistory)
			history.PUT("/:id", trainingHandler.UpdateHistory)
			history.DELETE("/:id", trainingHandler.DeleteHistory)
		}

		// --- Scheduled classes ---
		classes := protected.Group("/classes")
		{
			classes.GET("", classHandler.List)
			classes.POST("", classHandler.Create)
			classes.POST("/filter", classHandler.Filter)
			classes.GET("/:id", classHandler.Get)
			classes.PUT("/:id", classHandler.Update)
			classes.DELETE("/:id", classHandler.Delete)
			classes.POST("/:id/roster", classHandler.Enroll)
			classes.DELETE("/:id/roster/:clientId", classHandler.Unenroll)
			classes.POST("/:id/checkin/:clientId", classHandler.CheckIn)
			classes.PUT("/:id/status", classHandler.SetStatus)
			classes.POST("/:id/cancel", classHandler.Cancel)
		}

		// --- Transactions ---
		transactions := protected.Group("/transactions")
		{
			transactions.GET("", txHandler.List)
			transactions.POST("", txHandler.Create)
			transactions.POST("/filter", txHandler.Filter)
			transactions.GET("/:id", txHandler.Get)
			transactions.PUT("/:id", txHandler.Update)
			transactions.DELETE("/:id", txHandler.Delete)
		}

		// --- Assessments ---
		assessments := protected.Group("/assessments")
		{
			assessments.GET("", progressHandler.ListAssessments)
			assessments.POST("", progressHandler.CreateAssessment)
			assessments.POST("/filter", progressHandler.FilterAssessments)
			assessments.GET("/:id", progressHandler.GetAssessment)
			assessments.PUT("/:id", progressHandler.UpdateAssessment)
			assessments.DELETE("/:id", progressHandler.DeleteAssessment)
		}

		// --- Progress entries ---
		progress := protected.Group("/progress")
		{
			progress.GET("", progressHandler.ListProgress)
			progress.POST("", progressHandler.CreateProgress)
			progress.POST("/filter", progressHandler.FilterProgress)
			progress.GET("/:id", progressHandler.GetProgress)
			progress.PUT("/:id", progressHandler.UpdateProgress)
			progress.DELETE("/:id", progressHandler.DeleteProgress)
		}

		// --- Exercise library: shared reads, admin writes ---
		exercises := protected.Group("/exercise-library")
		{
			exercises.GET("", exerciseHandler.List)
			exercises.POST("/filter", exerciseHandler.Filter)
			exercises.GET("/:id", exerciseHandler.Get)
			exercises.GET("/:id/media", exerciseHandler.MediaDownloadURL)

			admin := exercises.Group("")
			admin.Use(RequireAdmin())
			{
				admin.POST("", exerciseHandler.Create)
				admin.PUT("/:id", exerciseHandler.Update)
				admin.DELETE("/:id", exerciseHandler.Delete)
				admin.POST("/:id/media", exerciseHandler.RequestMediaUpload)
			}
		}

		// --- Messages ---
		messages := protected.Group("/messages")
		{
			messages.GET("", messageHandler.List)
			messages.POST("", messageHandler.Send)
			messages.POST("/filter", messageHandler.Filter)
			messages.GET("/:id", messageHandler.Get)
			messages.PUT("/:id", messageHandler.Update)
			messages.PUT("/:id/read", messageHandler.MarkRead)
			messages.DELETE("/:id", messageHandler.Delete)
		}

		// --- User administration (admin only) ---
		users := protected.Group("/auth/users")
		users.Use(RequireAdmin())
		{
			users.GET("", authHandler.ListUsers)
			users.POST("", authHandler.CreateUser)
			users.PUT("/:id", authHandler.UpdateUser)
		}
	}
}
