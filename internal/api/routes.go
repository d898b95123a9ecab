package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"mediscribe/internal/ai"
	"mediscribe/internal/capture"
	"mediscribe/internal/config"
	"mediscribe/internal/middleware"
	"mediscribe/internal/repository"
	"mediscribe/internal/service"
	"mediscribe/internal/utils"
)

// RegisterRoutes wires all handlers onto the router.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store *repository.Store, pipeline *ai.Pipeline, seeder *ai.SampleGenerator, sessions *capture.Manager) {
	patientSvc := service.NewPatientService(store.Patients)

	authHandler := NewAuthHandler(store.Users, cfg.JWTSecret,
		time.Duration(cfg.JWTExpirationMinutes)*time.Minute)
	patientHandler := NewPatientHandler(patientSvc, seeder)
	recordingHandler := NewRecordingHandler(sessions, pipeline, cfg.UploadDir)
	intakeHandler := NewIntakeHandler(pipeline)

	// Health check
	r.GET("/health", healthCheck)

	// API v1
	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}
	}

	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		private.GET("/auth/me", authHandler.Me)
		private.POST("/auth/logout", authHandler.Logout)

		private.GET("/patients", patientHandler.List)
		private.POST("/patients", patientHandler.Create)
		private.POST("/patients/seed", patientHandler.Seed)
		private.GET("/patients/:id", patientHandler.Get)
		private.PATCH("/patients/:id", patientHandler.Update)
		private.DELETE("/patients/:id", patientHandler.Delete)

		private.POST("/recordings", recordingHandler.Upload)
		private.GET("/recordings/:recording_id", recordingHandler.Get)
		private.POST("/recordings/:recording_id/transcribe", recordingHandler.Transcribe)
		private.GET("/recordings/:recording_id/draft", recordingHandler.GetDraft)

		private.POST("/intake/extract", intakeHandler.Extract)
	}
}

// healthCheck returns server health status
func healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "mediscribe-backend",
	})
}
