package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"mediscribe/internal/ai"
	"mediscribe/internal/api"
	"mediscribe/internal/capture"
	"mediscribe/internal/config"
	"mediscribe/internal/repository"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" && cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := repository.CreateStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	pipeline := ai.CreatePipeline(cfg)
	if !pipeline.Available() {
		log.Println("Warning: no extraction providers configured, intake drafts will be empty")
	}

	var seeder *ai.SampleGenerator
	if cfg.GroqAPIKey != "" {
		seeder = ai.NewSampleGenerator(cfg.GroqAPIKey, cfg.GroqBaseURL)
	} else {
		log.Println("GROQ_API_KEY not set, sample patient seeding disabled")
	}

	sessions := capture.NewManager(func(id, text string, err error) {
		if err != nil {
			log.Printf("[Capture] recording %s failed: %v", id, err)
			return
		}
		log.Printf("[Capture] recording %s transcribed (%d chars)", id, len(text))
	})

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Origin},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.RegisterRoutes(r, cfg, store, pipeline, seeder, sessions)

	log.Printf("MediScribe backend running on :%s (store: %s)", cfg.Port, cfg.StoreBackend)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
