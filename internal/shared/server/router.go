package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"admissions-backend/internal/catalog"
	"admissions-backend/internal/llm"
	openai "admissions-backend/internal/llm/openai"
	"admissions-backend/internal/profiles"
	"admissions-backend/internal/recommendations"
	"admissions-backend/internal/shared/config"
	"admissions-backend/internal/shared/metrics"
	"admissions-backend/internal/shared/server/middleware"
	"admissions-backend/internal/shared/server/respond"
	"admissions-backend/internal/shared/storage/db"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var profileRepo profiles.Repo
	var catalogRepo catalog.Repo
	var recRepo recommendations.Repo
	if sqlDB != nil {
		profileRepo = &profiles.PGRepo{DB: sqlDB}
		catalogRepo = &catalog.PGRepo{DB: sqlDB}
		recRepo = &recommendations.PGRepo{DB: sqlDB}
	} else {
		profileRepo = profiles.NewMemoryRepo()
		catalogRepo = catalog.NewMemoryRepo()
		recRepo = recommendations.NewMemoryRepo()
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if cfg.LLMProvider == "openai" {
		client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel, cfg.LLMModelFast)
		if err != nil {
			log.Printf("openai client unavailable, agents will fail soft: %v", err)
		} else {
			llmClient = client
		}
	}

	profileSvc := &profiles.Service{Repo: profileRepo}
	agents := []recommendations.Agent{
		&recommendations.SchoolAgent{LLM: llmClient, Catalog: catalogRepo},
		&recommendations.ProgramAgent{LLM: llmClient, Catalog: catalogRepo},
	}
	recSvc := recommendations.NewService(profileSvc, recRepo, agents,
		&recommendations.ConsolidationAgent{LLM: llmClient})

	profileHandler := profiles.NewHandler(profileRepo)
	recHandler := recommendations.NewHandler(recSvc)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	authed := api.Group("")
	authed.Use(middleware.Identity())
	profileHandler.RegisterRoutes(authed)
	recHandler.RegisterRoutes(authed)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
