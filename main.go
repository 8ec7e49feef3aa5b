package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Yogesh-SS7/AibotforPCOD/api"
	"github.com/Yogesh-SS7/AibotforPCOD/config"
	"github.com/Yogesh-SS7/AibotforPCOD/database"
	"github.com/Yogesh-SS7/AibotforPCOD/middleware"
	"github.com/Yogesh-SS7/AibotforPCOD/repository"
	"github.com/Yogesh-SS7/AibotforPCOD/services"
)

func main() {
	// Load application configuration
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("FATAL: [Main] Failed to load configuration: %v", err)
	}
	cfg := config.AppConfig

	if err := config.InitLogger(cfg.Log); err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize logger: %v", err)
	}
	defer func() { _ = zap.L().Sync() }()
	zap.L().Info("[Main] Configuration loaded", zap.String("config_file", config.ConfigFileUsed))

	// Initialize database connection
	db, err := database.Init(cfg.Database)
	if err != nil {
		zap.L().Fatal("[Main] Failed to initialize database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zap.L().Fatal("[Main] Failed to migrate database", zap.Error(err))
	}

	// Initialize Repositories
	profileRepo := repository.NewProfileRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	chatRepo := repository.NewChatRepository(db)
	questionSource := repository.NewQuestionSource(cfg.Questionnaire.Path, cfg.Questionnaire.Format, cfg.Questionnaire.Sheet)
	contentSource := repository.NewContentSource(cfg.Content.PrakritiPath, cfg.Content.YogaPath, cfg.Content.RemediesPath)
	zap.L().Info("[Main] Repositories initialized.")

	// Initialize Services
	catalogLoader := services.NewCatalogLoader(questionSource)
	assessmentService := services.NewAssessmentService(assessmentRepo, catalogLoader)
	profileService := services.NewProfileService(profileRepo)
	chatService := services.NewChatService(cfg.LLM, chatRepo)
	wellnessService := services.NewWellnessService(contentSource)
	contextAssembler := services.NewContextAssembler(profileRepo, assessmentRepo)
	zap.L().Info("[Main] Services initialized.")

	apiHandler := api.NewAPIHandler(assessmentService, profileService, chatService, wellnessService, contextAssembler)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.SetTrustedProxies(nil)

	// Register middlewares
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Cors(cfg.CORS))

	apiHandler.RegisterRoutes(r)
	zap.L().Info("[Main] Routes registered.")

	serverPort := ":" + cfg.Server.Port
	if cfg.Server.Port == "" {
		zap.L().Warn("[Main] Server port not configured, using default :8080.")
		serverPort = ":8080"
	}
	zap.L().Info("[Main] Starting server", zap.String("addr", serverPort))
	if err := r.Run(serverPort); err != nil {
		zap.L().Fatal("[Main] Server failed to start", zap.Error(err))
	}
}
