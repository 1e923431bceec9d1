package main

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"conversational-bi-backend/config"
	_ "conversational-bi-backend/docs" // generated by swag
	"conversational-bi-backend/internal/controller"
	"conversational-bi-backend/internal/database"
	"conversational-bi-backend/internal/elasticsearch"
	"conversational-bi-backend/internal/filestate"
	"conversational-bi-backend/internal/insight"
	"conversational-bi-backend/internal/intent"
	"conversational-bi-backend/internal/kafka"
	"conversational-bi-backend/internal/parser"
	"conversational-bi-backend/internal/postgres"
	"conversational-bi-backend/internal/query"
	"conversational-bi-backend/internal/scheduler"
	"conversational-bi-backend/internal/service"
)

// @title           Conversational BI API
// @version         1.0
// @description     Answers free-text analytic questions over the customer-conversation dataset. Each question is classified into an intent, compiled into an aggregate query, executed against Postgres, shaped for presentation and summarized as an insight sentence.

// @contact.name   API Support Team
// @contact.url    http://www.example.com/support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @schemes   http https

// @tag.name         ask
// @tag.description  Question answering pipeline

// @tag.name         dataset
// @tag.description  Dataset-level statistics

// @tag.name         audit
// @tag.description  Ask audit log search

func main() {
	var wg sync.WaitGroup

	app := fx.New(
		// Core Dependencies
		fx.Provide(
			NewConfig,
		),
		// Infrastructure Dependencies
		fx.Provide(
			database.NewDB,
			database.NewGormRecordStore,
			NewGinEngine,
			postgres.ProvidePostgresPool,
			postgres.NewPostgresConversationRepository,
			elasticsearch.NewElasticAskAuditStore,
			elasticsearch.NewElasticsearchAuditRepository,
			intent.NewKeywordClassifier,
			query.NewTemplateCompiler,
			insight.NewTemplateNarrator,
			service.NewAskService,
			service.NewDatasetQueryService,
			service.NewAuditQueryService,
			service.NewIngestProducerService,
			service.NewIngestConsumerService,
			controller.NewAskController,
			controller.NewDatasetController,
			controller.NewAuditController,
			NewFileStateManager,
			parser.NewCSVRecordParser,
			kafka.NewKafkaRecordProducer,
			kafka.NewKafkaRecordConsumer,
		),
		fx.Invoke(RegisterAPIRoutes,
			RegisterScheduler,
			func(lc fx.Lifecycle, consumerService service.IngestConsumerService) { // Invoker to start consumer
				startRecordConsumer(lc, &wg, consumerService)
			},
		),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second) // Timeout for startup
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}
	<-app.Done()

	// Initiate shutdown
	stopCtx, cancelStop := context.WithTimeout(context.Background(), 30*time.Second) // Timeout for graceful shutdown
	defer cancelStop()
	log.Info().Msg("Shutting down application...")
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown due to error or timeout")
	}

	// Wait for background goroutines (like the consumer) to finish
	log.Info().Msg("Waiting for background goroutines to finish...")
	wg.Wait()
	log.Info().Msg("All background processes finished. Exiting.")
}

func NewConfig() (*config.Config, error) {
	return config.NewConfig()
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Add your frontend URLs
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func RegisterAPIRoutes(
	lifecycle fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	askController *controller.AskController,
	datasetController *controller.DatasetController,
	auditController *controller.AuditController,
) {
	if askController != nil {
		controller.RegisterAskRoutes(router, askController)
	} else {
		log.Warn().Msg("AskController not provided, skipping ask API routes.")
	}

	if datasetController != nil {
		controller.RegisterDatasetRoutes(router, datasetController)
	} else {
		log.Warn().Msg("DatasetController not provided")
	}
	if auditController != nil {
		controller.RegisterAuditRoutes(router, auditController)
	} else {
		log.Warn().Msg("AuditController not provided")
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Starting HTTP server on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error().Err(err).Msg("HTTP server ListenAndServe error")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Shutting down HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}

// --- Factory Functions ---

func NewFileStateManager(cfg *config.Config) filestate.Manager {
	return filestate.NewManager(cfg.FileState.FilePath)
}

// --- Invoker Functions ---

func RegisterScheduler(lc fx.Lifecycle, cfg *config.Config, ingestSvc service.IngestProducerService) {
	scheduler.NewScheduler(lc, cfg, ingestSvc)
}

// startRecordConsumer starts the IngestConsumerService in a goroutine managed by fx lifecycle
func startRecordConsumer(lc fx.Lifecycle, wg *sync.WaitGroup, consumerService service.IngestConsumerService) {
	wg.Add(1)
	ctx, cancel := context.WithCancel(context.Background()) // Create cancellable context

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info().Msg("Starting record consumer goroutine")
			go consumerService.Run(ctx, wg) // Run in goroutine with cancellable context
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			log.Info().Msg("Signaling record consumer goroutine to stop...")
			cancel()   // Cancel the context to signal the consumer loop to exit
			return nil // Return immediately, main WaitGroup handles the actual wait
		},
	})
}
