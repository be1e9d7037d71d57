package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/warungio/stockpilot/internal/alert"
	"github.com/warungio/stockpilot/internal/assistant"
	assistanthttp "github.com/warungio/stockpilot/internal/assistant/delivery/http"
	"github.com/warungio/stockpilot/internal/assistant/llm"
	"github.com/warungio/stockpilot/internal/assistant/memory"
	"github.com/warungio/stockpilot/internal/assistant/tool"
	forecastclient "github.com/warungio/stockpilot/internal/forecast/client"
	forecasthttp "github.com/warungio/stockpilot/internal/forecast/delivery/http"
	forecastrepo "github.com/warungio/stockpilot/internal/forecast/repository"
	forecastquery "github.com/warungio/stockpilot/internal/forecast/usecase/query"
	goodshttp "github.com/warungio/stockpilot/internal/goods/delivery/http"
	goodsrepo "github.com/warungio/stockpilot/internal/goods/repository"
	goodscommand "github.com/warungio/stockpilot/internal/goods/usecase/command"
	goodsquery "github.com/warungio/stockpilot/internal/goods/usecase/query"
	reporthttp "github.com/warungio/stockpilot/internal/report/delivery/http"
	reportrepo "github.com/warungio/stockpilot/internal/report/repository"
	reportquery "github.com/warungio/stockpilot/internal/report/usecase/query"
	saleshttp "github.com/warungio/stockpilot/internal/sales/delivery/http"
	salesrepo "github.com/warungio/stockpilot/internal/sales/repository"
	salescommand "github.com/warungio/stockpilot/internal/sales/usecase/command"
	salesquery "github.com/warungio/stockpilot/internal/sales/usecase/query"
	"github.com/warungio/stockpilot/internal/server"
	userhttp "github.com/warungio/stockpilot/internal/user/delivery/http"
	userrepo "github.com/warungio/stockpilot/internal/user/repository"
	"github.com/warungio/stockpilot/kafka"
	"github.com/warungio/stockpilot/pkg/config"
	"github.com/warungio/stockpilot/pkg/database"
	"github.com/warungio/stockpilot/pkg/logger"
	"github.com/warungio/stockpilot/pkg/tracing"
)

type appConfig struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"stockpilot"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	HTTPPort    string `envconfig:"HTTP_PORT" default:"8080"`

	JaegerEndpoint string `envconfig:"JAEGER_ENDPOINT" default:"http://localhost:14268/api/traces"`

	KafkaEnabled  bool     `envconfig:"KAFKA_ENABLED" default:"false"`
	KafkaBrokers  []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaGroupID  string   `envconfig:"KAFKA_GROUP_ID" default:"stockpilot-alerts"`
	RedisAddr     string   `envconfig:"REDIS_ADDR" default:""`
	ChatRateLimit int      `envconfig:"CHAT_RATE_LIMIT" default:"20"`

	LowStockThreshold int `envconfig:"LOW_STOCK_THRESHOLD" default:"5"`

	OpenAIModel string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
}

func main() {
	cfg := config.MustLoad[appConfig]("")
	dbCfg := config.MustLoad[database.Config]("DB")
	forecasterCfg := config.MustLoad[forecastclient.Config]("")

	logger.Init(cfg.ServiceName, cfg.Environment == "development")
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Msg("Starting service")

	// Tracing
	tp, err := tracing.InitTracer(cfg.ServiceName, cfg.JaegerEndpoint)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shut down tracer")
		}
	}()

	// Database
	db, err := database.NewGormConnection(*dbCfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Repositories
	goodsRepository := goodsrepo.NewTracingGoodsRepository(db)
	if err := goodsRepository.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to migrate goods table")
	}
	salesRepository := salesrepo.NewTracingSalesRepository(db)
	if err := salesRepository.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to migrate sales table")
	}
	userRepository, err := userrepo.NewGormUserRepository(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to migrate users table")
	}
	tracedUserRepository := userrepo.NewTracingUserRepository(userRepository)
	forecastRepository, err := forecastrepo.NewGormForecastRepository(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to migrate restock_inferences table")
	}
	reportRepository := reportrepo.NewTracingReportRepository(reportrepo.NewGormReportRepository(db))

	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka (optional)
	var publisher salescommand.SaleEventPublisher
	var consumer *kafka.Consumer
	if cfg.KafkaEnabled {
		kafkaPublisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher

		consumer, err = kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, []string{kafka.TopicSaleRecorded})
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
		}
		defer consumer.Close()

		watcher := alert.NewLowStockWatcher(goodsRepository, cfg.LowStockThreshold)
		consumer.RegisterHandler(kafka.EventTypeSaleRecorded, watcher.HandleSaleRecorded)

		consumerCtx, cancelConsumer := context.WithCancel(context.Background())
		defer cancelConsumer()
		if err := consumer.Start(consumerCtx); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
		}
	}

	// Forecast
	forecaster := forecastclient.NewHTTPForecaster(*forecasterCfg)
	getForecastHandler := forecastquery.NewGetForecastHandler(goodsRepository, forecastRepository, forecaster)

	// Assistant
	registry := tool.NewRegistry()
	registry.Register(tool.NewListGoodsTool(goodsquery.NewListGoodsHandler(goodsRepository)))
	registry.Register(tool.NewGetGoodsDetailTool(goodsquery.NewGetGoodsHandler(goodsRepository)))
	registry.Register(tool.NewAddGoodsTool(goodscommand.NewCreateGoodsHandler(goodsRepository)))
	registry.Register(tool.NewUpdateGoodsTool(goodscommand.NewUpdateGoodsHandler(goodsRepository)))
	registry.Register(tool.NewDeleteGoodsTool(goodscommand.NewDeleteGoodsHandler(goodsRepository)))
	registry.Register(tool.NewListSalesTool(salesquery.NewListSalesHandler(salesRepository)))
	registry.Register(tool.NewGetSalesDetailTool(salesquery.NewGetSaleHandler(salesRepository)))
	registry.Register(tool.NewRecordSaleTool(salescommand.NewRecordSaleHandler(salesRepository, publisher)))
	registry.Register(tool.NewUpdateSaleTool(salescommand.NewUpdateSaleHandler(salesRepository)))
	registry.Register(tool.NewDeleteSaleTool(salescommand.NewDeleteSaleHandler(salesRepository)))
	registry.Register(tool.NewGetForecastTool(getForecastHandler, reportquery.NewLowStockHandler(reportRepository)))

	completer := llm.NewOpenAICompleter(func(o *llm.Options) {
		o.Model = cfg.OpenAIModel
	})
	agent := assistant.NewAgent(completer, registry, memory.NewStore())

	// Rate limiting for the chat endpoint (optional, needs Redis)
	var chatRateLimiter *server.RateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		chatRateLimiter = server.NewRateLimiter(redisClient, cfg.ChatRateLimit, time.Minute)
	}

	handler := server.NewRouter(server.Handlers{
		User:            userhttp.NewUserHandler(tracedUserRepository),
		Goods:           goodshttp.NewGoodsHandler(goodsRepository),
		Sales:           saleshttp.NewSalesHandler(salesRepository, publisher),
		Report:          reporthttp.NewReportHandler(reportRepository),
		Forecast:        forecasthttp.NewForecastHandler(getForecastHandler),
		Chat:            assistanthttp.NewChatHandler(agent),
		ChatRateLimiter: chatRateLimiter,
	}, sqlDB)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info().Str("port", cfg.HTTPPort).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}

	logger.Logger.Info().Msg("Server stopped")
}
