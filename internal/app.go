package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	cache_adapter "rentwise-portal-service/internal/adapters/cache"
	identity_adapter "rentwise-portal-service/internal/adapters/identity"
	logger_adapter "rentwise-portal-service/internal/adapters/logger"
	"rentwise-portal-service/internal/adapters/notifier"
	platform_client "rentwise-portal-service/internal/adapters/platform_client"
	rabbitmq_adapter "rentwise-portal-service/internal/adapters/rabbitmq"
	"rentwise-portal-service/internal/adapters/rest"
	"rentwise-portal-service/internal/configs"
	"rentwise-portal-service/internal/constants"
	"rentwise-portal-service/internal/contracts"
	"rentwise-portal-service/internal/core/port"
	"rentwise-portal-service/internal/core/usecase"
	"rentwise-portal-service/internal/validator"
	fluentlogger "rentwise-portal-service/pkg/fluent_logger"
	"rentwise-portal-service/pkg/rabbitmq/rabbitmq_common"
	"rentwise-portal-service/pkg/rabbitmq/rabbitmq_consumer"
	"rentwise-portal-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
)

const consumerRestartDelay = 5 * time.Second

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server

	notifier       *notifier.SSENotifier
	statusCache    *cache_adapter.FavoriteStatusCache
	sessionStore   *cache_adapter.ListingSessionStore
	carouselStore  *cache_adapter.CarouselStore
	connManager    *rabbitmq_common.ConnectionManager
	eventPublisher *rabbitmq_producer.Publisher
	applyChangeUC  *usecase.ApplyFavoriteChangeUseCase

	fluentClient *fluent.Fluent
	baseLogger   port.LoggerPort
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ЛОГГЕРЫ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
		"instance_id":  appConfig.InstanceID,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	if err := contracts.Load(); err != nil {
		appLogger.Error("Failed to compile event schemas", err, nil)
		return nil, fmt.Errorf("failed to compile event schemas: %w", err)
	}

	// --- 2. АДАПТЕРЫ ---
	platform := platform_client.NewClient(appConfig.Platform.URL, appConfig.Platform.Timeout)

	tokenParser, err := identity_adapter.NewTokenParser(appConfig.Auth.JWTSigningKey)
	if err != nil {
		return nil, err
	}

	statusCache := cache_adapter.NewFavoriteStatusCache(platform, appConfig.Cache.FavoriteCacheTTL)
	sessionStore := cache_adapter.NewListingSessionStore(appConfig.Cache.SessionTTL)
	carouselStore := cache_adapter.NewCarouselStore(appConfig.Cache.SessionTTL)
	sseNotifier := notifier.NewSSENotifier(baseLogger)

	app := &App{
		config:        appConfig,
		notifier:      sseNotifier,
		statusCache:   statusCache,
		sessionStore:  sessionStore,
		carouselStore: carouselStore,
		fluentClient:  fluentClient,
		baseLogger:    baseLogger,
		logger:        appLogger,
	}

	app.applyChangeUC = usecase.NewApplyFavoriteChangeUseCase(statusCache, sseNotifier)

	// --- 3. СОБЫТИЯ ИЗБРАННОГО ---
	var favoritePublisher port.FavoriteEventPublisherPort
	if appConfig.RabbitMQ.Enabled {
		rmqLogger := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_connection_manager"}))
		connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL}, rmqLogger)
		if err != nil {
			appLogger.Error("Failed to connect to RabbitMQ", err, nil)
			app.closeLocal()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		app.connManager = connManager

		producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			ExchangeName:             constants.ExchangePortalEvents,
			ExchangeType:             constants.ExchangeTypeTopic,
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_publisher"})),
		}, connManager)
		if err != nil {
			appLogger.Error("Failed to create RabbitMQ publisher", err, nil)
			connManager.Close()
			app.closeLocal()
			return nil, fmt.Errorf("failed to create RabbitMQ publisher: %w", err)
		}
		app.eventPublisher = producer

		favoritePublisher, err = rabbitmq_adapter.NewFavoriteEventPublisher(producer, appConfig.InstanceID)
		if err != nil {
			producer.Close()
			connManager.Close()
			app.closeLocal()
			return nil, err
		}
		appLogger.Info("Favorite events are distributed through RabbitMQ", port.Fields{"exchange": constants.ExchangePortalEvents})
	} else {
		favoritePublisher = rabbitmq_adapter.NewLocalFavoriteEventPublisher(app.applyChangeUC)
		appLogger.Warn("RabbitMQ disabled, favorite events stay within this instance", nil)
	}

	// --- 4. USE CASES ---
	toggleUC := usecase.NewToggleFavoriteUseCase(platform, statusCache, favoritePublisher)
	accountUC := usecase.NewGetAccountUseCase(platform, platform)

	handlers := rest.Handlers{
		Home: rest.NewHomeHandler(
			usecase.NewGetFeaturedListingsUseCase(platform),
			usecase.NewSearchPropertiesUseCase(platform),
		),
		Listing: rest.NewListingHandler(usecase.NewListingSessionUseCase(platform, sessionStore)),
		Property: rest.NewPropertyHandler(
			usecase.NewGetPropertyDetailUseCase(platform, platform, statusCache, carouselStore),
			usecase.NewCarouselUseCase(platform, carouselStore),
			usecase.NewGetPropertyImagesUseCase(platform),
			toggleUC,
			usecase.NewGetFavoriteStatusUseCase(statusCache),
			usecase.NewSubmitContactUseCase(platform, validator.New()),
		),
		Account: rest.NewAccountHandler(accountUC, usecase.NewUnsavePropertyUseCase(statusCache, toggleUC, accountUC)),
		Events:  rest.NewEventsHandler(sseNotifier),
	}

	app.apiServer = rest.NewServer(rest.ServerOptions{
		Port:              appConfig.Rest.PORT,
		AllowedOrigins:    appConfig.Rest.AllowedOrigins,
		ContactRatePerMin: appConfig.ContactRatePerMinute,
	}, handlers, tokenParser, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return app, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}

		cancelApp()
		wg.Wait()

		if a.eventPublisher != nil {
			if err := a.eventPublisher.Close(); err != nil {
				a.logger.Error("Error closing RabbitMQ publisher", err, nil)
			}
		}
		if a.connManager != nil {
			if err := a.connManager.Close(); err != nil {
				a.logger.Error("Error closing RabbitMQ connection", err, nil)
			}
		}
		a.closeLocal()

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	if a.connManager != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.runFavoriteConsumer(appCtx)
		}()
	}

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-serverErrors:
		a.logger.Error("Server failed to start, shutting down", err, nil)
		return err
	}
}

// runFavoriteConsumer держит потребителя событий избранного запущенным.
// После потери соединения потребитель пересоздается: его канал уже закрыт.
func (a *App) runFavoriteConsumer(ctx context.Context) {
	consumerLogger := a.baseLogger.WithFields(port.Fields{"component": "FavoriteChangesConsumer"})

	cfg := rabbitmq_consumer.ConsumerConfig{
		Config:                 rabbitmq_common.Config{URL: a.config.RabbitMQ.URL},
		QueueName:              constants.QueuePrefixFavoriteChanges + a.config.InstanceID,
		DeclareQueue:           true,
		ExclusiveQueue:         true,
		AutoDeleteQueue:        true,
		ExchangeNameForBind:    constants.ExchangePortalEvents,
		DeclareExchangeForBind: true,
		ExchangeTypeForBind:    constants.ExchangeTypeTopic,
		DurableExchangeForBind: true,
		RoutingKeyForBind:      constants.RoutingKeyFavoriteChanged,
		PrefetchCount:          constants.FavoriteChangesPrefetch,
		ConsumerTag:            a.config.AppName + "-" + a.config.InstanceID,
	}

	for {
		consumer, err := rabbitmq_adapter.NewFavoriteChangesConsumerAdapter(cfg, a.applyChangeUC, consumerLogger, a.connManager)
		if err != nil {
			consumerLogger.Error("Failed to create favorite changes consumer", err, nil)
		} else {
			consumerLogger.Info("Favorite changes consumer started", port.Fields{"queue": cfg.QueueName})
			err = consumer.Start(ctx)
			if closeErr := consumer.Close(); closeErr != nil {
				consumerLogger.Warn("Error closing favorite changes consumer", port.Fields{"error": closeErr.Error()})
			}
			if err == nil {
				return
			}
			consumerLogger.Error("Favorite changes consumer stopped", err, nil)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(consumerRestartDelay):
		}
	}
}

// closeLocal освобождает то, что не зависит от брокера.
func (a *App) closeLocal() {
	a.notifier.Close()
	a.statusCache.Stop()
	a.sessionStore.Stop()
	a.carouselStore.Stop()
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
