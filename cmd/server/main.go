package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mugangish/shelter-backend/internal/cache"
	"github.com/mugangish/shelter-backend/internal/config"
	"github.com/mugangish/shelter-backend/internal/db"
	"github.com/mugangish/shelter-backend/internal/geo"
	httpHandlers "github.com/mugangish/shelter-backend/internal/http/handlers"
	httpRouter "github.com/mugangish/shelter-backend/internal/http/router"
	"github.com/mugangish/shelter-backend/internal/logger"
	"github.com/mugangish/shelter-backend/internal/mail"
	"github.com/mugangish/shelter-backend/internal/repository"
	"github.com/mugangish/shelter-backend/internal/service"
	"github.com/mugangish/shelter-backend/internal/storage"
	"github.com/mugangish/shelter-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Кэш опубликованных убежищ. Redis не обязателен: при недоступности
	// поиск работает напрямую через базу.
	shelterCache, err := cache.NewShelterCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Log.WithError(err).Warn("main: redis недоступен, поиск работает без кэша")
		shelterCache = nil
	} else {
		defer shelterCache.Close()
	}

	// Инициализируем вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	fileStorage, err := storage.NewFileStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	geocoder := geo.NewGeocoder(cfg.GeocoderBaseURL, cfg.GeocoderAPIKey)

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	shelterRepo := repository.NewShelterRepository(dbConn)
	orgRepo := repository.NewOrganizationRepository(dbConn)
	branchRepo := repository.NewBranchRepository(dbConn)
	verificationRepo := repository.NewVerificationRepository(dbConn)
	reviewModerationRepo := repository.NewReviewModerationRepository(dbConn)
	reportModerationRepo := repository.NewReportModerationRepository(dbConn)
	shelterReviewRepo := repository.NewShelterReviewRepository(dbConn)
	mediaRepo := repository.NewMediaRepository(dbConn)

	// Вебсокеты консоли модерации.
	hub := ws.NewHub()
	go hub.Run()

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager)
	shelterService := service.NewShelterService(
		shelterRepo, userRepo, orgRepo, branchRepo,
		cacheOrNoop(shelterCache), mailer, hub, cfg.AdminNotify,
	)
	searchService := service.NewSearchService(shelterRepo, searchCache(shelterCache), geocoder)
	orgService := service.NewOrganizationService(orgRepo, userRepo)
	branchService := service.NewBranchService(branchRepo, orgRepo)
	reviewService := service.NewReviewService(reviewModerationRepo, shelterReviewRepo, shelterRepo, hub)
	reportService := service.NewReportService(reportModerationRepo, shelterReviewRepo, shelterRepo, hub)
	verificationService := service.NewVerificationService(verificationRepo, userRepo, hub)
	moderationService := service.NewModerationService(
		shelterRepo, verificationRepo, reviewModerationRepo, reportModerationRepo,
		shelterReviewRepo, userRepo, cacheOrNoop(shelterCache), mailer,
	)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	profileHandler := httpHandlers.NewProfileHandler(authService)
	shelterHandler := httpHandlers.NewShelterHandler(shelterService)
	searchHandler := httpHandlers.NewSearchHandler(searchService)
	orgHandler := httpHandlers.NewOrganizationHandler(orgService)
	branchHandler := httpHandlers.NewBranchHandler(branchService)
	reviewHandler := httpHandlers.NewReviewHandler(reviewService)
	reportHandler := httpHandlers.NewReportHandler(reportService)
	verificationHandler := httpHandlers.NewVerificationHandler(verificationService)
	moderationHandler := httpHandlers.NewModerationHandler(moderationService)
	mediaHandler := httpHandlers.NewMediaHandler(mediaRepo, fileStorage)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn, shelterCache)

	// Роутер.
	engine := httpRouter.SetupRouter(
		cfg,
		authHandler,
		profileHandler,
		shelterHandler,
		searchHandler,
		orgHandler,
		branchHandler,
		reviewHandler,
		reportHandler,
		verificationHandler,
		moderationHandler,
		mediaHandler,
		wsHandler,
		healthHandler,
		tokenManager,
	)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}

// noopCache используется, когда Redis недоступен.
type noopCache struct{}

func (noopCache) Invalidate(context.Context) {}

// cacheOrNoop возвращает инвалидатор кэша, безопасный при отсутствии Redis.
func cacheOrNoop(c *cache.ShelterCache) service.CacheInvalidator {
	if c == nil {
		return noopCache{}
	}
	return c
}

// searchCache возвращает кэш поиска, либо nil при отсутствии Redis.
func searchCache(c *cache.ShelterCache) service.ShelterCache {
	if c == nil {
		return nil
	}
	return c
}
