package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/noteduco342/rep-messaging/internal/auth"
	"github.com/noteduco342/rep-messaging/internal/cache"
	"github.com/noteduco342/rep-messaging/internal/config"
	"github.com/noteduco342/rep-messaging/internal/handlers"
	"github.com/noteduco342/rep-messaging/internal/handlers/ws"
	"github.com/noteduco342/rep-messaging/internal/logging"
	"github.com/noteduco342/rep-messaging/internal/notify"
	"github.com/noteduco342/rep-messaging/internal/repository"
	"github.com/noteduco342/rep-messaging/internal/service"
	"github.com/noteduco342/rep-messaging/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.OTelCollectorURL, log)
	if err != nil {
		log.Warn("telemetry disabled", "error", err)
	}

	db, err := repository.InitDB(cfg.Database.DSN(), log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		log.Warn("redis unavailable, running without shared cache", "error", err)
		redisCache = nil
	} else {
		log.Info("redis cache connected")
		defer redisCache.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	directRepo := repository.NewDirectMessageRepository(db)
	markerRepo := repository.NewReadMarkerRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	groupMessageRepo := repository.NewGroupMessageRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	inviteRepo := repository.NewTeamInviteRepository(db)

	// Caches
	historyCache := cache.NewGroupHistoryCache(redisCache)
	presenceCache := cache.NewPresenceCache(redisCache)
	inviteCache := cache.NewInviteCache(inviteRepo.ListPending, cfg.Invites.TTL, cfg.Invites.StaleAfter, log)

	// Realtime
	registry := ws.NewRegistry(conversationRepo, log,
		ws.WithPresence(presenceCache),
		ws.WithKeepalive(cfg.Socket.PingInterval, cfg.Socket.PongTimeout),
	)
	conversationService := service.NewConversationService(conversationRepo, userRepo, historyCache, registry, log)

	var pusher notify.Pusher = notify.NewLogPusher(log)
	if cfg.Push.Enabled() {
		fcmPusher, err := notify.NewFCMPusher(ctx, cfg.Push.FCMProjectID, cfg.Push.CredentialsFile, cfg.Push.RatePerSecond, cfg.Push.Burst)
		if err != nil {
			log.Warn("fcm unavailable, push notifications are logged only", "error", err)
		} else {
			pusher = fcmPusher
		}
	}
	dispatcher := notify.NewDispatcher(notify.NewUserDirectory(userRepo), registry, pusher, log,
		notify.WithPushTimeout(cfg.Push.Timeout),
		notify.WithWorkers(cfg.Dispatch.Workers),
		notify.WithQueueSize(cfg.Dispatch.QueueSize),
	)

	// Services
	locks := service.NewStreamLocks()
	readService := service.NewReadService(directRepo, markerRepo, conversationRepo, groupMessageRepo)
	messageService := service.NewMessageService(service.MessageServiceDeps{
		Users:         userRepo,
		Direct:        directRepo,
		Conversations: conversationRepo,
		GroupMessages: groupMessageRepo,
		Reads:         readService,
		History:       historyCache,
		Notifier:      dispatcher,
		Locks:         locks,
		Logger:        log,
		MaxLength:     cfg.MaxMessageLength,
	})
	blockService := service.NewBlockService(blockRepo, userRepo, locks)
	inviteService := service.NewInviteService(inviteRepo, userRepo, inviteCache, dispatcher, log)
	userService := service.NewUserService(userRepo)

	authenticator := auth.NewAuthenticator(cfg.JWTSecret)

	// Background workers
	go dispatcher.Run(ctx)
	go registry.Run(ctx)
	go inviteCache.Run(ctx, cfg.Invites.SweepEvery)

	app := fiber.New(fiber.Config{
		AppName:      "rep-messaging",
		BodyLimit:    1024 * 1024,
		ErrorHandler: errorHandler,
	})
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Supports-Gzip",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: cfg.AllowedOrigins != "" && cfg.AllowedOrigins != "*",
	}))

	registerRoutes(app, routes{
		allowedOrigins: cfg.AllowedOrigins,
		authenticator:  authenticator,
		messages:       handlers.NewMessageHandler(messageService, readService),
		groups:         handlers.NewGroupHandler(conversationService, messageService, readService),
		invites:        handlers.NewInviteHandler(inviteService),
		users:          handlers.NewUserHandler(userService, blockService),
		socket: handlers.NewWebSocketHandler(registry, authenticator, presenceCache, log, handlers.WebSocketConfig{
			AuthTimeout: cfg.Socket.AuthTimeout,
			SendBuffer:  cfg.Socket.SendBuffer,
			Debug:       cfg.Log.Level == "debug",
		}),
		registry: registry,
		presence: presenceCache,
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
		if shutdownTelemetry != nil {
			if err := shutdownTelemetry(shutdownCtx); err != nil {
				log.Warn("telemetry shutdown failed", "error", err)
			}
		}
	}()

	log.Info("server starting", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
