package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/cache"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/config"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/events"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/http/handlers/admin"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/http/handlers/public"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/http/middleware"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/http/router"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/logger"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/mail"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/ratelimit"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/services/auth"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/services/content"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/services/media"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/storage/postgres"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/websocket"
)

// @title						Umer Films API
// @version					1.0
// @description				Portfolio content service: public read API and admin panel API.
// @BasePath					/api
// @securityDefinitions.apikey	SessionCookie
// @in							cookie
// @name						umerfilms_session
func main() {
	cfg := config.MustLoad()
	logger.Init(cfg.Env)

	storage, err := postgres.NewPostgres(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer storage.Close()
	slog.Info("Connected to Postgres database")

	mediaService, err := media.NewService(cfg)
	if err != nil {
		log.Fatal("Failed to initialize media service:", err)
	}
	slog.Info("Connected to MinIO", slog.String("bucket", cfg.MinIO.BucketName))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	opts := content.Options{
		Blobs:             mediaService,
		Publisher:         events.NewEventPublisher(hub),
		AtomicVideoWrites: cfg.Content.AtomicVideoWrites,
		PortraitFallback:  cfg.Site.PortraitFallback,
	}

	extras := map[string]router.Pinger{"media": mediaService}

	var (
		redisCache     *cache.Cache
		cacheAdmin     admin.CacheAdmin
		loginLimiter   middleware.Limiter
		contactLimiter middleware.Limiter
	)

	if cfg.Redis.Disabled {
		slog.Warn("Redis disabled: no public cache and no rate limiting")
	} else {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to initialize redis:", err)
		}
		defer redisClient.Close()
		slog.Info("Connected to Redis", slog.String("addr", cfg.Redis.Addr))

		redisCache = cache.New(redisClient, cfg.Redis.CacheTTL)
		cacheAdmin = redisCache
		opts.Cache = redisCache
		extras["redis"] = redisCache

		loginLimiter = ratelimit.NewTokenBucket(redisClient, cfg.RateLimit.Login, cfg.RateLimit.Login)
		contactLimiter = ratelimit.NewTokenBucket(redisClient, cfg.RateLimit.Contact, cfg.RateLimit.Contact)
	}

	contentService := content.NewService(storage, opts)

	var reader cache.Source = contentService
	if redisCache != nil {
		reader = cache.NewPublicReader(contentService, redisCache)
	}

	gate := auth.NewGate(cfg.Admin.Email)
	sessions := auth.NewSessions(storage, cfg.Session)
	if err := sessions.SeedAdmin(ctx, cfg.Admin.Email, cfg.Admin.InitialPassword); err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}

	cookies := middleware.Cookies{
		Name:   cfg.Session.CookieName,
		Secure: !cfg.Session.InsecureCookie,
	}

	handler := router.New(router.Config{
		Admin: admin.NewHandlers(admin.Deps{
			Gate:     gate,
			Content:  contentService,
			Uploads:  mediaService,
			Cache:    cacheAdmin,
			Sessions: sessions,
			Cookies:  cookies,
			Hub:      hub,
		}),
		Public:         public.NewHandlers(reader, mail.NewContact(cfg.SMTP)),
		Gate:           gate,
		Sessions:       sessions,
		Cookies:        cookies,
		RateLimit:      middleware.NewRateLimit(cfg.HTTPServer.TrustProxyHeaders),
		LoginLimiter:   loginLimiter,
		ContactLimiter: contactLimiter,
		AllowedOrigins: cfg.HTTPServer.AllowedOrigins,
		AdminDir:       cfg.Site.AdminDir,
		Storage:        storage,
		Extras:         extras,
	})

	server := http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	slog.Info("Server started", slog.String("address", cfg.HTTPServer.Address))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %s", err)
		}
	}()

	<-done

	slog.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
		return
	}

	cancel()
	slog.Info("Server stopped")
}
