package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/config"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/logger"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/services/media"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/services/sweeper"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/storage/postgres"
)

func main() {
	cfg := config.MustLoad()
	logger.Init(cfg.Env)

	storage, err := postgres.NewPostgres(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer storage.Close()

	mediaService, err := media.NewService(cfg)
	if err != nil {
		log.Fatal("Failed to initialize media service:", err)
	}
	slog.Info("Connected to MinIO", slog.String("bucket", cfg.MinIO.BucketName))

	worker := sweeper.New(mediaService, storage, cfg.Sweeper)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("Received shutdown signal")
		cancel()
	}()

	worker.Start(ctx)

	slog.Info("Media sweeper stopped")
}
