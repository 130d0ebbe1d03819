package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kim254ke/Chat-App-Server/internal/config"
	"github.com/kim254ke/Chat-App-Server/internal/handler"
	"github.com/kim254ke/Chat-App-Server/internal/history"
	"github.com/kim254ke/Chat-App-Server/internal/hub"
	"github.com/kim254ke/Chat-App-Server/internal/presence"
	"github.com/kim254ke/Chat-App-Server/internal/rooms"
	"github.com/kim254ke/Chat-App-Server/internal/service"
	"github.com/kim254ke/Chat-App-Server/internal/store"
	"github.com/kim254ke/Chat-App-Server/internal/typing"
	"github.com/kim254ke/Chat-App-Server/pkg/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log.Init(cfg.Log)
	logger := log.L()
	logger.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("starting chat server")

	// Durable mirror is optional; without it chat runs memory-only.
	mirror := store.NewNoopStore()
	if cfg.Mirror.Enabled {
		mirror, err = store.NewRedisStore(cfg.Mirror)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect message mirror")
		}
		logger.Info().Str("address", cfg.Mirror.Address).Msg("message mirror connected")
	}
	defer mirror.Close()

	wsHub := hub.NewHub()
	go wsHub.Run()

	registry := presence.NewRegistry(cfg.Chat.DefaultRoom)
	directory := rooms.NewDirectory(cfg.Chat.Rooms)
	tracker := typing.NewTracker(registry)
	messages := history.NewLog(cfg.Chat.HistoryLimit)

	chatSvc := service.NewChatService(
		wsHub,
		registry,
		directory,
		tracker,
		messages,
		mirror,
		cfg.Chat.MaxMessageLength,
		cfg.Mirror.FetchLimit,
	)

	wsHandler := handler.NewWSHandler(wsHub, chatSvc, cfg.WebSocket)
	httpHandler := handler.NewHTTPHandler(registry, directory, messages, mirror, cfg.Mirror.FetchLimit)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(log.GinMiddleware(*logger), gin.Recovery())
	httpHandler.RegisterRoutes(router, wsHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down chat server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}

	logger.Info().Msg("chat server stopped")
}
