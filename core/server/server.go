package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"go-assistant-api/core/config"
	"go-assistant-api/core/constants"
	"go-assistant-api/core/logger"
	"go-assistant-api/core/persistence"
	assistantService "go-assistant-api/modules/assistant/service"
	"go-assistant-api/modules/auth"
	"go-assistant-api/modules/calendar"
	calendarService "go-assistant-api/modules/calendar/service"
	"go-assistant-api/modules/notification"
	"go-assistant-api/modules/task"
)

// Run boots the HTTP server and, when a redis broker is configured, the
// background reminder worker. It blocks until SIGINT/SIGTERM and then shuts
// both down gracefully.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.App.Env)
	defer logger.Sync()

	store, err := persistence.New(cfg)
	if err != nil {
		return fmt.Errorf("init persistence: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RequestID())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Reminder delivery rides on asynq; without a redis broker the reminder
	// client stays nil and scheduling is a no-op.
	var (
		asynqClient    *asynq.Client
		asynqInspector *asynq.Inspector
		asynqWorker    *asynq.Server
		asynqMux       *asynq.ServeMux
	)
	if cfg.Redis.Addr != "" {
		redisOpt := asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		asynqClient = asynq.NewClient(redisOpt)
		defer asynqClient.Close()
		asynqInspector = asynq.NewInspector(redisOpt)
		defer asynqInspector.Close()
		asynqWorker = asynq.NewServer(redisOpt, asynq.Config{Concurrency: 5})
		asynqMux = asynq.NewServeMux()
	}

	var textGen calendarService.TextGenerator
	if cfg.Gemini.APIKey != "" {
		textGen = assistantService.NewGeminiService(cfg.Gemini)
	}

	// Module wiring
	auth.Init(e)
	taskSvc := task.Init(e, store)
	reminderSvc := notification.Init(e, store, asynqClient, asynqInspector, asynqMux)
	calendar.Init(e, store, textGen, reminderSvc, taskSvc)

	if asynqWorker != nil {
		go func() {
			if err := asynqWorker.Run(asynqMux); err != nil {
				logger.Error("Server:AsynqWorker:Error", "error", err)
			}
		}()
	}

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		logger.Info("Server:Start", "addr", addr, "env", cfg.App.Env)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start:Error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server:Shutdown:Begin")
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	ctx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownWait)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	logger.Info("Server:Shutdown:Complete")
	return nil
}
