package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fleet-mileage-monitor/internal/config"
	"fleet-mileage-monitor/internal/infrastructure/database/postgres"
	"fleet-mileage-monitor/internal/infrastructure/ecuatracker"
	"fleet-mileage-monitor/internal/infrastructure/events"
	"fleet-mileage-monitor/internal/logger"
	"fleet-mileage-monitor/internal/observability"
	"fleet-mileage-monitor/internal/routes"
	"fleet-mileage-monitor/pkg/mqtt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
	)

	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		logger.Fatal("Database configuration is missing. Please set DB_HOST and DB_NAME environment variables.")
	}
	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT secret is missing. Please set JWT_SECRET environment variable.")
	}

	metrics := observability.Default()

	provider, err := ecuatracker.NewClient(ecuatracker.Config{
		BaseURL:     cfg.Provider.BaseURL,
		UserAPIHash: cfg.Provider.UserAPIHash,
		Timeout:     cfg.Provider.Timeout,
		ReportType:  cfg.Provider.ReportType,
		Lang:        cfg.Provider.Lang,
	}, metrics)
	if err != nil {
		logger.Fatal("Failed to configure tracking provider", zap.Error(err))
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	deps := routes.Dependencies{DB: db, Provider: provider, Metrics: metrics}

	if cfg.MQTT.Enabled() {
		mqttClient := mqtt.NewClient(&mqtt.Config{
			Broker:               cfg.MQTT.Broker,
			ClientID:             cfg.MQTT.ClientID,
			Username:             cfg.MQTT.Username,
			Password:             cfg.MQTT.Password,
			CleanSession:         true,
			KeepAlive:            30,
			ConnectTimeout:       10,
			AutoReconnect:        true,
			MaxReconnectInterval: time.Minute,
		})
		if err := mqttClient.Connect(); err != nil {
			logger.Warn("MQTT unavailable, threshold updates stay local", zap.Error(err))
		} else {
			defer mqttClient.Disconnect()
			deps.Broadcaster = events.NewThresholdBroadcaster(mqttClient, cfg.MQTT.ThresholdTopic)
		}
	}

	router := routes.SetupRoutes(cfg, deps)

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	// Monthly reports over many chunks can take minutes.
	writeTimeout := 5 * time.Minute
	if d := cfg.Provider.Timeout * 8; d > writeTimeout {
		writeTimeout = d
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("Server exited properly")
}
