package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "iot_backend/docs"
	"iot_backend/internal/config"
	"iot_backend/internal/handlers"
	"iot_backend/internal/influx"
	"iot_backend/internal/logger"
	"iot_backend/internal/mqtt"
	"iot_backend/internal/relay"
	"iot_backend/internal/repository"
	"iot_backend/internal/repository/db"
	"iot_backend/internal/server"
	"iot_backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title                       IoT device backend
// @version                     1.0
// @description                 Device registration, relay control and telemetry ingestion.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.Log.Level)

	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}

	topo, err := relay.NewTopology(cfg.Relay.Count)
	if err != nil {
		log.Fatalw("invalid relay topology", "err", err)
	}

	deps := service.Deps{
		Machine:    relay.NewMachine(topo),
		Log:        log,
		SigningKey: cfg.Auth.SigningKey,
		TokenTTL:   cfg.Auth.TokenTTL,
	}

	mq := connectMQTT(cfg.MQTT, log)
	if mq != nil {
		deps.Publisher = mq
	}
	ts := connectInflux(cfg.Influx, log)
	if ts != nil {
		deps.Sink = ts
	}

	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, deps)
	apiHandler := handlers.NewHandler(services, log)

	srv := server.New(cfg.HTTP)
	runHTTPServer(srv, cfg.Port, apiHandler, log)
	log.Infow("server_started", "port", cfg.Port, "relay_count", topo.RelayCount)

	waitForShutdown(srv, log)
	closeAll(log, mq, ts, sqlDB)
}

// connectMQTT returns nil when MQTT is disabled or the broker is unreachable;
// relay control keeps working without command push.
func connectMQTT(cfg config.MQTTConfig, log *logger.Logger) *mqtt.Client {
	c, err := mqtt.Connect(cfg, log)
	switch {
	case errors.Is(err, mqtt.ErrDisabled):
		log.Infow("mqtt_disabled")
		return nil
	case err != nil:
		log.Warnw("mqtt_connect_failed", "broker", cfg.Broker, "err", err)
		return nil
	}
	log.Infow("mqtt_connected", "broker", cfg.Broker)
	return c
}

func connectInflux(cfg config.InfluxConfig, log *logger.Logger) *influx.Client {
	c, err := influx.Connect(cfg, log)
	switch {
	case errors.Is(err, influx.ErrDisabled):
		log.Infow("influx_disabled")
		return nil
	case err != nil:
		log.Warnw("influx_connect_failed", "url", cfg.URL, "err", err)
		return nil
	}
	log.Infow("influx_connected", "url", cfg.URL, "bucket", cfg.Bucket)
	return c
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM and drains in-flight requests.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

// closeAll releases the outbound clients before the database.
// Both clients are nil-safe.
func closeAll(log *logger.Logger, mq *mqtt.Client, ts *influx.Client, sqlDB *sql.DB) {
	if err := mq.Close(); err != nil {
		log.Warnw("mqtt_close_failed", "err", err)
	}
	if err := ts.Close(); err != nil {
		log.Warnw("influx_close_failed", "err", err)
	}
	if err := sqlDB.Close(); err != nil {
		log.Errorw("failed to close sqlite", "err", err)
	}
	_ = log.Sync()
}
