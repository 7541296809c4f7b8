package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/gorilla/mux"

	"github.com/stroyhub/backoffice/modules/core"
	"github.com/stroyhub/backoffice/modules/core/infrastructure/sessionstore"
	coremiddleware "github.com/stroyhub/backoffice/modules/core/presentation/middleware"
	coreservices "github.com/stroyhub/backoffice/modules/core/services"
	"github.com/stroyhub/backoffice/modules/estimate"
	"github.com/stroyhub/backoffice/modules/finishing"
	"github.com/stroyhub/backoffice/pkg/application"
	"github.com/stroyhub/backoffice/pkg/configuration"
	"github.com/stroyhub/backoffice/pkg/eventbus"
	"github.com/stroyhub/backoffice/pkg/metrics"
	"github.com/stroyhub/backoffice/pkg/middleware"
)

func main() {
	conf := configuration.Use()
	logger := conf.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, conf.Database.ConnectionString())
	if err != nil {
		logger.WithError(err).Fatal("failed to create database pool")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.WithError(err).Fatal("database is unreachable")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	defer func() { _ = redisClient.Close() }()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Fatal("redis is unreachable")
	}

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	err = application.Load(app,
		core.NewModule(sessionstore.NewRedisStore(redisClient)),
		finishing.NewModule(),
		estimate.NewModule(),
	)
	if err != nil {
		logger.WithError(err).Fatal("failed to load modules")
	}

	authService := app.Service(&coreservices.AuthService{}).(*coreservices.AuthService)

	router := mux.NewRouter()
	router.Use(
		middleware.Recoverer(logger),
		middleware.RequestLogger(logger),
		middleware.WithPool(pool),
		coremiddleware.Authenticate(authService),
	)
	for _, controller := range app.Controllers() {
		controller.Register(router)
		logger.WithField("controller", controller.Key()).Debug("routes registered")
	}
	if conf.Metrics.Enabled {
		metrics.NewPrometheusController(conf.Metrics.Path).Register(router)
	}

	handler := cors.New(cors.Options{
		AllowedOrigins:   conf.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	server := &http.Server{
		Addr:         conf.ServerAddr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.WithField("addr", conf.ServerAddr).Info("server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Fatal("server stopped")
	}
}
