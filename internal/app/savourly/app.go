// Package savourly собирает HTTP-приложение витрины: хранилище, кеш,
// брокер рассылки, сервисы и маршруты.
package savourly

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/PraneshMithun-cse/Savorly/internal/cache"
	"github.com/PraneshMithun-cse/Savorly/internal/config"
	"github.com/PraneshMithun-cse/Savorly/internal/credentials"
	jwtlib "github.com/PraneshMithun-cse/Savorly/internal/lib/jwt"
	"github.com/PraneshMithun-cse/Savorly/internal/lib/rabbitmq"
	"github.com/PraneshMithun-cse/Savorly/internal/migrations"
	consultationservice "github.com/PraneshMithun-cse/Savorly/internal/services/consultation"
	helpservice "github.com/PraneshMithun-cse/Savorly/internal/services/help"
	notifyservice "github.com/PraneshMithun-cse/Savorly/internal/services/notify"
	orderservice "github.com/PraneshMithun-cse/Savorly/internal/services/order"
	planservice "github.com/PraneshMithun-cse/Savorly/internal/services/plan"
	"github.com/PraneshMithun-cse/Savorly/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitURL, cfg.ConnectRetries, cfg.ConnectRetryWait)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	maker := jwtlib.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	credStore := credentials.NewStore(cfg.CredentialsStore)

	orderService := orderservice.NewOrderService(db, logger)
	planService := planservice.NewPlanService(db, cacheRedis, logger)
	consultationService := consultationservice.NewConsultationService(db, logger)
	helpService := helpservice.NewHelpService(db, logger)
	notifyService := notifyservice.NewNotifyService(
		&rabbitmq.ChannelPublisher{Ch: ch}, db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, maker, credStore,
		orderService, planService, consultationService, helpService, notifyService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		conn:   conn,
		ch:     ch,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.ch.Close(); closeErr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", closeErr))
		}
		if closeErr := a.conn.Close(); closeErr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		a.db.DB.Close()
		return err
	}
}
