package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"

	"github.com/dverbeek/paddle/internal/adapters/api"
	"github.com/dverbeek/paddle/internal/adapters/database"
	"github.com/dverbeek/paddle/internal/adapters/events"
	"github.com/dverbeek/paddle/internal/domain/bids"
	"github.com/dverbeek/paddle/internal/domain/deposits"
	"github.com/dverbeek/paddle/internal/domain/items"
	"github.com/dverbeek/paddle/internal/domain/users"
	"github.com/dverbeek/paddle/migrations"
	pkgdb "github.com/dverbeek/paddle/pkg/database"
	pkgevents "github.com/dverbeek/paddle/pkg/events"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load environment variables (local overrides .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return errors.New("DATABASE_URL is not set")
	}

	dbConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return err
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	logger.Info("Postgres Connected")

	// Run migrations before serving traffic
	migrationDB := stdlib.OpenDBFromPool(pool)
	if err := migrations.Up(migrationDB); err != nil {
		return err
	}
	if err := migrationDB.Close(); err != nil {
		return err
	}
	logger.Info("Migrations applied")

	// Infrastructure layer
	txManager := pkgdb.NewPostgresTransactionManager(pool, 3*time.Second)
	userRepo := database.NewPostgresUserRepository(pool)
	itemRepo := database.NewPostgresItemRepository(pool)
	bidRepo := database.NewPostgresBidRepository(pool)
	depositRepo := database.NewPostgresDepositRepository(pool)
	outboxRepo := database.NewPostgresOutboxRepository(pool)

	// Domain layer
	userService := users.NewService(userRepo)
	itemService := items.NewService(itemRepo)
	bidEngine := bids.NewEngine(txManager, bidRepo, itemRepo, outboxRepo, 3, 50*time.Millisecond)
	depositService := deposits.NewService(depositRepo, userRepo)

	handler := api.NewHandler(userService, itemService, bidEngine, depositService, pool, logger)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: handler.Router(),
	}

	g, gctx := errgroup.WithContext(ctx)

	// Outbox relay runs only when a broker is configured. Accepted bids still
	// land in the outbox table either way.
	amqpURL := os.Getenv("AMQP_URL")
	if amqpURL != "" {
		amqpConn, err := amqp091.Dial(amqpURL)
		if err != nil {
			return err
		}
		defer amqpConn.Close()
		logger.Info("RabbitMQ Connected")

		publisher, err := events.NewRabbitMQPublisher(amqpConn)
		if err != nil {
			return err
		}
		defer publisher.Close()

		relay := pkgevents.NewOutboxRelay(
			outboxRepo,
			publisher,
			txManager,
			10,            // batch size
			1*time.Second, // interval
			events.Exchange,
			logger,
		)
		g.Go(func() error {
			logger.Info("Starting outbox relay")
			return relay.Run(gctx)
		})
	} else {
		logger.Warn("AMQP_URL is not set, outbox relay disabled")
	}

	g.Go(func() error {
		logger.Info("Starting API server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
