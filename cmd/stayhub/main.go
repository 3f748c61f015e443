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

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"stayhub/internal/app/commands"
	bookingapp "stayhub/internal/app/handlers/booking"
	listingapp "stayhub/internal/app/handlers/listings"
	meapp "stayhub/internal/app/handlers/me"
	"stayhub/internal/app/middleware"
	appoutbox "stayhub/internal/app/outbox"
	"stayhub/internal/app/policies"
	"stayhub/internal/app/queries"
	authapp "stayhub/internal/app/services/auth"
	chatapp "stayhub/internal/app/services/chat"
	favoritesapp "stayhub/internal/app/services/favorites"
	"stayhub/internal/app/uow"
	domainauth "stayhub/internal/domain/auth"
	domainchat "stayhub/internal/domain/chat"
	domainfavorites "stayhub/internal/domain/favorites"
	domainuser "stayhub/internal/domain/user"
	domainwallet "stayhub/internal/domain/wallet"
	"stayhub/internal/infra/broker/kafka"
	"stayhub/internal/infra/config"
	mongodb "stayhub/internal/infra/db/mongo"
	ginserver "stayhub/internal/infra/http/gin"
	"stayhub/internal/infra/messaging"
	"stayhub/internal/infra/obs"
	infraoutbox "stayhub/internal/infra/outbox"
	"stayhub/internal/infra/payments"
	"stayhub/internal/infra/security"
	"stayhub/internal/infra/sessions"
	"stayhub/internal/infra/storage/memory"
	"stayhub/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	deps, err := buildDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer deps.close()

	app := buildApplication(cfg, logger, deps)

	registry := prometheus.NewRegistry()
	metrics := obs.NewMetrics(registry)
	app.handlers.Metrics = metrics.GinMiddleware()
	app.handlers.MetricsRoute = obs.Handler(registry)
	app.listingHandler.Metrics = metrics

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: deps.ready,
	}, app.handlers)

	if deps.outboxWorker != nil {
		go func() {
			if err := deps.outboxWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "env", cfg.Env)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

// dependencies holds the infrastructure picked at startup: durable stores
// when Mongo/Redis/Kafka are configured, in-memory fallbacks otherwise.
type dependencies struct {
	uowFactory  uow.Factory
	wallets     domainwallet.Repository
	users       domainuser.Repository
	favorites   domainfavorites.RemoteStore
	chatStore   domainchat.Store
	sessions    domainauth.SessionStore
	idempotency middleware.IdempotencyStore
	outbox      appoutbox.Outbox
	cards       policies.CardProcessor
	uploader    s3.Uploader

	outboxWorker *infraoutbox.Worker
	ready        func() error
	closers      []func() error
}

func buildDependencies(ctx context.Context, cfg config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{ready: func() error { return nil }}

	if cfg.MongoURI != "" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx); err != nil {
			return nil, err
		}
		listingsRepo := mongodb.NewListingRepository(client.DB)
		bookingsRepo := mongodb.NewBookingRepository(client.DB)
		usersRepo := mongodb.NewUserRepository(client.DB)
		walletsRepo := mongodb.NewWalletStore(client.DB)
		favoritesRepo := mongodb.NewFavoritesStore(client.DB)
		deps.uowFactory = mongodb.Factory{
			DB:            client.DB,
			ListingsRepo:  listingsRepo,
			BookingsRepo:  bookingsRepo,
			UsersRepo:     usersRepo,
			WalletsRepo:   walletsRepo,
			FavoritesRepo: favoritesRepo,
		}
		deps.users = usersRepo
		deps.wallets = walletsRepo
		deps.favorites = favoritesRepo
		deps.chatStore = mongodb.NewChatStore(client.DB)
		deps.idempotency = mongodb.NewIdempotencyStore(client.DB, cfg.IdempotencyTTL)
		store := infraoutbox.NewStore(client.DB)
		deps.outbox = store
		deps.ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}

		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				return nil, err
			}
			deps.closers = append(deps.closers, producer.Close)
			deps.outboxWorker = &infraoutbox.Worker{
				Store:       store,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
			}
		} else {
			logger.Warn("kafka brokers not configured, outbox events stay queued")
		}
		logger.Info("using mongo persistence", "database", cfg.MongoDB)
	} else {
		factory := memory.NewFactory()
		deps.uowFactory = factory
		deps.users = factory.UsersRepo
		deps.wallets = factory.WalletsRepo
		deps.favorites = factory.FavoritesRepo
		deps.chatStore = memory.NewChatStore(nil)
		deps.idempotency = memory.NewIdempotencyStore(cfg.IdempotencyTTL)
		deps.outbox = memory.NewOutboxLog(logger)
		if cfg.SeedFixtures {
			if err := memory.SeedFixtures(ctx, factory, security.BcryptHasher{}); err != nil {
				return nil, err
			}
			logger.Info("demo fixtures seeded", "email", memory.DemoEmail)
		}
		logger.Info("using in-memory persistence")
	}

	if cfg.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, client.Close)
		deps.sessions = sessions.NewRedisStore(client)
		logger.Info("using redis sessions", "addr", cfg.RedisAddr)
	} else {
		deps.sessions = sessions.NewMemoryStore()
		logger.Info("using in-memory sessions")
	}

	if cfg.CardProcessorURL != "" {
		deps.cards = payments.NewCardClient(cfg.CardProcessorURL, cfg.CardTimeout)
	}

	uploader, err := s3.NewClient(s3.Options{
		Endpoint:      cfg.S3Endpoint,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Bucket:        cfg.S3Bucket,
		PublicBaseURL: cfg.S3PublicEndpoint,
		UseSSL:        cfg.S3UseSSL,
	}, logger)
	if err != nil {
		logger.Warn("object storage unavailable, avatar uploads disabled", "error", err)
		deps.uploader = s3.Disabled{}
	} else {
		deps.uploader = uploader
	}

	return deps, nil
}

func (d *dependencies) close() {
	for _, closeFn := range d.closers {
		_ = closeFn()
	}
}

type application struct {
	handlers       ginserver.Handlers
	listingHandler *ginserver.ListingHandler
}

func buildApplication(cfg config.Config, logger *slog.Logger, deps *dependencies) application {
	commandBus := commands.NewInMemoryBus()
	bookingHandler := &bookingapp.RequestBookingHandler{
		UoWFactory: deps.uowFactory,
		Cards:      deps.cards,
		Outbox:     deps.outbox,
		Encoder:    appoutbox.JSONEventEncoder{},
	}
	commands.RegisterHandler(commandBus, bookingapp.RequestBookingCommand{}.Key(), bookingHandler)

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, listingapp.SearchCatalogQuery{}.Key(),
		&listingapp.SearchCatalogHandler{UoWFactory: deps.uowFactory})
	queries.RegisterHandler(queryBus, listingapp.GetOverviewQuery{}.Key(),
		&listingapp.GetOverviewHandler{UoWFactory: deps.uowFactory})
	queries.RegisterHandler(queryBus, listingapp.GetQuoteQuery{}.Key(),
		&listingapp.GetQuoteHandler{UoWFactory: deps.uowFactory})
	queries.RegisterHandler(queryBus, meapp.ListGuestBookingsQuery{}.Key(),
		&meapp.ListGuestBookingsHandler{UoWFactory: deps.uowFactory, Logger: logger})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Idempotency(deps.idempotency, nil),
		middleware.Transaction(deps.uowFactory, nil),
		middleware.OutboxFlush(deps.outbox),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	authService := &authapp.Service{
		Users:      deps.users,
		Sessions:   deps.sessions,
		Passwords:  security.BcryptHasher{},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	}
	favoritesRegistry := favoritesapp.NewRegistry(deps.favorites, logger)
	chatService := &chatapp.Service{
		Store:      deps.chatStore,
		Hub:        messaging.NewHub(),
		UoWFactory: deps.uowFactory,
		Logger:     logger,
	}

	listingHandler := &ginserver.ListingHandler{
		Queries:   queryBusWithMiddleware,
		Favorites: favoritesRegistry,
	}

	handlers := ginserver.Handlers{
		Listing:   listingHandler,
		Favorites: ginserver.FavoritesHandler{Registry: favoritesRegistry},
		Booking:   ginserver.BookingHandler{Commands: commandBusWithMiddleware},
		Auth: ginserver.AuthHandler{
			Service:   authService,
			Favorites: favoritesRegistry,
			Uploader:  deps.uploader,
		},
		Me: ginserver.MeHandler{
			Queries: queryBusWithMiddleware,
			Wallets: deps.wallets,
		},
		Chat:           ginserver.ChatHandler{Service: chatService},
		AuthMiddleware: ginserver.AuthMiddleware{Service: authService, Logger: logger}.Handle,
	}

	return application{handlers: handlers, listingHandler: listingHandler}
}
