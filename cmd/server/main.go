package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"walletcore/internal/chain"
	"walletcore/internal/deploy"
	"walletcore/internal/indexer"
	"walletcore/internal/indexer/store/memory"
	"walletcore/internal/indexer/store/postgres"
	"walletcore/internal/indexer/store/sqlite"
	jwttoken "walletcore/internal/jwt_token"
	"walletcore/internal/platform/config"
	"walletcore/internal/platform/httpserver"
	"walletcore/internal/platform/kafka"
	"walletcore/internal/platform/logger"
	"walletcore/internal/platform/metrics"
	"walletcore/internal/platform/middleware"
	"walletcore/internal/platform/redis"
	"walletcore/internal/ratelimit"
	"walletcore/internal/service"
	"walletcore/internal/stream"
	httptransport "walletcore/internal/transport/http"
	"walletcore/pkg/platform/httputil"
)

// main wires the ledger, the indexer and the HTTP surface, then runs until
// SIGINT or SIGTERM.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inbox := indexer.NewInbox(cfg.Chain.Inbox)
	ledger := chain.New(
		chain.WithChainID(cfg.Chain.ID),
		chain.WithLogger(log),
		chain.WithMetrics(m),
		chain.WithSink(inbox),
	)
	contracts, err := deploy.Genesis(ctx, ledger, cfg.Chain.AdminAddress())
	if err != nil {
		return fmt.Errorf("genesis: %w", err)
	}
	log.InfoContext(ctx, "genesis deployed",
		"chain_id", ledger.ChainID().String(),
		"admin", cfg.Chain.AdminAddress().Hex(),
		"factory", contracts.FactoryAddr.Hex(),
		"sso_registry", contracts.RegistryAddr.Hex(),
		"event_emitter", contracts.EventEmitterAddr.Hex(),
	)

	store, closeStore, err := openStore(ctx, cfg.Indexer)
	if err != nil {
		return err
	}
	defer closeStore()

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}
	kafkaClient, err := kafka.New(ctx, cfg.Kafka)
	if err != nil {
		return err
	}
	if kafkaClient != nil {
		defer kafkaClient.Close()
	}

	var publishers []indexer.Publisher
	guard := func(p indexer.Publisher) indexer.Publisher {
		return stream.Guard(p, stream.NewBreaker(cfg.Breaker.Threshold, cfg.Breaker.Cooldown),
			stream.WithGuardLogger(log),
			stream.WithGuardMetrics(m),
		)
	}
	if kafkaClient != nil {
		publishers = append(publishers, guard(stream.NewKafkaPublisher(kafkaClient, kafkaClient.Topic())))
	}
	if redisClient != nil {
		publishers = append(publishers, guard(stream.NewRedisPublisher(redisClient, redisClient.Stream(), redisClient.StreamMaxLen())))
	}

	worker := indexer.NewWorker(store, inbox.C(),
		indexer.WithPublishers(publishers...),
		indexer.WithLogger(log),
		indexer.WithMetrics(m),
	)
	svc := service.New(ledger, contracts,
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithRecords(store),
	)

	tokens := jwttoken.NewJWTService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.Audience)
	var revocations middleware.TokenRevocationChecker
	if redisClient != nil {
		revocations = jwttoken.NewRevocationStore(redisClient)
	}

	var limits ratelimit.Store = ratelimit.NewMemoryStore()
	if redisClient != nil {
		limits = ratelimit.NewRedisStore(redisClient)
	}
	limiter := ratelimit.New(limits, cfg.RateLimit.Writes, cfg.RateLimit.Window,
		ratelimit.WithLogger(log),
		ratelimit.WithMetrics(m),
	)

	router := httptransport.NewRouter(
		httptransport.New(svc, log, m),
		jwttoken.NewJWTServiceAdapter(tokens),
		revocations,
		limiter,
		log,
		m,
	)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "redis unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	srv := httpserver.New(cfg.Addr, router, httpserver.Timeouts{
		ReadHeader: cfg.HTTP.ReadHeaderTimeout,
		Read:       cfg.HTTP.ReadTimeout,
		Write:      cfg.HTTP.WriteTimeout,
		Idle:       cfg.HTTP.IdleTimeout,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return inbox.Serve(gctx, worker)
	})
	g.Go(func() error {
		log.InfoContext(gctx, "starting walletcore", "addr", cfg.Addr, "indexer", cfg.Indexer.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	log.Info("walletcore stopped", slog.Any("error", err))
	return err
}

func openStore(ctx context.Context, cfg config.IndexerConfig) (indexer.Store, func(), error) {
	switch strings.ToLower(cfg.Driver) {
	case "sqlite":
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "postgres":
		s, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return memory.New(), func() {}, nil
	}
}
