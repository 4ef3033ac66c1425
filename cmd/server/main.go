package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"underwriter/internal/events"
	"underwriter/internal/integrations"
	"underwriter/internal/integrations/member"
	"underwriter/internal/integrations/pricing"
	"underwriter/internal/platform/config"
	"underwriter/internal/platform/httpserver"
	"underwriter/internal/platform/logger"
	"underwriter/internal/platform/metrics"
	"underwriter/internal/platform/postgres"
	"underwriter/internal/platform/redis"
	"underwriter/internal/quote/guideline"
	quotehandler "underwriter/internal/quote/handler"
	quotemetrics "underwriter/internal/quote/metrics"
	quoteservice "underwriter/internal/quote/service"
	quotestore "underwriter/internal/quote/store"
	signhandler "underwriter/internal/sign/handler"
	signmetrics "underwriter/internal/sign/metrics"
	signservice "underwriter/internal/sign/service"
	signstore "underwriter/internal/sign/store"
	"underwriter/internal/sign/strategy"
	"underwriter/pkg/platform/tx"
)

// signRequestTimeout leaves room for the BankID round trip.
const signRequestTimeout = 30 * time.Second

// sessionStore is what both the strategies and the sign service need from
// the sign-session backend.
type sessionStore interface {
	strategy.SessionStore
	signservice.SessionStore
}

type quoteStore interface {
	quoteservice.Store
	signservice.QuoteStore
}

// outboxStore is appended to by services and drained by the relay.
type outboxStore interface {
	events.Outbox
	events.Source
}

type infra struct {
	db     *sql.DB
	pool   *pgxpool.Pool
	redis  *redis.Client
	quotes quoteStore
	outbox outboxStore
	tx     tx.Runner
}

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("underwriter stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	inf, err := openInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer inf.close()

	sessions, err := buildSessionStore(cfg, inf)
	if err != nil {
		return err
	}

	members := member.New(cfg.Integrations.MemberURL, cfg.Integrations.MemberTimeout,
		integrations.WithLogger(log))
	pricer := pricing.New(cfg.Integrations.PricingURL, cfg.Integrations.PricingTimeout,
		integrations.WithLogger(log))

	httpMetrics := metrics.New()
	qm := quotemetrics.New()
	sm := signmetrics.New()

	engine := guideline.NewEngine(members,
		guideline.WithLogger(log),
		guideline.WithMetrics(qm),
	)
	quotes := quoteservice.New(inf.quotes, pricer, engine, inf.outbox,
		quoteservice.WithLogger(log),
		quoteservice.WithMetrics(qm),
		quoteservice.WithTxRunner(inf.tx),
		quoteservice.WithValidity(cfg.Quote.Validity),
	)

	strategyOpts := []strategy.Option{strategy.WithLogger(log)}
	registry := strategy.NewRegistry(
		strategy.NewSwedish(sessions, members, strategyOpts...),
		strategy.NewRedirect(sessions, members, strategyOpts...),
		strategy.NewSimple(sessions, members, strategyOpts...),
		cfg.Sign.SimpleSignEnabled,
	)
	sign := signservice.New(inf.quotes, sessions, registry, members, inf.outbox,
		signservice.WithLogger(log),
		signservice.WithMetrics(sm),
		signservice.WithTxRunner(inf.tx),
	)

	router := chi.NewRouter()
	router.Get("/health", health(inf))
	router.Handle("/metrics", httpMetrics.Handler())
	quotehandler.New(quotes, log, httpMetrics, cfg.Server.RequestTimeout, cfg.Server.AdminToken).Register(router)
	signTimeout := max(cfg.Server.RequestTimeout, signRequestTimeout)
	signhandler.New(sign, log, httpMetrics, signTimeout, cfg.Sign.CallbackToken).Register(router)

	srv := httpserver.New(cfg.Server.Addr, router, signTimeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting underwriter", "addr", cfg.Server.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer publisher.Close()
		if err := publisher.EnsureTopic(ctx, 3, 1); err != nil {
			log.Warn("failed to ensure outbox topic", "topic", cfg.Kafka.Topic, "error", err)
		}
		relay := events.NewRelay(inf.outbox, publisher,
			events.WithInterval(cfg.Kafka.RelayInterval),
			events.WithBatchSize(cfg.Kafka.RelayBatch),
			events.WithRelayLogger(log),
		)
		g.Go(func() error {
			if err := relay.Run(gctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	} else {
		log.Warn("KAFKA_BROKERS not set, events stay in the outbox")
	}
	return g.Wait()
}

func openInfra(ctx context.Context, cfg config.Config, log *slog.Logger) (*infra, error) {
	inf := &infra{tx: tx.NoopRunner{}}

	if cfg.Database.URL == "" {
		log.Warn("DATABASE_URL not set, quotes and events are kept in memory")
		inf.quotes = quotestore.NewInMemory()
		inf.outbox = events.NewMemoryOutbox()
	} else {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		inf.db = db
		inf.quotes = quotestore.NewPostgres(db)
		inf.outbox = events.NewPostgresOutbox(db)
		inf.tx = tx.NewSQLRunner(db)
	}

	switch cfg.Sign.SessionStore {
	case config.SessionStorePostgres:
		if cfg.Database.URL == "" {
			inf.close()
			return nil, errors.New("postgres sign-session store needs DATABASE_URL")
		}
		pool, err := postgres.OpenPool(ctx, cfg.Database)
		if err != nil {
			inf.close()
			return nil, err
		}
		inf.pool = pool
	case config.SessionStoreRedis:
		rc, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			inf.close()
			return nil, err
		}
		if rc == nil {
			inf.close()
			return nil, errors.New("redis sign-session store needs REDIS_URL")
		}
		inf.redis = rc
	}
	return inf, nil
}

func buildSessionStore(cfg config.Config, inf *infra) (sessionStore, error) {
	switch cfg.Sign.SessionStore {
	case config.SessionStoreMemory:
		return signstore.NewInMemory(), nil
	case config.SessionStorePostgres:
		return signstore.NewPostgres(inf.pool), nil
	case config.SessionStoreRedis:
		return signstore.NewRedis(inf.redis.Client, signstore.WithSessionTTL(cfg.Sign.SessionTTL)), nil
	default:
		return nil, fmt.Errorf("unknown sign session store %q", cfg.Sign.SessionStore)
	}
}

func (i *infra) close() {
	if i.redis != nil {
		i.redis.Close()
	}
	if i.pool != nil {
		i.pool.Close()
	}
	if i.db != nil {
		i.db.Close()
	}
}

func health(inf *infra) http.HandlerFunc {
	var checks []func(context.Context) error
	if inf.db != nil {
		checks = append(checks, inf.db.PingContext)
	}
	if inf.pool != nil {
		checks = append(checks, inf.pool.Ping)
	}
	if inf.redis != nil {
		checks = append(checks, inf.redis.Health)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	}
}
