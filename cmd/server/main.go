package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/intellicall/db/migrations"
	"github.com/dmitrymomot/intellicall/modules/account"
	"github.com/dmitrymomot/intellicall/modules/customers"
	"github.com/dmitrymomot/intellicall/modules/dashboard"
	"github.com/dmitrymomot/intellicall/modules/site"
	pkgauth "github.com/dmitrymomot/intellicall/pkg/auth"
	"github.com/dmitrymomot/intellicall/pkg/config"
	"github.com/dmitrymomot/intellicall/pkg/cookie"
	"github.com/dmitrymomot/intellicall/pkg/environment"
	"github.com/dmitrymomot/intellicall/pkg/httpserver"
	"github.com/dmitrymomot/intellicall/pkg/logger"
	"github.com/dmitrymomot/intellicall/pkg/pg"
	"github.com/dmitrymomot/intellicall/pkg/ratelimit"
	"github.com/dmitrymomot/intellicall/pkg/redis"
	"github.com/dmitrymomot/intellicall/pkg/requestid"
	"github.com/dmitrymomot/intellicall/svc/auth"
	"github.com/dmitrymomot/intellicall/svc/customer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "intellicall: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfg       appConfig
		pgCfg     pg.Config
		redisCfg  redis.Config
		httpCfg   httpserver.Config
		cookieCfg cookie.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&cfg) },
		func() error { return config.Load(&pgCfg) },
		func() error { return config.Load(&redisCfg) },
		func() error { return config.Load(&httpCfg) },
		func() error { return config.Load(&cookieCfg) },
	} {
		if err := load(); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	env := environment.Parse(cfg.Env)
	log := logger.New(
		logger.WithEnvironment(env, cfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor(), environment.LoggerExtractor()),
	)
	slog.SetDefault(log)

	tokens, err := auth.New([]byte(cfg.JWTSecret), auth.WithTTL(cfg.JWTTTL))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, migrations.FS, log); err != nil {
		return err
	}

	db, err := pg.Gorm(pool)
	if err != nil {
		return err
	}

	readiness := []func(context.Context) error{pg.Healthcheck(pool)}

	var store ratelimit.Store = ratelimit.NewMemoryStore()
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()

		store = ratelimit.NewRedisStore(client)
		readiness = append(readiness, redis.Healthcheck(client))
	} else {
		log.Info("REDIS_URL not set, rate limits are kept in memory", logger.Component("ratelimit"))
	}

	limiter, err := ratelimit.New(store, ratelimit.Config{
		Capacity:       cfg.LoginRateLimit,
		RefillRate:     cfg.LoginRateLimit,
		RefillInterval: time.Minute,
	})
	if err != nil {
		return fmt.Errorf("login rate limit: %w", err)
	}

	secure := env == environment.Production
	cookies, err := cookie.NewFromConfig(cookieCfg, cookie.WithSecure(secure))
	if err != nil {
		return err
	}

	session := auth.NewSession(cookies, auth.WithSecureCookie(secure), auth.WithCookieMaxAge(cfg.JWTTTL))
	apiGuard := auth.APIGuard(tokens, session, auth.WithLogger(log))
	pageGuard := auth.PageGuard(tokens, session, auth.WithLogger(log))

	customerSvc := customer.NewService(customer.NewRepository(db), pkgauth.NewPasswordHasher())

	router := newRouter(routerDeps{
		env:        env,
		log:        log,
		corsOrigin: cfg.CORSOrigin,
		readiness:  readiness,
		site:       site.New(session, log),
		account: account.New(tokens, session, customerSvc, cookies, pageGuard,
			account.WithLimiter(limiter),
			account.WithLogger(log),
		),
		customers: customers.New(customerSvc, cookies, apiGuard, pageGuard, log),
		dashboard: dashboard.New(customerSvc, session, apiGuard, pageGuard, log),
	})

	return httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log)).Run(ctx, router)
}
