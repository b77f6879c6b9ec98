package proxy

import (
	"fmt"
	"net/http"
	"time"

	"relaygate/internal/cache"
	"relaygate/internal/config"
	"relaygate/internal/logging"
	"relaygate/internal/metrics"
	"relaygate/internal/middleware"
	"relaygate/internal/upstream"
)

// App bundles the assembled handler with the cache store so main can clear
// it at shutdown.
type App struct {
	Handler http.Handler
	Store   cache.Store
}

type Builder struct {
	cfg    *config.Config
	logger logging.Logger
}

func NewBuilder(cfg *config.Config, logger logging.Logger) *Builder {
	return &Builder{
		cfg:    cfg,
		logger: logger,
	}
}

func (b *Builder) Build() (*App, error) {
	store := cache.NewMemoryStore()
	transport := upstream.NewTransport()
	client := upstream.NewClient(transport)

	engine := NewEngine(
		b.cfg.Upstream.BaseURL,
		b.cfg.Upstream.APIKey,
		time.Duration(b.cfg.Cache.TTL),
		store,
		client,
		b.logger,
	)

	mux := http.NewServeMux()
	mux.Handle(b.cfg.Upstream.PathPrefix, engine)
	mux.HandleFunc("/health", HealthHandler(store, b.cfg.Server.Port, b.cfg.APIKeyConfigured()))
	mux.HandleFunc("/cache/clear", CacheClearHandler(store, b.logger))
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/", StatusPageHandler())

	var mws []middleware.Middleware

	if len(b.cfg.Server.BlockCIDRs) > 0 {
		ipMw, err := middleware.IPFilter(b.logger, b.cfg.Server.BlockCIDRs)
		if err != nil {
			return nil, fmt.Errorf("invalid blockCIDRs: %w", err)
		}
		mws = append(mws, ipMw)
	}

	mws = append(mws,
		middleware.CORS(),
		middleware.RequestLog(b.logger),
	)

	if b.logger != nil {
		// Flagged rather than silently accepted: any caller can flush the
		// cache on this endpoint.
		b.logger.Warn("cache clear endpoint is unauthenticated", "path", "/cache/clear")
	}

	return &App{
		Handler: middleware.Chain(mux, mws...),
		Store:   store,
	}, nil
}
