// Package server is the search proxy: a gin service that signs and forwards
// character lookups to the upstream API and normalizes its responses.
package server

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"heropick/internal/domain"
)

// MinQueryChars is the shortest query forwarded upstream
const MinQueryChars = 2

// MaxSearchLimit caps the limit a caller may request
const MaxSearchLimit = 100

// Upstream is the character API as seen by the handlers
type Upstream interface {
	SearchByName(ctx context.Context, prefix string, limit int) ([]domain.CharacterSummary, error)
	Character(ctx context.Context, id string) (domain.CharacterDetail, error)
	HasCredentials() bool
	PublicKeyLoaded() bool
	PrivateKeyLoaded() bool
}

// Options configures the router
type Options struct {
	SearchLimit int
	Logger      *slog.Logger
	Metrics     *Metrics
}

// Server holds the handler dependencies
type Server struct {
	upstream    Upstream
	searchLimit int
	logger      *slog.Logger
	metrics     *Metrics
}

// New creates a Server. Zero-valued options fall back to defaults.
func New(up Upstream, opts Options) *Server {
	if opts.SearchLimit < 1 || opts.SearchLimit > MaxSearchLimit {
		opts.SearchLimit = 10
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics(prometheus.NewRegistry())
	}
	return &Server{
		upstream:    up,
		searchLimit: opts.SearchLimit,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
	}
}

// Router builds the gin engine with every route mounted. gatherer may be nil,
// in which case /metrics is not exposed.
func (s *Server) Router(gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(s.logger, s.metrics))
	s.SetupRoutes(router)
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	return router
}

// SetupRoutes mounts the proxy API on router
func (s *Server) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/health", s.HandleHealth())

		characters := api.Group("/marvel/characters")
		{
			characters.GET("", s.HandleSearch())
			characters.GET("/", s.HandleDetail())
			characters.GET("/:id", s.HandleDetail())
		}
	}
}
