// Package ioweb serves the GNdash HTTP API with gin. Every browser
// session gets its own dataset, kept in a dataset.Store.
package ioweb

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gnames/gndash/pkg/config"
	"github.com/gnames/gndash/pkg/dataset"
	"github.com/gnames/gndash/pkg/sampler"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP API of GNdash.
type Server struct {
	cfg      *config.Config
	store    dataset.Store
	notifier dataset.Notifier
	tokens   *tokens

	// newSource creates the random source of one sampling request.
	newSource func() sampler.Source
}

// Option modifies a Server.
type Option func(*Server)

// OptSource replaces the random source of image sampling.
func OptSource(f func() sampler.Source) Option {
	return func(s *Server) {
		s.newSource = f
	}
}

// New creates a Server.
func New(
	cfg *config.Config,
	store dataset.Store,
	notifier dataset.Notifier,
	opts ...Option,
) *Server {
	res := &Server{
		cfg:      cfg,
		store:    store,
		notifier: notifier,
		tokens:   newTokens(cfg.Server.SessionSecret, cfg.Server.SessionTTL),
		newSource: func() sampler.Source {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Router creates the gin engine with all routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), logger(), cors(s.cfg.Server.AllowedOrigins))
	// multipart parts above this size go to temporary files
	r.MaxMultipartMemory = s.maxUploadBytes()

	r.GET("/health", s.health)

	api := r.Group("/api/v1", s.session())
	{
		datasets := api.Group("/datasets")
		{
			datasets.POST("",
				rateLimit(s.cfg.Server.UploadRatePerMinute, time.Minute),
				s.upload,
			)
			datasets.GET("/current", s.currentDataset)
			datasets.DELETE("/current", s.deleteDataset)
			datasets.GET("/current/records", s.records)
		}

		api.GET("/species", s.species)
		api.GET("/species/:key/options", s.speciesOptions)
		api.GET("/filters", s.filters)

		charts := api.Group("/charts")
		{
			charts.GET("/histogram", s.histogram)
			charts.GET("/pie", s.pie)
			charts.GET("/map", s.locationMap)
		}

		api.POST("/images/sample", s.sampleImages)
	}

	return r
}

// Run serves the API until ctx is cancelled, then shuts the server down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return ServeError(srv.Addr, err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server")
	shutCtx, cancel := context.WithTimeout(
		context.WithoutCancel(ctx), shutdownTimeout,
	)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return ServeError(srv.Addr, err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return ServeError(srv.Addr, err)
	}
	return nil
}

func (s *Server) maxUploadBytes() int64 {
	return int64(s.cfg.Server.MaxUploadMB) << 20
}
