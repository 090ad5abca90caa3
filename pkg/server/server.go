package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"intercom/pkg/config"
	"intercom/pkg/logging"
	"intercom/pkg/middleware"
	"intercom/pkg/monitoring"
)

const shutdownTimeout = 30 * time.Second

// Config represents server configuration
type Config struct {
	Name         string
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns the listener defaults. WriteTimeout stays zero so a
// slow upstream webhook is never cut off by the server.
func DefaultConfig(name, addr string) Config {
	return Config{
		Name:        name,
		Addr:        addr,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}
}

// Listener pairs a listener config with the handler it serves.
type Listener struct {
	Config  Config
	Handler http.Handler
}

func setGinMode() {
	if config.GetEnv("GIN_MODE", "debug") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
}

// SetupServiceRouter creates the main router with request id, logging,
// recovery and HTTP metrics middleware.
func SetupServiceRouter(logger logging.Logger, mc *monitoring.MetricsCollector) *gin.Engine {
	setGinMode()

	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	if mc != nil {
		router.Use(mc.MetricsMiddleware())
	}

	return router
}

// SetupMetricsRouter creates the scrape-only router served on the metrics port.
func SetupMetricsRouter(logger logging.Logger, mc *monitoring.MetricsCollector) *gin.Engine {
	setGinMode()

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(logger))
	router.GET("/metrics", mc.Handler())

	return router
}

// Start runs the listeners until SIGINT or SIGTERM.
func Start(logger logging.Logger, listeners ...Listener) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx, logger, listeners...)
}

// Run binds every listener, then serves them until ctx is done or one of
// them fails, and finally shuts all of them down gracefully. A bind failure
// is returned before anything starts serving.
func Run(ctx context.Context, logger logging.Logger, listeners ...Listener) error {
	var lc net.ListenConfig
	bound := make([]net.Listener, 0, len(listeners))
	for _, l := range listeners {
		ln, err := lc.Listen(ctx, "tcp", l.Config.Addr)
		if err != nil {
			for _, b := range bound {
				_ = b.Close()
			}
			return fmt.Errorf("failed to bind %s listener on %s: %w", l.Config.Name, l.Config.Addr, err)
		}
		bound = append(bound, ln)
	}

	g, gctx := errgroup.WithContext(ctx)
	servers := make([]*http.Server, len(listeners))

	for i, l := range listeners {
		srv := &http.Server{
			Handler:      l.Handler,
			ReadTimeout:  l.Config.ReadTimeout,
			WriteTimeout: l.Config.WriteTimeout,
			IdleTimeout:  l.Config.IdleTimeout,
		}
		servers[i] = srv
		ln := bound[i]
		name := l.Config.Name

		g.Go(func() error {
			logger.WithFields(logging.Fields{
				"listener": name,
				"addr":     ln.Addr().String(),
			}).Info("Starting HTTP server")

			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("%s listener: %w", name, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down servers...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for i, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("%s forced to shutdown: %w", listeners[i].Config.Name, err))
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("Servers stopped")
	return nil
}
