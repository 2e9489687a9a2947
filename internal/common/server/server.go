package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/AlibekovAA/account-hub/internal/common/constants"
	"github.com/AlibekovAA/account-hub/internal/common/logger"
)

type ShutdownHook func(ctx context.Context) error

type Config struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

func DefaultConfig(port string) Config {
	return Config{
		Addr:              ":" + port,
		ReadHeaderTimeout: constants.ServerReadHeaderTimeout,
		ReadTimeout:       constants.ServerReadTimeout,
		WriteTimeout:      constants.ServerWriteTimeout,
		IdleTimeout:       constants.ServerIdleTimeout,
	}
}

func New(cfg Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Run serves on ln until ctx is cancelled, then stops accepting connections,
// waits for in-flight requests and runs hooks in order.
func Run(ctx context.Context, server *http.Server, ln net.Listener, log *logger.Logger, serviceName string, hooks []ShutdownHook) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Infof("%s service listening on %s", serviceName, ln.Addr())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("failed to serve %s: %w", serviceName, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infof("shutting down %s service...", serviceName)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer shutdownCancel()

	drainCtx, drainCancel := context.WithTimeout(shutdownCtx, constants.DrainTimeout)
	defer drainCancel()

	log.Infof("%s service: stopping accepting new connections (drain period: %v)", serviceName, constants.DrainTimeout)
	server.SetKeepAlivesEnabled(false)

	var shutdownErr error
	if err := server.Shutdown(drainCtx); err != nil {
		log.Errorf("%s service forced to shutdown: %v", serviceName, err)
		shutdownErr = err
	}

	if len(hooks) > 0 {
		log.Infof("%s service: executing shutdown hooks", serviceName)
		for i, hook := range hooks {
			if err := hook(shutdownCtx); err != nil {
				log.Errorf("%s service: shutdown hook %d failed: %v", serviceName, i, err)
			}
		}
	}

	if shutdownErr == nil {
		log.Infof("%s service stopped gracefully", serviceName)
	}
	return shutdownErr
}

// ListenAndRun binds server.Addr and calls Run.
func ListenAndRun(ctx context.Context, server *http.Server, log *logger.Logger, serviceName string, hooks []ShutdownHook) error {
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", server.Addr, err)
	}
	return Run(ctx, server, ln, log, serviceName, hooks)
}
