package metrics

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

// Server serves the metrics endpoint over HTTP.
type Server struct {
	log  zerolog.Logger
	addr string
	http *http.Server
}

// NewServer routes path to the metrics registry, wrapped with panic recovery
// and access logging.
func NewServer(addr, path string, m *Metrics, log zerolog.Logger) *Server {
	r := mux.NewRouter()
	r.Handle(path, promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})).Methods(http.MethodGet)

	logger := log.With().Str("component", "metrics-http").Logger()
	h := handlers.RecoveryHandler(handlers.PrintRecoveryStack(false))(r)
	h = handlers.CustomLoggingHandler(logger, h, func(_ io.Writer, p handlers.LogFormatterParams) {
		logger.Debug().
			Str("method", p.Request.Method).
			Str("path", p.URL.Path).
			Int("status", p.StatusCode).
			Int("size", p.Size).
			Msg("metrics request")
	})

	return &Server{
		log:  logger,
		addr: addr,
		http: &http.Server{
			Addr:              addr,
			Handler:           h,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start listens and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = s.http.Shutdown(shutdownCtx)
	}()

	s.log.Info().Str("addr", ln.Addr().String()).Msg("metrics server starting")
	err = s.http.Serve(ln)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info().Msg("metrics server stopped")
	return nil
}
