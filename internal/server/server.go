package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"job-scout/internal/pipeline"
)

// RunTrigger starts one discovery run and returns its summary.
type RunTrigger interface {
	Run(ctx context.Context) (*pipeline.Summary, error)
}

// Notifier delivers a completed run's summary out of band. Delivery failures
// never fail the run.
type Notifier interface {
	NotifyRun(summary *pipeline.Summary)
}

// Server exposes the pipeline's trigger endpoint.
type Server struct {
	runner   RunTrigger
	notifier Notifier
	secret   string
	logger   *zap.Logger
	http     *http.Server
}

func New(addr, secret string, runner RunTrigger, notifier Notifier, logger *zap.Logger) *Server {
	s := &Server{
		runner:   runner,
		notifier: notifier,
		secret:   secret,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.Handle("/run", BearerAuth(secret, logger)(http.HandlerFunc(s.handleRun)))
	mux.HandleFunc("/healthz", s.handleHealth)

	var handler http.Handler = mux
	handler = RequestLogger(logger)(handler)
	handler = Recovery(logger)(handler)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler exposes the wired handler chain, used by tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summary, err := s.runner.Run(r.Context())
	if err != nil {
		s.logger.Error("run failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if s.notifier != nil {
		s.notifier.NotifyRun(summary)
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
