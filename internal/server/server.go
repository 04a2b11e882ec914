package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"saylani-fulfillment/internal/config"
	"saylani-fulfillment/internal/fulfillment"
	"saylani-fulfillment/internal/log"
	"saylani-fulfillment/internal/tasks"
	"saylani-fulfillment/internal/types"
)

// ErrorApology is returned, with HTTP 200, when a webhook call cannot be
// handled at all.
const ErrorApology = "Sorry, something went wrong on our side. Please try again."

const maxBodyBytes = 1 << 20

// Dispatcher turns one webhook request into a reply and deferred tasks.
type Dispatcher interface {
	Handle(ctx context.Context, req *types.WebhookRequest) fulfillment.Result
}

// HealthChecker is satisfied by *db.DB.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Deps struct {
	Dispatcher Dispatcher
	Tasks      tasks.Enqueuer
	// Database is optional.
	Database HealthChecker
}

type Server struct {
	router     *chi.Mux
	cfg        config.Config
	dispatcher Dispatcher
	tasks      tasks.Enqueuer
	database   HealthChecker
}

func NewServer(cfg config.Config, deps Deps) *Server {
	r := chi.NewRouter()
	r.Use(RecoverWithApology)
	r.Use(RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	s := &Server{
		router:     r,
		cfg:        cfg,
		dispatcher: deps.Dispatcher,
		tasks:      deps.Tasks,
		database:   deps.Database,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/", s.handleRoot)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	limit := s.cfg.RateLimitPerMinute
	if limit <= 0 {
		limit = 600
	}
	s.router.With(RateLimit(limit, time.Minute)).Post("/dialogflow", s.handleDialogflow)
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Status Okay"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.database != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := s.database.HealthCheck(ctx); err != nil {
			logger := log.WithComponent("http")
			logger.Warn().Err(err).Msg("database health check failed")
			writeJSON(w, http.StatusServiceUnavailable, types.ErrorResponse{Error: "database unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDialogflow answers the platform first and only then hands the
// handler's side effects to the task queue.
func (s *Server) handleDialogflow(w http.ResponseWriter, r *http.Request) {
	logger := log.WithComponent("http")

	var req types.WebhookRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logger.Warn().Err(err).Msg("invalid webhook body")
		writeApology(w)
		return
	}

	res := s.dispatcher.Handle(r.Context(), &req)
	if res.Response == nil {
		writeApology(w)
	} else {
		writeJSON(w, http.StatusOK, res.Response)
	}
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	for _, t := range res.Tasks {
		if s.tasks == nil {
			logger.Warn().Str("kind", t.Kind).Str("target", t.Target).Msg("no task queue; side effect dropped")
			continue
		}
		if err := s.tasks.Enqueue(t); err != nil {
			logger.Error().Err(err).Str("task_id", t.ID).Str("kind", t.Kind).Msg("failed to enqueue side effect")
		}
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeApology(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, types.WebhookResponse{FulfillmentText: ErrorApology})
}
