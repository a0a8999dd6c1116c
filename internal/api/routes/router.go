package routes

import (
	"net/http"

	"github.com/JastejS28/intel3/internal/api/handlers"
	"github.com/JastejS28/intel3/internal/api/middleware"
	"github.com/JastejS28/intel3/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	intakeHandler *handlers.IntakeHandler
	queueHandler  *handlers.QueueHandler
	sseHandler    *handlers.SSEHandler
	auditHandler  *handlers.AuditHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	intakeHandler *handlers.IntakeHandler,
	queueHandler *handlers.QueueHandler,
	sseHandler *handlers.SSEHandler,
	auditHandler *handlers.AuditHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		intakeHandler: intakeHandler,
		queueHandler:  queueHandler,
		sseHandler:    sseHandler,
		auditHandler:  auditHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Patient intake endpoints
	r.mux.HandleFunc("POST /api/patients", r.intakeHandler.CheckIn)
	r.mux.HandleFunc("GET /api/patients", r.queueHandler.ListQueue)
	r.mux.HandleFunc("GET /api/patients/{id}", r.intakeHandler.GetPatient)

	// Queue endpoints
	r.mux.HandleFunc("GET /api/queue", r.queueHandler.ViewQueue)
	r.mux.HandleFunc("GET /api/queue/status", r.intakeHandler.QueueStatus)

	// Session endpoints
	r.mux.HandleFunc("DELETE /api/session", r.intakeHandler.ClearSession)

	// Real-time queue updates
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/queue", r.sseHandler.StreamQueueUpdates)
	}

	// Operator view over recorded intake attempts; only available when the
	// audit database is configured.
	if r.auditHandler != nil {
		r.mux.HandleFunc("GET /api/intake/stats", r.auditHandler.IntakeStats)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
