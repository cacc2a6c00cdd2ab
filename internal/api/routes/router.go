package routes

import (
	"net/http"

	"github.com/mark3labs/mcp-go/server"

	"github.com/medisense/backend/internal/api/handlers"
	"github.com/medisense/backend/internal/api/middleware"
	"github.com/medisense/backend/internal/infrastructure/observability"
	"github.com/medisense/backend/internal/mcp"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	catalogHandler   *handlers.CatalogHandler
	providerHandler  *handlers.ProviderHandler
	diagnosisHandler *handlers.DiagnosisHandler
	locationHandler  *handlers.LocationHandler
	sessionHandler   *handlers.SessionHandler
	adminHandler     *handlers.AdminHandler
	sseHandler       *handlers.SSEHandler

	opts Options
}

// Handlers groups the HTTP handlers served by the router
type Handlers struct {
	Catalog   *handlers.CatalogHandler
	Provider  *handlers.ProviderHandler
	Diagnosis *handlers.DiagnosisHandler
	Location  *handlers.LocationHandler
	Session   *handlers.SessionHandler
	Admin     *handlers.AdminHandler
	SSE       *handlers.SSEHandler
}

// Options wires the cross-cutting pieces around the handlers. Everything
// except AdminChecker may be left zero.
type Options struct {
	AdminChecker   middleware.AdminChecker
	MCPServer      *server.MCPServer
	Cache          *middleware.CacheMiddleware
	Metrics        *observability.Metrics
	AllowedOrigins []string
}

// NewRouter creates a new router
func NewRouter(h Handlers, opts Options) *Router {
	return &Router{
		mux: http.NewServeMux(),

		catalogHandler:   h.Catalog,
		providerHandler:  h.Provider,
		diagnosisHandler: h.Diagnosis,
		locationHandler:  h.Location,
		sessionHandler:   h.Session,
		adminHandler:     h.Admin,
		sseHandler:       h.SSE,

		opts: opts,
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

	// Reference data
	r.mux.HandleFunc("GET /api/catalog/symptoms", r.catalogHandler.ListSymptoms)
	r.mux.HandleFunc("GET /api/catalog/conditions", r.catalogHandler.ListConditions)
	r.mux.HandleFunc("GET /api/catalog/areas", r.catalogHandler.ListAreas)
	r.mux.HandleFunc("GET /api/catalog/time-slots", r.catalogHandler.ListTimeSlots)

	r.mux.HandleFunc("GET /api/providers", r.providerHandler.ListProviders)
	r.mux.HandleFunc("GET /api/providers/rank", r.providerHandler.RankProviders)

	// Stateless inference and resolution
	r.mux.HandleFunc("POST /api/diagnoses", r.diagnosisHandler.Infer)
	r.mux.HandleFunc("POST /api/locations/resolve", r.locationHandler.Resolve)

	// Patient workflow
	r.mux.HandleFunc("POST /api/sessions", r.sessionHandler.Create)
	r.mux.HandleFunc("GET /api/sessions/{id}", r.sessionHandler.Get)
	r.mux.HandleFunc("POST /api/sessions/{id}/login", r.sessionHandler.Login)
	r.mux.HandleFunc("POST /api/sessions/{id}/admin-login", r.sessionHandler.AdminLogin)
	r.mux.HandleFunc("PUT /api/sessions/{id}/location", r.sessionHandler.SetLocation)
	r.mux.HandleFunc("POST /api/sessions/{id}/location/confirm", r.sessionHandler.ConfirmLocation)
	r.mux.HandleFunc("POST /api/sessions/{id}/symptoms/toggle", r.sessionHandler.ToggleSymptom)
	r.mux.HandleFunc("DELETE /api/sessions/{id}/symptoms", r.sessionHandler.ClearSymptoms)
	r.mux.HandleFunc("POST /api/sessions/{id}/analyze", r.sessionHandler.Analyze)
	r.mux.HandleFunc("POST /api/sessions/{id}/provider", r.sessionHandler.ChooseProvider)
	r.mux.HandleFunc("PUT /api/sessions/{id}/booking-form", r.sessionHandler.UpdateBookingForm)
	r.mux.HandleFunc("POST /api/sessions/{id}/confirm", r.sessionHandler.ConfirmBooking)
	r.mux.HandleFunc("POST /api/sessions/{id}/back", r.sessionHandler.Back)
	r.mux.HandleFunc("POST /api/sessions/{id}/reset", r.sessionHandler.Reset)

	// Admin dashboard
	admin := middleware.RequireAdmin(r.opts.AdminChecker)
	r.mux.Handle("GET /api/admin/bookings", admin(http.HandlerFunc(r.adminHandler.ListBookings)))
	r.mux.Handle("GET /api/admin/bookings/export", admin(http.HandlerFunc(r.adminHandler.ExportBookings)))
	r.mux.Handle("GET /api/admin/bookings/{id}", admin(http.HandlerFunc(r.adminHandler.GetBooking)))
	r.mux.Handle("POST /api/admin/bookings/{id}/toggle", admin(http.HandlerFunc(r.adminHandler.ToggleBooking)))
	r.mux.Handle("GET /api/admin/stats", admin(http.HandlerFunc(r.adminHandler.Stats)))
	r.mux.Handle("GET /api/admin/providers", admin(http.HandlerFunc(r.adminHandler.ListProviders)))
	if r.sseHandler != nil {
		r.mux.Handle("GET /api/admin/stream", admin(http.HandlerFunc(r.sseHandler.StreamBookings)))
	}

	// MCP tools
	if r.opts.MCPServer != nil {
		mcp.MountHTTPHandlers(r.mux, r.opts.MCPServer)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.opts.Cache != nil {
		handler = r.opts.Cache.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.opts.Metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	origins := r.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	handler = middleware.NewCORS(origins).Middleware(handler)

	return handler
}
