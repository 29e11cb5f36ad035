package routes

import (
	"net/http"

	"github.com/avaintel/staffing-rates/internal/api/handlers"
	"github.com/avaintel/staffing-rates/internal/api/middleware"
	"github.com/avaintel/staffing-rates/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	rateHandler     *handlers.RateHandler
	clientHandler   *handlers.ClientHandler
	jobHandler      *handlers.JobHandler
	trendHandler    *handlers.TrendHandler
	forecastHandler *handlers.ForecastHandler
	vendorHandler   *handlers.VendorHandler
	leadHandler     *handlers.LeadHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	rateHandler *handlers.RateHandler,
	clientHandler *handlers.ClientHandler,
	jobHandler *handlers.JobHandler,
	trendHandler *handlers.TrendHandler,
	forecastHandler *handlers.ForecastHandler,
	vendorHandler *handlers.VendorHandler,
	leadHandler *handlers.LeadHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		rateHandler:     rateHandler,
		clientHandler:   clientHandler,
		jobHandler:      jobHandler,
		trendHandler:    trendHandler,
		forecastHandler: forecastHandler,
		vendorHandler:   vendorHandler,
		leadHandler:     leadHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
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

	// Rate endpoints
	r.mux.HandleFunc("GET /api/rates/market", r.rateHandler.GetMarketRate)
	r.mux.HandleFunc("GET /api/rates/highest", r.rateHandler.GetHighestRates)
	r.mux.HandleFunc("POST /api/rates/impact", r.rateHandler.AnalyzeRateImpact)

	// Client ranking endpoints
	r.mux.HandleFunc("GET /api/clients/rankings", r.clientHandler.GetClientRankings)

	// Job search endpoints
	r.mux.HandleFunc("GET /api/jobs/comparable", r.jobHandler.GetComparableJobs)
	r.mux.HandleFunc("GET /api/jobs/nearby", r.jobHandler.GetNearbyJobs)

	// Trend endpoints
	r.mux.HandleFunc("GET /api/trends", r.trendHandler.GetTrends)

	// Forecast endpoints
	if r.forecastHandler != nil {
		r.mux.HandleFunc("GET /api/forecast", r.forecastHandler.GetForecast)
	}

	// Vendor intelligence endpoints
	r.mux.HandleFunc("GET /api/vendors/activity", r.vendorHandler.GetVendorActivity)
	r.mux.HandleFunc("GET /api/vendors/{name}", r.vendorHandler.GetVendorSummary)

	// Lead endpoints
	r.mux.HandleFunc("GET /api/leads", r.leadHandler.GetLeads)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	handler = middleware.CORSMiddleware(handler)

	return handler
}
