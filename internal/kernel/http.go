// Package kernel builds the HTTP handler: the global middleware stack, the
// operational endpoints, and the API routes.
package kernel

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/routes"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/metrics"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/middleware"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/reqid"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/router"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/ws"
)

// Handler assembles the full HTTP handler.
//
// Global middleware, outermost first:
//  1. Prometheus metrics, outermost for accurate total latency
//  2. Recovery, catches panics before they kill the goroutine
//  3. Request ID, injected before anything logs
//  4. Logger, logs request_id from context
//  5. CORS
//  6. Rate limiter, rejects abusers early
func Handler(db *gorm.DB, hub *ws.Hub) http.Handler {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	// Prometheus endpoint: no auth, no rate limit exemption needed at this
	// traffic level.
	r.HandleFunc("/metrics", metrics.Handler())

	routes.RegisterAPI(r, db, hub)

	return r.Handler()
}

// NewRouter builds a bare router with the API routes but no global
// middleware. Tests use it to drive controllers through httptest.
func NewRouter(db *gorm.DB) *router.Router {
	r := router.New()
	routes.RegisterAPI(r, db, nil)
	return r
}
