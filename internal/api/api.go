// Package api serves chart derivation over HTTP.
//
// Two styles of use are supported. POST /derive is stateless: it derives a
// spec through the shared [pipeline.Runner] and its cache. The /charts
// routes host long-lived chart instances, each backed by a
// [shell.Wrapper], so clients can push interaction and spec updates and
// observe the recompute and render decisions.
//
// # Routes
//
//	POST   /derive                    derive a spec, no state kept
//	POST   /charts                    create a hosted chart
//	GET    /charts/{id}               current view of a chart
//	PATCH  /charts/{id}/interaction   apply transient pointer/tooltip state
//	PUT    /charts/{id}               replace the chart spec
//	DELETE /charts/{id}               drop a chart
//	GET    /healthz                   liveness and build info
//
// Specs are JSON documents in the same shape as spec files. Data must be
// inline. Specs naming a data_file are rejected.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/chartgeom/pkg/observability"
	"github.com/matzehuels/chartgeom/pkg/pipeline"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 4 << 20

// Server is the HTTP handler for the chart API.
type Server struct {
	runner *pipeline.Runner
	charts *Registry
	logger *log.Logger
	router chi.Router
}

// New creates a server deriving through runner. A nil logger discards
// output.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner: runner,
		charts: NewRegistry(runner.Pipeline(), logger),
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// Charts returns the registry of hosted charts.
func (s *Server) Charts() *Registry { return s.charts }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Post("/derive", s.handleDerive)
	r.Route("/charts", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handleReplace)
			r.Delete("/", s.handleDelete)
			r.Patch("/interaction", s.handleInteraction)
		})
	})
	return r
}

// observe reports every request to the API hooks and logs it at debug level.
// Responses are reported under the matched route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.API()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
