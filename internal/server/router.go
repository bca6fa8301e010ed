package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/UnknownOlympus/hestia/internal/metrics"
)

// NewRouter creates the public HTTP router: the employee API under /api/employees
// and, when ui is not nil, the single page UI under / and /static/.
func NewRouter(log *slog.Logger, appMetrics *metrics.Metrics, service EmployeeService, ui http.Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(RequestLogger(log, appMetrics))
	router.Use(middleware.Recoverer)
	router.Use(CORS)

	employeeHandler := NewEmployeeHandler(service, log)

	router.Route("/api", func(r chi.Router) {
		r.NotFound(func(writer http.ResponseWriter, req *http.Request) {
			writeError(writer, req, log, http.StatusNotFound, "route not found")
		})
		r.MethodNotAllowed(func(writer http.ResponseWriter, req *http.Request) {
			writeError(writer, req, log, http.StatusMethodNotAllowed, "method not allowed")
		})

		r.Route("/employees", employeeHandler.Routes)
	})

	if ui != nil {
		router.Handle("/", ui)
		router.Handle("/static/*", ui)
	}

	return router
}
