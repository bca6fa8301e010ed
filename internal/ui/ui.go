// Package ui serves the single page employee form and table.
//
// The page is rendered with the current employee list so it is usable before any script
// runs; the embedded app.js then takes over, calling the JSON API for every change and
// refetching the list after each mutation.
package ui

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/models"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// APIBase is the path prefix the page script sends requests to.
const APIBase = "/api/employees"

// EmployeeLister provides the list rendered into the initial page.
type EmployeeLister interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
}

type pageData struct {
	Employees []models.Employee
	LoadError string
	APIBase   string
}

type Handler struct {
	log    *slog.Logger
	lister EmployeeLister
	page   *template.Template
	mux    *http.ServeMux
}

// NewHandler creates the UI handler. It panics if the embedded assets are broken,
// which can only happen at build time.
func NewHandler(log *slog.Logger, lister EmployeeLister) *Handler {
	page := template.Must(template.ParseFS(templateFiles, "templates/index.html"))

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	h := &Handler{
		log:    log.With(slog.String("division", "ui")),
		lister: lister,
		page:   page,
		mux:    http.NewServeMux(),
	}

	h.mux.HandleFunc("GET /{$}", h.index)
	h.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	return h
}

func (h *Handler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	h.mux.ServeHTTP(writer, req)
}

func (h *Handler) index(writer http.ResponseWriter, req *http.Request) {
	data := pageData{APIBase: APIBase, Employees: []models.Employee{}}

	employees, err := h.lister.ListEmployees(req.Context())
	if err != nil {
		h.log.ErrorContext(req.Context(), "Failed to load employees for page", sl.Err(err))
		data.LoadError = "Error fetching employees"
	} else {
		data.Employees = employees
	}

	var buf bytes.Buffer
	if err = h.page.Execute(&buf, data); err != nil {
		h.log.ErrorContext(req.Context(), "Failed to render page", sl.Err(err))
		http.Error(writer, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(http.StatusOK)
	if _, err = buf.WriteTo(writer); err != nil {
		h.log.WarnContext(req.Context(), "Failed to write page", sl.Err(err))
	}
}
