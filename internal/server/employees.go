package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
)

const maxBodyBytes = 1 << 20

const (
	msgInvalidID       = "Valid employee ID is required"
	msgInvalidBody     = "Request body must be a JSON object with EmpName, MobileNumber, department and salary"
	msgNotFound        = "No employee found with this ID"
	msgListFailed      = "Error fetching employees"
	msgGetFailed       = "Error fetching employee by ID"
	msgCreateFailed    = "Internal Server Error while adding employee"
	msgUpdateFailed    = "Internal Server Error while updating employee"
	msgDeleteFailed    = "Internal Server Error while deleting employee"
	msgEmployeeCreated = "Employee added successfully"
	msgEmployeeUpdated = "Employee updated successfully"
	msgEmployeeDeleted = "Employee deleted successfully"
)

// EmployeeService is the set of operations the API exposes over employees.
type EmployeeService interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployee(ctx context.Context, identifier int) (models.Employee, error)
	CreateEmployee(ctx context.Context, input models.EmployeeInput) (models.Employee, error)
	UpdateEmployee(ctx context.Context, identifier int, input models.EmployeeInput) (int64, error)
	DeleteEmployee(ctx context.Context, identifier int) (int64, error)
}

// EmployeeHandler serves the /api/employees resource.
type EmployeeHandler struct {
	service EmployeeService
	log     *slog.Logger
}

func NewEmployeeHandler(service EmployeeService, log *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{service: service, log: log.With(slog.String("division", "api"))}
}

// Routes mounts the employee endpoints on r.
func (h *EmployeeHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *EmployeeHandler) List(writer http.ResponseWriter, req *http.Request) {
	list, err := h.service.ListEmployees(req.Context())
	if err != nil {
		h.log.ErrorContext(req.Context(), "Error fetching employees", sl.Err(err))
		writeError(writer, req, h.log, http.StatusInternalServerError, msgListFailed)
		return
	}

	writeJSON(writer, req, h.log, http.StatusOK, Envelope{OK: true, Data: list})
}

func (h *EmployeeHandler) Get(writer http.ResponseWriter, req *http.Request) {
	identifier, ok := h.parseID(writer, req)
	if !ok {
		return
	}

	employee, err := h.service.GetEmployee(req.Context(), identifier)
	switch {
	case errors.Is(err, employees.ErrNotFound):
		writeError(writer, req, h.log, http.StatusNotFound, msgNotFound)
	case err != nil:
		h.log.ErrorContext(req.Context(), "Error fetching employee by ID", "id", identifier, sl.Err(err))
		writeError(writer, req, h.log, http.StatusInternalServerError, msgGetFailed)
	default:
		writeJSON(writer, req, h.log, http.StatusOK, Envelope{OK: true, Data: employee})
	}
}

func (h *EmployeeHandler) Create(writer http.ResponseWriter, req *http.Request) {
	input, ok := h.decodeInput(writer, req)
	if !ok {
		return
	}

	employee, err := h.service.CreateEmployee(req.Context(), input)
	switch {
	case errors.Is(err, employees.ErrInvalidEmployee):
		writeError(writer, req, h.log, http.StatusBadRequest, err.Error())
	case err != nil:
		h.log.ErrorContext(req.Context(), "Error adding employee", sl.Err(err))
		writeError(writer, req, h.log, http.StatusInternalServerError, msgCreateFailed)
	default:
		writeJSON(writer, req, h.log, http.StatusCreated, Envelope{
			OK:           true,
			Data:         employee,
			RowsAffected: rows(1),
			Message:      msgEmployeeCreated,
		})
	}
}

func (h *EmployeeHandler) Update(writer http.ResponseWriter, req *http.Request) {
	identifier, ok := h.parseID(writer, req)
	if !ok {
		return
	}

	input, ok := h.decodeInput(writer, req)
	if !ok {
		return
	}

	affected, err := h.service.UpdateEmployee(req.Context(), identifier, input)
	switch {
	case errors.Is(err, employees.ErrInvalidEmployee):
		writeError(writer, req, h.log, http.StatusBadRequest, err.Error())
	case errors.Is(err, employees.ErrNotFound):
		writeJSON(writer, req, h.log, http.StatusNotFound, Envelope{OK: false, RowsAffected: rows(0), Error: msgNotFound})
	case err != nil:
		h.log.ErrorContext(req.Context(), "Error updating employee", "id", identifier, sl.Err(err))
		writeError(writer, req, h.log, http.StatusInternalServerError, msgUpdateFailed)
	default:
		writeJSON(writer, req, h.log, http.StatusOK, Envelope{
			OK:           true,
			RowsAffected: rows(affected),
			Message:      msgEmployeeUpdated,
		})
	}
}

func (h *EmployeeHandler) Delete(writer http.ResponseWriter, req *http.Request) {
	identifier, ok := h.parseID(writer, req)
	if !ok {
		return
	}

	affected, err := h.service.DeleteEmployee(req.Context(), identifier)
	switch {
	case errors.Is(err, employees.ErrNotFound):
		writeJSON(writer, req, h.log, http.StatusNotFound, Envelope{OK: false, RowsAffected: rows(0), Error: msgNotFound})
	case err != nil:
		h.log.ErrorContext(req.Context(), "Error deleting employee", "id", identifier, sl.Err(err))
		writeError(writer, req, h.log, http.StatusInternalServerError, msgDeleteFailed)
	default:
		writeJSON(writer, req, h.log, http.StatusOK, Envelope{
			OK:           true,
			RowsAffected: rows(affected),
			Message:      msgEmployeeDeleted,
		})
	}
}

// parseID reads the {id} path parameter. Ids are 32-bit integers, matching the storage column.
func (h *EmployeeHandler) parseID(writer http.ResponseWriter, req *http.Request) (int, bool) {
	identifier, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 32)
	if err != nil {
		writeError(writer, req, h.log, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}

	return int(identifier), true
}

func (h *EmployeeHandler) decodeInput(writer http.ResponseWriter, req *http.Request) (models.EmployeeInput, bool) {
	var input models.EmployeeInput

	req.Body = http.MaxBytesReader(writer, req.Body, maxBodyBytes)
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		h.log.DebugContext(req.Context(), "Malformed employee body", sl.Err(err))
		writeError(writer, req, h.log, http.StatusBadRequest, msgInvalidBody)
		return models.EmployeeInput{}, false
	}

	return input, true
}
