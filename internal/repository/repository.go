package repository

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
)

// ErrEmployeeNotFound is returned when no row matches the requested employee id.
var ErrEmployeeNotFound = errors.New("employee not found")

type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployeeByID(ctx context.Context, identifier int) (models.Employee, error)
	SaveEmployee(ctx context.Context, employee models.Employee) (int, error)
	UpdateEmployee(ctx context.Context, employee models.Employee) (int64, error)
	DeleteEmployee(ctx context.Context, identifier int) (int64, error)
}

func NewEmployeeRepository(db Database, metrics *metrics.Metrics) EmployeeRepoIface {
	return &Repository{db: db, metrics: metrics}
}
