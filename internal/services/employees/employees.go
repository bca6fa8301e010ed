package employees

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
)

var (
	// ErrInvalidEmployee is returned when an employee input is missing a required field
	// or carries an out-of-range value.
	ErrInvalidEmployee = errors.New("invalid employee")
	// ErrNotFound is returned when no employee matches the requested id.
	ErrNotFound = repository.ErrEmployeeNotFound
)

type Staff struct {
	log      *slog.Logger
	repo     repository.EmployeeRepoIface
	metrics  *metrics.Metrics
	validate *validator.Validate
}

func NewStaff(log *slog.Logger, repo repository.EmployeeRepoIface, metrics *metrics.Metrics) *Staff {
	return &Staff{log: log, repo: repo, metrics: metrics, validate: newValidator()}
}

func (s *Staff) initLogger(opn string) *slog.Logger {
	return s.log.With(
		sl.Op(opn),
		slog.String("division", "employee"),
	)
}

func (s *Staff) countMutation(operation string) {
	if s.metrics != nil {
		s.metrics.EmployeeMutations.WithLabelValues(operation).Inc()
	}
}

// ListEmployees returns all stored employees.
func (s *Staff) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	const opn = "Employee.List"
	log := s.initLogger(opn)

	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	log.DebugContext(ctx, "employees listed", "count", len(employees))

	return employees, nil
}

// GetEmployee returns the employee with the given id, or ErrNotFound.
func (s *Staff) GetEmployee(ctx context.Context, identifier int) (models.Employee, error) {
	employee, err := s.repo.GetEmployeeByID(ctx, identifier)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee %d: %w", identifier, err)
	}

	return employee, nil
}

// CreateEmployee validates the input and stores a new employee.
// The returned employee carries the id assigned by storage.
func (s *Staff) CreateEmployee(ctx context.Context, input models.EmployeeInput) (models.Employee, error) {
	const opn = "Employee.Create"
	log := s.initLogger(opn)

	if err := s.ValidateEmployee(input); err != nil {
		log.DebugContext(ctx, "rejected employee input", sl.Err(err))
		return models.Employee{}, err
	}

	employee := input.ToEmployee(0)

	identifier, err := s.repo.SaveEmployee(ctx, employee)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to save new employee '%s': %w", employee.Name, err)
	}
	employee.ID = identifier

	s.countMutation("create")
	log.InfoContext(ctx, "employee created", "id", identifier)

	return employee, nil
}

// UpdateEmployee overwrites all four fields of an existing employee.
// It returns the number of affected rows, or ErrNotFound when the id matches no row.
func (s *Staff) UpdateEmployee(ctx context.Context, identifier int, input models.EmployeeInput) (int64, error) {
	const opn = "Employee.Update"
	log := s.initLogger(opn)

	if err := s.ValidateEmployee(input); err != nil {
		log.DebugContext(ctx, "rejected employee input", "id", identifier, sl.Err(err))
		return 0, err
	}

	affected, err := s.repo.UpdateEmployee(ctx, input.ToEmployee(identifier))
	if err != nil {
		return 0, fmt.Errorf("failed to update employee %d: %w", identifier, err)
	}
	if affected == 0 {
		return 0, fmt.Errorf("failed to update employee %d: %w", identifier, ErrNotFound)
	}

	s.countMutation("update")
	log.InfoContext(ctx, "employee updated", "id", identifier)

	return affected, nil
}

// DeleteEmployee removes an employee. It returns the number of affected rows,
// or ErrNotFound when the id matches no row.
func (s *Staff) DeleteEmployee(ctx context.Context, identifier int) (int64, error) {
	const opn = "Employee.Delete"
	log := s.initLogger(opn)

	affected, err := s.repo.DeleteEmployee(ctx, identifier)
	if err != nil {
		return 0, fmt.Errorf("failed to delete employee %d: %w", identifier, err)
	}
	if affected == 0 {
		return 0, fmt.Errorf("failed to delete employee %d: %w", identifier, ErrNotFound)
	}

	s.countMutation("delete")
	log.InfoContext(ctx, "employee deleted", "id", identifier)

	return affected, nil
}

// ValidateEmployee checks that every field of the input is present. Salary is checked for
// presence and range, so a salary of zero is valid.
func (s *Staff) ValidateEmployee(input models.EmployeeInput) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidEmployee, err)
	}

	return fmt.Errorf("%w: %s", ErrInvalidEmployee, describe(validationErrs))
}
