package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/jackc/pgx/v5"
)

const (
	listEmployeesQuery = `SELECT emp_id, emp_name, mobile_number, department, salary FROM employees ORDER BY emp_id`

	getEmployeeByIDQuery = `SELECT emp_id, emp_name, mobile_number, department, salary FROM employees WHERE emp_id = $1`

	saveEmployeeQuery = `
		INSERT INTO employees (emp_name, mobile_number, department, salary)
		VALUES ($1, $2, $3, $4)
		RETURNING emp_id;
	`

	updateEmployeeQuery = `
		UPDATE employees
		SET emp_name = $2, mobile_number = $3, department = $4, salary = $5
		WHERE emp_id = $1;
	`

	deleteEmployeeQuery = `DELETE FROM employees WHERE emp_id = $1`
)

// observe records the duration of a query started at startTime under the given query type.
func (r *Repository) observe(queryType string, startTime time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(startTime).Seconds())
}

// ListEmployees returns every employee ordered by id. An empty table yields an empty, non-nil slice.
func (r *Repository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	defer r.observe("list_employees", time.Now())

	rows, err := r.db.Query(ctx, listEmployeesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		var employee models.Employee
		if err = rows.Scan(
			&employee.ID, &employee.Name, &employee.MobileNumber, &employee.Department, &employee.Salary,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, employee)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee rows: %w", err)
	}

	return employees, nil
}

// GetEmployeeByID retrieves an employee from the database by their ID.
// It returns ErrEmployeeNotFound when no row matches.
func (r *Repository) GetEmployeeByID(ctx context.Context, identifier int) (models.Employee, error) {
	var result models.Employee

	defer r.observe("get_employee_by_id", time.Now())

	err := r.db.QueryRow(ctx, getEmployeeByIDQuery, identifier).Scan(
		&result.ID, &result.Name, &result.MobileNumber, &result.Department, &result.Salary)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Employee{}, fmt.Errorf("failed to get employee by id %d: %w", identifier, ErrEmployeeNotFound)
		}
		return models.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return result, nil
}

// SaveEmployee inserts a new employee and returns the id assigned by the database.
// The ID field of the given employee is ignored.
func (r *Repository) SaveEmployee(ctx context.Context, employee models.Employee) (int, error) {
	var identifier int

	defer r.observe("save_employee", time.Now())

	err := r.db.QueryRow(ctx, saveEmployeeQuery,
		employee.Name, employee.MobileNumber, employee.Department, employee.Salary,
	).Scan(&identifier)
	if err != nil {
		return 0, fmt.Errorf("failed to save employee: %w", err)
	}

	return identifier, nil
}

// UpdateEmployee overwrites all fields of the employee with the given ID and returns
// the number of affected rows. Zero rows means the employee does not exist.
func (r *Repository) UpdateEmployee(ctx context.Context, employee models.Employee) (int64, error) {
	defer r.observe("update_employee", time.Now())

	tag, err := r.db.Exec(ctx, updateEmployeeQuery,
		employee.ID, employee.Name, employee.MobileNumber, employee.Department, employee.Salary,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update employee data: %w", err)
	}

	return tag.RowsAffected(), nil
}

// DeleteEmployee removes the employee with the given ID and returns the number of affected rows.
func (r *Repository) DeleteEmployee(ctx context.Context, identifier int) (int64, error) {
	defer r.observe("delete_employee", time.Now())

	tag, err := r.db.Exec(ctx, deleteEmployeeQuery, identifier)
	if err != nil {
		return 0, fmt.Errorf("failed to delete employee: %w", err)
	}

	return tag.RowsAffected(), nil
}
