package client_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/UnknownOlympus/hestia/internal/client"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/UnknownOlympus/hestia/internal/server"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo is an in-memory EmployeeRepoIface used to run the full HTTP stack without a database.
type memoryRepo struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]models.Employee
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, rows: make(map[int]models.Employee)}
}

func (m *memoryRepo) ListEmployees(_ context.Context) ([]models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]models.Employee, 0, len(m.rows))
	for _, e := range m.rows {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	return list, nil
}

func (m *memoryRepo) GetEmployeeByID(_ context.Context, identifier int) (models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.rows[identifier]
	if !ok {
		return models.Employee{}, repository.ErrEmployeeNotFound
	}

	return e, nil
}

func (m *memoryRepo) SaveEmployee(_ context.Context, employee models.Employee) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	employee.ID = m.nextID
	m.rows[employee.ID] = employee
	m.nextID++

	return employee.ID, nil
}

func (m *memoryRepo) UpdateEmployee(_ context.Context, employee models.Employee) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[employee.ID]; !ok {
		return 0, nil
	}
	m.rows[employee.ID] = employee

	return 1, nil
}

func (m *memoryRepo) DeleteEmployee(_ context.Context, identifier int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[identifier]; !ok {
		return 0, nil
	}
	delete(m.rows, identifier)

	return 1, nil
}

func salary(v int) *int { return &v }

func newTestClient(t *testing.T) (*client.Client, *memoryRepo) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := newMemoryRepo()
	staff := employees.NewStaff(logger, repo, nil)

	srv := httptest.NewServer(server.NewRouter(logger, nil, staff, nil))
	t.Cleanup(srv.Close)

	apiClient, err := client.New(srv.URL, logger)
	require.NoError(t, err)

	return apiClient, repo
}

func TestNew_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	_, err := client.New("localhost:5000/api", slog.Default())
	require.Error(t, err)

	_, err = client.New("/relative", slog.Default())
	require.Error(t, err)
}

func TestEmployeeLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	apiClient, _ := newTestClient(t)

	created, err := apiClient.CreateEmployee(ctx, models.EmployeeInput{
		Name: "A", MobileNumber: "1", Department: "D", Salary: salary(100),
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	list, err := apiClient.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.Employee{ID: created.ID, Name: "A", MobileNumber: "1", Department: "D", Salary: 100}, list[0])

	affected, err := apiClient.UpdateEmployee(ctx, created.ID, models.EmployeeInput{
		Name: "A", MobileNumber: "1", Department: "D", Salary: salary(200),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	fetched, err := apiClient.GetEmployee(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 200, fetched.Salary)
	assert.Equal(t, created.ID, fetched.ID)

	affected, err = apiClient.DeleteEmployee(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = apiClient.GetEmployee(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
}

func TestUpdateChangesAllFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	apiClient, _ := newTestClient(t)

	created, err := apiClient.CreateEmployee(ctx, models.EmployeeInput{
		Name: "Old", MobileNumber: "000", Department: "Ops", Salary: salary(1),
	})
	require.NoError(t, err)

	_, err = apiClient.UpdateEmployee(ctx, created.ID, models.EmployeeInput{
		Name: "New", MobileNumber: "111", Department: "Dev", Salary: salary(0),
	})
	require.NoError(t, err)

	fetched, err := apiClient.GetEmployee(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Employee{ID: created.ID, Name: "New", MobileNumber: "111", Department: "Dev", Salary: 0}, fetched)
}

func TestNotFoundOnEmptyTable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	apiClient, _ := newTestClient(t)

	_, err := apiClient.GetEmployee(ctx, 999999)
	assert.True(t, client.IsNotFound(err))

	affected, err := apiClient.DeleteEmployee(ctx, 999999)
	assert.True(t, client.IsNotFound(err))
	assert.Zero(t, affected)

	affected, err = apiClient.UpdateEmployee(ctx, 999999, models.EmployeeInput{
		Name: "A", MobileNumber: "1", Department: "D", Salary: salary(1),
	})
	assert.True(t, client.IsNotFound(err))
	assert.Zero(t, affected)
}

func TestCreateWithoutSalaryCreatesNoRow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	apiClient, repo := newTestClient(t)

	_, err := apiClient.CreateEmployee(ctx, models.EmployeeInput{Name: "A", MobileNumber: "1", Department: "D"})

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "salary is required")

	list, err := repo.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAPIError_NonJSONBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	apiClient, err := client.New(srv.URL, slog.Default())
	require.NoError(t, err)

	_, err = apiClient.ListEmployees(context.Background())

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.False(t, client.IsNotFound(err))
}
