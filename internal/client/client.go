// Package client is a typed Go client for the employee records API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/hestia/internal/models"
)

const (
	employeesPath = "/api/employees"
	UserAgent     = "hestia-client/1.0"
)

// APIError is returned for every response with a non-2xx status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type envelope struct {
	OK           bool            `json:"ok"`
	Data         json.RawMessage `json:"data"`
	RowsAffected int64           `json:"rowsAffected"`
	Message      string          `json:"message"`
	Error        string          `json:"error"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a client for the API served at baseURL, e.g. "http://localhost:5000".
func New(baseURL string, log *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url %s: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: CreateHTTPClient(log),
		log:        log,
	}, nil
}

// ListEmployees returns every employee.
func (c *Client) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	env, err := c.do(ctx, http.MethodGet, employeesPath, nil)
	if err != nil {
		return nil, err
	}

	var list []models.Employee
	if err = json.Unmarshal(env.Data, &list); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}

	return list, nil
}

// GetEmployee returns the employee with the given id.
func (c *Client) GetEmployee(ctx context.Context, identifier int) (models.Employee, error) {
	env, err := c.do(ctx, http.MethodGet, employeePath(identifier), nil)
	if err != nil {
		return models.Employee{}, err
	}

	var employee models.Employee
	if err = json.Unmarshal(env.Data, &employee); err != nil {
		return models.Employee{}, fmt.Errorf("failed to decode employee: %w", err)
	}

	return employee, nil
}

// CreateEmployee stores a new employee and returns it with its generated id.
func (c *Client) CreateEmployee(ctx context.Context, input models.EmployeeInput) (models.Employee, error) {
	env, err := c.do(ctx, http.MethodPost, employeesPath, input)
	if err != nil {
		return models.Employee{}, err
	}

	var employee models.Employee
	if err = json.Unmarshal(env.Data, &employee); err != nil {
		return models.Employee{}, fmt.Errorf("failed to decode created employee: %w", err)
	}

	return employee, nil
}

// UpdateEmployee overwrites the employee with the given id and returns the affected row count.
func (c *Client) UpdateEmployee(ctx context.Context, identifier int, input models.EmployeeInput) (int64, error) {
	env, err := c.do(ctx, http.MethodPut, employeePath(identifier), input)
	if err != nil {
		return 0, err
	}

	return env.RowsAffected, nil
}

// DeleteEmployee removes the employee with the given id and returns the affected row count.
func (c *Client) DeleteEmployee(ctx context.Context, identifier int) (int64, error) {
	env, err := c.do(ctx, http.MethodDelete, employeePath(identifier), nil)
	if err != nil {
		return 0, err
	}

	return env.RowsAffected, nil
}

func employeePath(identifier int) string {
	return employeesPath + "/" + strconv.Itoa(identifier)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (envelope, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return envelope{}, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return envelope{}, fmt.Errorf("failed to create new request %s %s: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return envelope{}, fmt.Errorf("failed to request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.DebugContext(ctx, "API response", "method", method, "path", path, "status", resp.StatusCode)

	var env envelope
	if err = json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return envelope{}, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return envelope{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.OK {
		return envelope{}, &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	return env, nil
}
