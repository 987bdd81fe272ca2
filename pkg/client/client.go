// Package client is the programmatic gateway to the employee API: one
// method per endpoint, an explicit credential with a set/clear
// lifecycle, and the server's error payload surfaced verbatim. No
// retries, no caching.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Address mirrors the nested address object on the wire.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Employee mirrors one employee record on the wire.
type Employee struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	EmployeeType   string    `json:"employeeType"`
	ProfilePicture string    `json:"profilePicture"`
	Phone          string    `json:"phone,omitempty"`
	Position       string    `json:"position,omitempty"`
	Department     string    `json:"department,omitempty"`
	JoiningDate    string    `json:"joiningDate,omitempty"`
	Salary         float64   `json:"salary,omitempty"`
	Status         string    `json:"status,omitempty"`
	Address        *Address  `json:"address,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FileUpload is an optional profile picture attached to a write.
type FileUpload struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// EmployeeForm carries write-request fields. Nil pointers are omitted
// from the multipart body entirely, so updates stay partial.
type EmployeeForm struct {
	FirstName      *string
	LastName       *string
	Email          *string
	EmployeeType   *string
	Phone          *string
	Position       *string
	Department     *string
	JoiningDate    *string
	Salary         *float64
	Status         *string
	Address        *Address
	ProfilePicture *FileUpload
}

// APIError carries the server's error payload through unchanged.
type APIError struct {
	StatusCode int
	ErrorText  string            `json:"error"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.ErrorText != "" {
		return e.ErrorText
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Client calls the employee API. The credential lives on the client
// value; there is no ambient token storage.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets an already-issued bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a gateway for the API at baseURL (e.g.
// "http://localhost:5000").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SignIn exchanges credentials for a token and stores it on the client.
func (c *Client) SignIn(ctx context.Context, email, password string) error {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(req, &out); err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

// SignOut clears the stored credential.
func (c *Client) SignOut() { c.token = "" }

// ListEmployees returns all records, newest first.
func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	var out []Employee
	if err := c.get(ctx, "/api/employees", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchEmployees returns records matching query, best match first.
func (c *Client) SearchEmployees(ctx context.Context, query string) ([]Employee, error) {
	var out []Employee
	path := "/api/employees/search?query=" + url.QueryEscape(query)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEmployee fetches one record by id.
func (c *Client) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	var out Employee
	if err := c.get(ctx, "/api/employees/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateEmployee submits a new record, optionally with a picture.
func (c *Client) CreateEmployee(ctx context.Context, form EmployeeForm) (*Employee, error) {
	var out Employee
	if err := c.submit(ctx, http.MethodPost, "/api/employees", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEmployee submits a partial update for id.
func (c *Client) UpdateEmployee(ctx context.Context, id string, form EmployeeForm) (*Employee, error) {
	var out Employee
	if err := c.submit(ctx, http.MethodPut, "/api/employees/"+url.PathEscape(id), form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEmployee removes the record permanently.
func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/employees/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) submit(ctx context.Context, method, path string, form EmployeeForm, out interface{}) error {
	body, contentType, err := encodeForm(form)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: res.StatusCode}
		if jsonErr := json.Unmarshal(data, apiErr); jsonErr != nil {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func encodeForm(form EmployeeForm) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]*string{
		"firstName":    form.FirstName,
		"lastName":     form.LastName,
		"email":        form.Email,
		"employeeType": form.EmployeeType,
		"phone":        form.Phone,
		"position":     form.Position,
		"department":   form.Department,
		"joiningDate":  form.JoiningDate,
		"status":       form.Status,
	}
	for name, val := range fields {
		if val == nil {
			continue
		}
		if err := w.WriteField(name, *val); err != nil {
			return nil, "", err
		}
	}

	if form.Salary != nil {
		if err := w.WriteField("salary", strconv.FormatFloat(*form.Salary, 'f', -1, 64)); err != nil {
			return nil, "", err
		}
	}

	if form.Address != nil {
		addr, err := json.Marshal(form.Address)
		if err != nil {
			return nil, "", err
		}
		if err := w.WriteField("address", string(addr)); err != nil {
			return nil, "", err
		}
	}

	if form.ProfilePicture != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="profilePicture"; filename=%q`, form.ProfilePicture.Name))
		header.Set("Content-Type", form.ProfilePicture.ContentType)

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, form.ProfilePicture.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
