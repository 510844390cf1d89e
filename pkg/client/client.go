// Package client is a Go SDK for the live gallery API: typed REST
// calls, a WebSocket event subscriber, and a locally mirrored object
// list that stays consistent with server broadcasts.
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

// User is the public account projection returned by the API.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthResult pairs an account with its access token.
type AuthResult struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

// Owner identifies the account that created an object.
type Owner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Object is a gallery entry.
type Object struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	CreatedBy   Owner     `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Meta describes a page of results.
type Meta struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// ObjectPage is a page of objects with its pagination metadata.
type ObjectPage struct {
	Data       []Object `json:"data"`
	Pagination Meta     `json:"pagination"`
}

// ListQuery selects a page of the object listing.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

// Upload carries the fields and image payload for creating an object.
type Upload struct {
	Title       string
	Description string
	Filename    string
	ContentType string
	Data        []byte
}

// APIError is a non-success response from the server.
type APIError struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

// Client calls the gallery REST API.
type Client struct {
	base  string
	http  *http.Client
	token string
}

// New creates a Client for the given base URL, e.g.
// "http://localhost:8080/api/v1".
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken sets the bearer token used for authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Register creates an account and retains its token for subsequent
// calls.
func (c *Client) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.postJSON(ctx, "/auth/register", map[string]string{
		"username": username,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}

	c.token = result.AccessToken
	return &result, nil
}

// Login authenticates and retains the token for subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.postJSON(ctx, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}

	c.token = result.AccessToken
	return &result, nil
}

// Objects fetches a page of the listing.
func (c *Client) Objects(ctx context.Context, q ListQuery) (*ObjectPage, error) {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}

	path := "/objects"
	if len(values) > 0 {
		path += "?" + values.Encode()
	}

	var result ObjectPage
	if err := c.do(ctx, http.MethodGet, path, nil, "", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Object fetches a single entry by id.
func (c *Client) Object(ctx context.Context, id string) (*Object, error) {
	var result Object
	if err := c.do(ctx, http.MethodGet, "/objects/"+id, nil, "", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateObject uploads an image and creates its entry.
func (c *Client) CreateObject(ctx context.Context, upload Upload) (*Object, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	form.WriteField("title", upload.Title)
	if upload.Description != "" {
		form.WriteField("description", upload.Description)
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="image"; filename=%q`, upload.Filename))
	header.Set("Content-Type", upload.ContentType)

	part, err := form.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, fmt.Errorf("write form part: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	var result Object
	if err := c.do(ctx, http.MethodPost, "/objects", &buf, form.FormDataContentType(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteObject removes an entry the authenticated user owns.
func (c *Client) DeleteObject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/objects/"+id, nil, "", nil)
}

// Profile fetches the authenticated user's account.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var result User
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, "", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	return c.do(ctx, http.MethodPost, path, bytes.NewReader(payload), "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if res.StatusCode >= http.StatusBadRequest {
		return &APIError{
			Status:  env.Status,
			Message: env.Message,
			Errors:  env.Errors,
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}

	return nil
}
