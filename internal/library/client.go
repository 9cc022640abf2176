package library

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Catalog defines the operations the UI needs from the library server.
// This interface is implemented by *Client and can be used for testing.
type Catalog interface {
	Login(ctx context.Context, creds Credentials) (string, error)
	Register(ctx context.Context, creds Credentials) error
	Logout(ctx context.Context) error
	ListBooks(ctx context.Context) ([]Book, error)
	SearchBooks(ctx context.Context, query string) ([]Book, error)
	SaveBook(ctx context.Context, draft BookDraft) error
	BorrowBook(ctx context.Context, id int64) error
	ReturnBook(ctx context.Context, id int64) error
	DeleteBook(ctx context.Context, id int64) error
	HasBorrowed(ctx context.Context, id int64) (bool, error)
}

// Ensure Client implements Catalog at compile time.
var _ Catalog = (*Client)(nil)

// ErrUnauthorized reports that the server rejected the session. The UI treats
// it as an expired login and returns to the login view.
var ErrUnauthorized = errors.New("unauthorized")

// StatusError is returned for non-2xx responses other than transport failures.
// Body holds the response text so callers can surface server messages.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Is maps 401 responses onto ErrUnauthorized for errors.Is checks.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Client talks to the library server's HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultServerURL = "http://127.0.0.1:8080"
	defaultUserAgent = "stacks/0.1"
	requestTimeout   = 10 * time.Second
	maxErrorBody     = 4 << 10
)

// NewClient builds a Client for the provided server URL or host:port value.
// The client carries a cookie jar so the session issued at login accompanies
// every later request.
func NewClient(serverURL string) (*Client, error) {
	base, err := parseBaseURL(serverURL)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("init cookie jar: %w", err)
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Login authenticates the user and returns the role granted by the server.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	var payload LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", creds, &payload); err != nil {
		return "", err
	}
	return payload.Role, nil
}

// Register creates a new account. Non-OK responses carry the server's message
// in the returned StatusError body.
func (c *Client) Register(ctx context.Context, creds Credentials) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/register", creds, nil)
}

// Logout ends the server-side session. Callers treat failures as best-effort.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// ListBooks retrieves the full catalog.
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.doJSON(ctx, http.MethodGet, "/api/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// SearchBooks runs a server-side title/author search. The query is trimmed and
// path-escaped before it goes on the wire.
func (c *Client) SearchBooks(ctx context.Context, query string) ([]Book, error) {
	trimmed := strings.TrimSpace(query)
	var books []Book
	path := "/api/books/search/" + url.PathEscape(trimmed)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// SaveBook submits a create or update depending on draft.ID. Both go as
// multipart form posts so an optional cover image can ride along.
func (c *Client) SaveBook(ctx context.Context, draft BookDraft) error {
	path := "/api/books"
	if draft.ID > 0 {
		path = fmt.Sprintf("/api/books/%d/update-with-image", draft.ID)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writeDraftForm(writer, draft); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close form: %w", err)
	}

	return c.doBody(ctx, http.MethodPost, path, &buf, writer.FormDataContentType(), nil)
}

// BorrowBook marks a book as borrowed by the current user.
func (c *Client) BorrowBook(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/books/%d/borrow", id), nil, nil)
}

// ReturnBook releases a borrow held by the current user.
func (c *Client) ReturnBook(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/books/%d/return", id), nil, nil)
}

// DeleteBook removes a book from the catalog.
func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/books/%d", id), nil, nil)
}

// HasBorrowed reports whether the current user holds the given book.
func (c *Client) HasBorrowed(ctx context.Context, id int64) (bool, error) {
	var payload BorrowCheck
	path := fmt.Sprintf("/api/books/%d/is-borrowed-by-user", id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return false, err
	}
	return payload.HasBorrowed, nil
}

func writeDraftForm(writer *multipart.Writer, draft BookDraft) error {
	if draft.ID > 0 {
		if err := writer.WriteField("id", strconv.FormatInt(draft.ID, 10)); err != nil {
			return fmt.Errorf("write form field: %w", err)
		}
	}
	fields := [][2]string{
		{"title", draft.Title},
		{"author", draft.Author},
		{"description", draft.Description},
	}
	for _, f := range fields {
		if err := writer.WriteField(f[0], f[1]); err != nil {
			return fmt.Errorf("write form field: %w", err)
		}
	}
	if draft.ImageFile == "" {
		return nil
	}
	// The old image path only accompanies a replacement image, so the server
	// can garbage-collect the superseded asset.
	if draft.ID > 0 && draft.OldImagePath != "" {
		if err := writer.WriteField("oldImagePath", draft.OldImagePath); err != nil {
			return fmt.Errorf("write form field: %w", err)
		}
	}
	file, err := os.Open(draft.ImageFile)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = file.Close() }()

	part, err := writer.CreateFormFile("image", filepath.Base(draft.ImageFile))
	if err != nil {
		return fmt.Errorf("create image part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy image: %w", err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, dest any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}
	return c.doBody(ctx, method, path, body, contentType, dest)
}

func (c *Client) doBody(ctx context.Context, method, path string, body io.Reader, contentType string, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	// path may carry pre-escaped segments (search queries); parsing keeps
	// them escaped exactly once on the wire.
	rel, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse request path: %w", err)
	}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(serverURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(serverURL)
	if trimmed == "" {
		trimmed = defaultServerURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server url %q: %w", serverURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
