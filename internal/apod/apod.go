// Package apod proxies the NASA Astronomy Picture of the Day API.
package apod

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public NASA API endpoint.
	DefaultBaseURL = "https://api.nasa.gov"
	// KeyEnv is the environment variable holding the API key.
	KeyEnv = "NASA_API_KEY"
)

// Error is a failed APOD request, carrying the status returned to clients.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Detail)
}

// Client fetches the picture of the day.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	// Key returns the API key. It is looked up on every request so the
	// server picks up a key exported after start.
	Key func() string
}

// NewClient returns a client reading the key from NASA_API_KEY.
func NewClient() *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		Key: func() string {
			return os.Getenv(KeyEnv)
		},
	}
}

// LoadEnv adds the variables of a dotenv file to the environment without
// overriding ones already set. A missing file is not an error.
func LoadEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Get returns the raw APOD JSON document.
func (c *Client) Get(ctx context.Context) (json.RawMessage, error) {
	key := c.Key()
	if key == "" {
		return nil, &Error{
			Status: http.StatusInternalServerError,
			Detail: KeyEnv + " is not configured on the server",
		}
	}

	u, err := url.Parse(c.BaseURL + "/planetary/apod")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("api_key", key)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &Error{
			Status: http.StatusServiceUnavailable,
			Detail: "could not connect to NASA API: " + redact(err.Error(), key),
		}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &Error{
			Status: http.StatusServiceUnavailable,
			Detail: "could not read NASA API response: " + err.Error(),
		}
	}
	if res.StatusCode < 200 || 300 <= res.StatusCode {
		return nil, &Error{
			Status: res.StatusCode,
			Detail: fmt.Sprintf("error fetching data from NASA: %s", res.Status),
		}
	}
	if !json.Valid(body) {
		return nil, &Error{
			Status: http.StatusBadGateway,
			Detail: "NASA API returned invalid JSON",
		}
	}
	return json.RawMessage(body), nil
}

// Source provides the APOD document.
type Source interface {
	Get(ctx context.Context) (json.RawMessage, error)
}

// Handler serves GET requests with the APOD document.
// Failures are reported as {"detail": "..."}.
func Handler(c Source, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, detail{Detail: "method not allowed"})
			return
		}
		doc, err := c.Get(r.Context())
		if err != nil {
			status := http.StatusInternalServerError
			msg := err.Error()
			var e *Error
			if errors.As(err, &e) {
				status, msg = e.Status, e.Detail
			}
			logger.Warn("apod request failed", zap.Int("status", status), zap.String("detail", msg))
			writeJSON(w, status, detail{Detail: msg})
			return
		}
		writeJSON(w, http.StatusOK, doc)
	})
}

type detail struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// redact hides the API key echoed back in transport errors.
func redact(s, key string) string {
	if key == "" {
		return s
	}
	return strings.ReplaceAll(s, key, "***")
}
