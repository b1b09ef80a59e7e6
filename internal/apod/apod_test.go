package apod

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL, key string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    http.DefaultClient,
		Key: func() string {
			return key
		},
	}
}

func TestClient_Get(t *testing.T) {
	var gotKey string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/planetary/apod" {
			http.NotFound(w, r)
			return
		}
		gotKey = r.URL.Query().Get("api_key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title":"Orion","media_type":"image"}`))
	}))
	defer upstream.Close()

	doc, err := newTestClient(upstream.URL, "secret").Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "secret", gotKey)

	var v map[string]string
	require.NoError(t, json.Unmarshal(doc, &v))
	require.Equal(t, "Orion", v["title"])
}

func TestClient_GetErrors(t *testing.T) {
	forbidden := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusForbidden)
	}))
	defer forbidden.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	}))
	defer broken.Close()

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	testCases := map[string]struct {
		baseURL string
		key     string
		status  int
	}{
		"NoKey":       {baseURL: forbidden.URL, key: "", status: http.StatusInternalServerError},
		"Upstream403": {baseURL: forbidden.URL, key: "k", status: http.StatusForbidden},
		"InvalidJSON": {baseURL: broken.URL, key: "k", status: http.StatusBadGateway},
		"Unreachable": {baseURL: closedURL, key: "k", status: http.StatusServiceUnavailable},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			_, err := newTestClient(tt.baseURL, tt.key).Get(context.Background())
			var e *Error
			require.True(t, errors.As(err, &e), "Expected *Error, got %v", err)
			require.Equal(t, tt.status, e.Status)
		})
	}
}

func TestHandler(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"Andromeda"}`))
	}))
	defer upstream.Close()

	t.Run("OK", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Handler(newTestClient(upstream.URL, "k"), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nasa/apod", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		require.JSONEq(t, `{"title":"Andromeda"}`, rec.Body.String())
	})
	t.Run("NoKey", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Handler(newTestClient(upstream.URL, ""), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nasa/apod", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var d detail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
		require.True(t, strings.Contains(d.Detail, KeyEnv), "Expected detail to name %s, got %q", KeyEnv, d.Detail)
	})
	t.Run("MethodNotAllowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Handler(newTestClient(upstream.URL, "k"), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/nasa/apod", nil))
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

type sourceFunc func(context.Context) (json.RawMessage, error)

func (f sourceFunc) Get(ctx context.Context) (json.RawMessage, error) {
	return f(ctx)
}

func TestHandler_Errors(t *testing.T) {
	testCases := map[string]struct {
		err    error
		status int
		detail string
	}{
		"Error": {
			err:    &Error{Status: http.StatusTeapot, Detail: "short and stout"},
			status: http.StatusTeapot,
			detail: "short and stout",
		},
		"Wrapped": {
			err:    fmt.Errorf("cached: %w", &Error{Status: http.StatusForbidden, Detail: "bad key"}),
			status: http.StatusForbidden,
			detail: "bad key",
		},
		"Other": {
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			detail: "boom",
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			src := sourceFunc(func(context.Context) (json.RawMessage, error) {
				return nil, tt.err
			})
			rec := httptest.NewRecorder()
			Handler(src, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nasa/apod", nil))
			require.Equal(t, tt.status, rec.Code)

			var d detail
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
			require.Equal(t, tt.detail, d.Detail)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(KeyEnv+"=from-file\n"), 0644))

	t.Run("Missing", func(t *testing.T) {
		require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env")))
	})
	t.Run("Load", func(t *testing.T) {
		t.Setenv(KeyEnv, "")
		require.NoError(t, os.Unsetenv(KeyEnv))

		require.NoError(t, LoadEnv(path))
		require.Equal(t, "from-file", NewClient().Key())
	})
	t.Run("KeepsEnvironment", func(t *testing.T) {
		t.Setenv(KeyEnv, "from-env")

		require.NoError(t, LoadEnv(path))
		require.Equal(t, "from-env", NewClient().Key())
	})
}

func TestRedact(t *testing.T) {
	require.Equal(t, "get https://x/?api_key=***: refused", redact("get https://x/?api_key=abc: refused", "abc"))
	require.Equal(t, "unchanged", redact("unchanged", ""))
}
