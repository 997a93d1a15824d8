package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shoe-store/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler answers 200 and records that it ran.
func recordingHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS(t *testing.T) {
	tests := []struct {
		method      string
		status      int
		reachesNext bool
	}{
		{http.MethodOptions, http.StatusNoContent, false},
		{http.MethodGet, http.StatusOK, true},
		{http.MethodPost, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			var called bool
			w := httptest.NewRecorder()

			CORS(recordingHandler(&called)).ServeHTTP(w, httptest.NewRequest(tt.method, "/api/shoes", nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.reachesNext, called)

			h := w.Header()
			assert.Equal(t, "*", h.Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, OPTIONS", h.Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Content-Type, X-API-Key, X-Request-ID", h.Get("Access-Control-Allow-Headers"))
		})
	}
}

func TestAPIKeyAuth(t *testing.T) {
	const key = "test-api-key-123"

	tests := []struct {
		name        string
		method      string
		path        string
		header      string
		status      int
		reachesNext bool
	}{
		{"create with valid key", http.MethodPost, "/api/shoes", key, http.StatusOK, true},
		{"create with wrong key", http.MethodPost, "/api/shoes", "nope", http.StatusUnauthorized, false},
		{"create without key", http.MethodPost, "/api/shoes", "", http.StatusUnauthorized, false},
		{"delete without key", http.MethodDelete, "/api/shoes/pegasus", "", http.StatusUnauthorized, false},
		{"catalogue read", http.MethodGet, "/api/shoes?section=sale", "", http.StatusOK, true},
		{"preflight", http.MethodOptions, "/api/shoes", "", http.StatusOK, true},
		{"storefront page", http.MethodGet, "/sale", "", http.StatusOK, true},
		{"storefront form post", http.MethodPost, "/new", "", http.StatusOK, true},
		{"health", http.MethodGet, "/health", "", http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("X-API-Key", tt.header)
			}
			w := httptest.NewRecorder()

			APIKeyAuth(key, zerolog.Nop())(recordingHandler(&called)).ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.reachesNext, called)
		})
	}
}

func TestAPIKeyAuth_RejectionIsJSON(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"missing key", "", "missing API key"},
		{"wrong key", "nope", "invalid API key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := RequestID(APIKeyAuth("k", zerolog.Nop())(recordingHandler(&called)))

			req := httptest.NewRequest(http.MethodPost, "/api/shoes", nil)
			req.Header.Set(RequestIDHeader, "req-401")
			if tt.header != "" {
				req.Header.Set("X-API-Key", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body model.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, model.ErrCodeUnauthorised, body.Error)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, "req-401", body.CorrelationID)
		})
	}
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		reused   bool
	}{
		{"generated when missing", "", false},
		{"reused when provided", "req-123", true},
		{"replaced when oversized", string(bytes.Repeat([]byte("x"), 200)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestIDFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()

			RequestID(next).ServeHTTP(w, req)

			require.NotEmpty(t, seen)
			assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
			if tt.reused {
				assert.Equal(t, tt.incoming, seen)
			} else {
				assert.NotEqual(t, tt.incoming, seen)
			}
		})
	}
}

func TestRequestIDFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", RequestIDFromContext(req.Context()))
}

func TestLogging(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "info"},
		{http.StatusNotFound, "warn"},
		{http.StatusBadGateway, "error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("hello"))
			})
			w := httptest.NewRecorder()

			Logging(zerolog.New(&buf))(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sale?sort=price", nil))

			assert.Equal(t, tt.status, w.Code)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, "/sale", entry["path"])
			assert.Equal(t, "sort=price", entry["query"])
			assert.EqualValues(t, tt.status, entry["status"])
			assert.EqualValues(t, 5, entry["bytes"])
		})
	}
}

func TestRecovery(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(assert.AnError)
	})

	t.Run("no panic passes through", func(t *testing.T) {
		var called bool
		w := httptest.NewRecorder()

		Recovery(zerolog.Nop())(recordingHandler(&called)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("storefront page gets plain text", func(t *testing.T) {
		w := httptest.NewRecorder()

		Recovery(zerolog.Nop())(panicking).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/shoe/pegasus", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal server error")
		assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	})

	t.Run("API path gets JSON with request ID", func(t *testing.T) {
		handler := RequestID(Recovery(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})))

		req := httptest.NewRequest(http.MethodGet, "/api/shoes", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var body model.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, model.ErrCodeInternalError, body.Error)
		assert.Equal(t, "req-123", body.CorrelationID)
	})
}

func TestResponseWriter_RecordsStatusAndBytes(t *testing.T) {
	w := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusCreated)
	_, _ = rw.Write([]byte("abc"))
	_, _ = rw.Write([]byte("de"))

	assert.Equal(t, http.StatusCreated, rw.statusCode)
	assert.Equal(t, 5, rw.bytes)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "abcde", w.Body.String())
}
