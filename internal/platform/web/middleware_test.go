package web

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abgdnv/storefront/internal/platform/contextkeys"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_RequestIDInjector(t *testing.T) {
	testCases := []struct {
		name     string
		chain    func(http.Handler) http.Handler
		expectID string
	}{
		{
			name:     "reuses chi request id",
			chain:    func(h http.Handler) http.Handler { return middleware.RequestID(RequestIDInjector(h)) },
			expectID: "from-client",
		},
		{
			name:  "generates id when chi did not run",
			chain: RequestIDInjector,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var seen string
			handler := tc.chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = contextkeys.GetRequestID(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(middleware.RequestIDHeader, "from-client")
			rr := httptest.NewRecorder()

			// when
			handler.ServeHTTP(rr, req)

			// then
			require.NotEmpty(t, seen)
			if tc.expectID != "" {
				assert.Equal(t, tc.expectID, seen)
			}
			assert.Equal(t, seen, rr.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func Test_Recoverer(t *testing.T) {
	// given
	handler := Recoverer(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()

	// when
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	// then
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rr.Body.String())
}

func Test_StructuredLogger(t *testing.T) {
	// given
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := StructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("tea"))
	}))

	// when
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pot", nil))

	// then
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Request completed", entry["msg"])
	assert.Equal(t, "/pot", entry["path"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
	assert.EqualValues(t, 3, entry["bytes_written"])
}

func Test_RespondJSON(t *testing.T) {
	t.Run("payload", func(t *testing.T) {
		rr := httptest.NewRecorder()
		RespondJSON(rr, discardLogger(), http.StatusCreated, map[string]int{"id": 1})
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"id":1}`, rr.Body.String())
	})
	t.Run("nil payload", func(t *testing.T) {
		rr := httptest.NewRecorder()
		RespondJSON(rr, discardLogger(), http.StatusOK, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Body.String())
	})
	t.Run("unencodable payload", func(t *testing.T) {
		rr := httptest.NewRecorder()
		RespondJSON(rr, discardLogger(), http.StatusOK, map[string]any{"ch": make(chan int)})
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
