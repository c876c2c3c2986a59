package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/coursemap/pkg/logging"
)

func TestChain(t *testing.T) {
	tests := []struct {
		name              string
		numMiddleware     int
		expectedCallOrder []string
	}{
		{"no middleware", 0, []string{"handler"}},
		{"single middleware", 1, []string{"m1", "handler"}},
		{"three middleware", 3, []string{"m1", "m2", "m3", "handler"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var callOrder []string

			middlewares := make([]func(http.Handler) http.Handler, tt.numMiddleware)
			for i := 0; i < tt.numMiddleware; i++ {
				name := "m" + string(rune('1'+i))
				middlewares[i] = func(next http.Handler) http.Handler {
					return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
						callOrder = append(callOrder, name)
						next.ServeHTTP(w, r)
					})
				}
			}

			handler := Chain(middlewares...)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				callOrder = append(callOrder, "handler")
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.expectedCallOrder, callOrder)
		})
	}
}

func TestRequestIDGenerated(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	header := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, header)
	_, err := uuid.Parse(header)
	assert.NoError(t, err)
	assert.Equal(t, header, seen)
}

func TestRequestIDPropagated(t *testing.T) {
	handler := RequestID()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestLoggerRecordsRequest(t *testing.T) {
	tl := logging.NewTestLogger(t)

	handler := Chain(RequestID(), Logger(tl.Logger))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Info().Msg("inside handler")
		w.WriteHeader(http.StatusNotFound)
	}))

	r := httptest.NewRequest(http.MethodGet, "/retrieveDept?deptCode=XYZ", nil)
	r.Header.Set(RequestIDHeader, "req-1")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	tl.AssertContains(t, `"message":"HTTP request"`)
	tl.AssertContains(t, `"status":404`)
	tl.AssertContains(t, `"path":"/retrieveDept"`)
	tl.AssertContains(t, `"query":"deptCode=XYZ"`)
	tl.AssertContains(t, `"request_id":"req-1"`)
	tl.AssertContains(t, "inside handler")
}

func TestRecovery(t *testing.T) {
	handler := Recovery(logging.NewNopLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestResponseWriterKeepsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}
	rw.WriteHeader(http.StatusBadRequest)
	rw.WriteHeader(http.StatusOK)
	assert.Equal(t, http.StatusBadRequest, rw.statusCode)
}

func TestResponseWriterHijackUnsupported(t *testing.T) {
	rw := &responseWriter{ResponseWriter: httptest.NewRecorder()}
	_, _, err := rw.Hijack()
	assert.Error(t, err)
}
