package middlewarectx

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedBody   string
		wantIdentity   string
	}{
		{
			name:           "валидный идентификатор",
			header:         "a@x.com",
			expectedStatus: http.StatusOK,
			wantIdentity:   "a@x.com",
		},
		{
			name:           "пробелы обрезаются",
			header:         " a@x.com ",
			expectedStatus: http.StatusOK,
			wantIdentity:   "a@x.com",
		},
		{
			name:           "заголовок отсутствует",
			header:         "",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Missing User-ID header"}`,
		},
		{
			name:           "не похоже на email",
			header:         "bad-string",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid User-ID header"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotIdentity string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, ok := IdentityFromContext(r.Context())
				require.True(t, ok)
				gotIdentity = id
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/upload", nil)
			if tt.header != "" {
				req.Header.Set("User-ID", tt.header)
			}
			rr := httptest.NewRecorder()

			IdentityMiddleware(logger)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			}
			if tt.wantIdentity != "" {
				assert.Equal(t, tt.wantIdentity, gotIdentity)
			}
		})
	}
}

func TestIdentityFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := IdentityFromContext(req.Context())
	assert.False(t, ok)
}
