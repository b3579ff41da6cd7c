package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/refactor-hub/internal/lib/identity"
)

func TestClient_Submit(t *testing.T) {
	archive := []byte("PK\x03\x04fake-zip")

	tests := []struct {
		name            string
		handler         http.HandlerFunc
		rawIdentity     string
		artifact        []byte
		filename        string
		expectedErr     error
		expectedStatus  Status
		expectedMessage string
		expectedURL     string
	}{
		{
			name: "Успешная загрузка возвращает артефакт",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/zip")
				_, _ = w.Write([]byte("refactored-bytes"))
			},
			rawIdentity:    "dana@example.com",
			artifact:       archive,
			filename:       "bundle.zip",
			expectedStatus: StatusAuthorized,
		},
		{
			name: "Исчерпанный лимит возвращает адрес оплаты без изменений",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusPaymentRequired)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":        "Free limit reached. Subscribe to continue.",
					"checkout_url": "https://pay.example/s1",
				})
			},
			rawIdentity:     "dana@example.com",
			artifact:        archive,
			filename:        "bundle.zip",
			expectedStatus:  StatusQuotaExceeded,
			expectedMessage: "Free limit reached. Subscribe to continue.",
			expectedURL:     "https://pay.example/s1",
		},
		{
			name: "Отказ сервера без checkout_url",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
			},
			rawIdentity:     "dana@example.com",
			artifact:        archive,
			filename:        "bundle.zip",
			expectedStatus:  StatusFailed,
			expectedMessage: "internal error",
		},
		{
			name: "Отказ сервера без тела",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			rawIdentity:     "dana@example.com",
			artifact:        archive,
			filename:        "bundle.zip",
			expectedStatus:  StatusFailed,
			expectedMessage: "upload failed",
		},
		{
			name:        "Невалидный идентификатор не доходит до сети",
			rawIdentity: "bad-string",
			artifact:    archive,
			filename:    "bundle.zip",
			expectedErr: identity.ErrInvalidIdentity,
		},
		{
			name:        "Пустой архив не доходит до сети",
			rawIdentity: "dana@example.com",
			artifact:    nil,
			filename:    "bundle.zip",
			expectedErr: ErrMissingArtifact,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				assert.Equal(t, "/upload", r.URL.Path)
				assert.Equal(t, "dana@example.com", r.Header.Get("User-ID"))
				tt.handler(w, r)
			}))
			defer server.Close()

			c := New(server.URL, 5*time.Second)
			result, err := c.Submit(context.Background(), tt.rawIdentity, tt.artifact, tt.filename)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Equal(t, int32(0), calls.Load(), "local failure must not reach the network")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int32(1), calls.Load())
			assert.Equal(t, tt.expectedStatus, result.Status)
			if tt.expectedStatus == StatusAuthorized {
				assert.Equal(t, []byte("refactored-bytes"), result.Artifact)
				assert.Equal(t, "refactored.zip", result.Filename)
			}
			assert.Equal(t, tt.expectedMessage, result.Message)
			assert.Equal(t, tt.expectedURL, result.CheckoutURL)
		})
	}
}

func TestClient_Submit_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := New(server.URL, time.Second)
	result, err := c.Submit(context.Background(), "dana@example.com", []byte("data"), "bundle.zip")

	require.NoError(t, err)
	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, "request failed", result.Message)
}

func TestClient_Submit_SendsMultipartArtifact(t *testing.T) {
	archive := []byte("PK\x03\x04payload")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "bundle.zip", header.Filename)
		uploaded, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, archive, uploaded)

		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second)
	result, err := c.Submit(context.Background(), "dana@example.com", archive, "bundle.zip")
	require.NoError(t, err)
	assert.Equal(t, StatusAuthorized, result.Status)
}

func TestClient_Subscribe(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		rawIdentity string
		expectedURL string
		wantErr     bool
		localErr    error
	}{
		{
			name: "Успешный запрос платежной сессии",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "dana@example.com", body["user_id"])
				_ = json.NewEncoder(w).Encode(map[string]string{"checkout_url": "https://pay.example/s1"})
			},
			rawIdentity: "dana@example.com",
			expectedURL: "https://pay.example/s1",
		},
		{
			name: "Ответ без checkout_url",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
			},
			rawIdentity: "dana@example.com",
			wantErr:     true,
		},
		{
			name:        "Невалидный идентификатор не доходит до сети",
			rawIdentity: "   ",
			wantErr:     true,
			localErr:    identity.ErrInvalidIdentity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				assert.Equal(t, "/create-checkout-session", r.URL.Path)
				tt.handler(w, r)
			}))
			defer server.Close()

			c := New(server.URL, 5*time.Second)
			url, err := c.Subscribe(context.Background(), tt.rawIdentity)

			if tt.wantErr {
				require.Error(t, err)
				if tt.localErr != nil {
					assert.True(t, errors.Is(err, tt.localErr))
					assert.Equal(t, int32(0), calls.Load())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedURL, url)
		})
	}
}

func TestClient_Usage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/usage", r.URL.Path)
		assert.Equal(t, "dana@example.com", r.Header.Get("User-ID"))
		_ = json.NewEncoder(w).Encode(map[string]any{"used": 2, "limit": 3, "subscribed": false})
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second)
	info, err := c.Usage(context.Background(), "dana@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, info.Used)
	assert.Equal(t, 3, info.Limit)
	assert.False(t, info.Subscribed)
}
