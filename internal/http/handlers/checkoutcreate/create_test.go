package checkoutcreate

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/refactor-hub/internal/observability"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateSession(ctx context.Context, identity string) (string, error) {
	args := m.Called(ctx, identity)
	return args.String(0), args.Error(1)
}

func TestCreateSessionHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное создание сессии",
			requestBody: `{"user_id":"a@x.com"}`,
			setupMock: func(m *MockService) {
				m.On("CreateSession", mock.Anything, "a@x.com").
					Return("https://pay.example/s1", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"checkout_url":"https://pay.example/s1"}`,
		},
		{
			name:           "user_id отсутствует",
			requestBody:    `{}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"user_id required"}`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"user_id required"}`,
		},
		{
			name:           "user_id не похож на email",
			requestBody:    `{"user_id":"bad-string"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid user_id"}`,
		},
		{
			name:        "ошибка провайдера",
			requestBody: `{"user_id":"a@x.com"}`,
			setupMock: func(m *MockService) {
				m.On("CreateSession", mock.Anything, "a@x.com").
					Return("", errors.New("provider down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService, observability.New(prometheus.NewRegistry()))

			req := httptest.NewRequest(http.MethodPost, "/create-checkout-session",
				bytes.NewBufferString(tt.requestBody))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
