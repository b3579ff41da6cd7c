package checkoutredirect

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateSession(ctx context.Context, identity string) (string, error) {
	args := m.Called(ctx, identity)
	return args.String(0), args.Error(1)
}

func TestRedirectHandler(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		mockSetup      func(s *mockService)
		expectedStatus int
		expectedURL    string
	}{
		{
			name:  "Успешное перенаправление на страницу оплаты",
			query: "?user_id=dana@example.com",
			mockSetup: func(s *mockService) {
				s.On("CreateSession", mock.Anything, "dana@example.com").
					Return("https://pay.example.com/s/cs_1", nil)
			},
			expectedStatus: http.StatusSeeOther,
			expectedURL:    "https://pay.example.com/s/cs_1",
		},
		{
			name:           "Отсутствует user_id",
			query:          "",
			mockSetup:      func(s *mockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Невалидный user_id",
			query:          "?user_id=not-an-email",
			mockSetup:      func(s *mockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "Ошибка сервиса",
			query: "?user_id=dana@example.com",
			mockSetup: func(s *mockService) {
				s.On("CreateSession", mock.Anything, "dana@example.com").
					Return("", errors.New("provider down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockService)
			tt.mockSetup(service)

			logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
			handler := New(logger, service)

			req := httptest.NewRequest(http.MethodGet, "/checkout"+tt.query, nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedURL != "" {
				assert.Equal(t, tt.expectedURL, rr.Header().Get("Location"))
			}
			service.AssertExpectations(t)
		})
	}
}
