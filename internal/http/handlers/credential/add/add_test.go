package add

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/PraneshMithun-cse/Savorly/internal/credentials"
	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

// MockStore реализует интерфейс add.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Add(kind, email string) (*models.Credentials, error) {
	args := m.Called(kind, email)
	if res := args.Get(0); res != nil {
		return res.(*models.Credentials), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestAddHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockStore)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное добавление курьера",
			body: `{"type": "delivery", "email": "courier@savourly.in"}`,
			setupMock: func(m *MockStore) {
				m.On("Add", models.RoleDelivery, "courier@savourly.in").
					Return(&models.Credentials{
						Admins:   []string{"admin@savourly.in"},
						Delivery: []string{"delivery@savourly.in", "courier@savourly.in"},
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"courier@savourly.in"`,
		},
		{
			name: "дубликат даёт конфликт",
			body: `{"type": "admin", "email": "admin@savourly.in"}`,
			setupMock: func(m *MockStore) {
				m.On("Add", models.RoleAdmin, "admin@savourly.in").
					Return(nil, credentials.ErrDuplicate)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"email already exists"}`,
		},
		{
			name:           "неизвестный тип списка",
			body:           `{"type": "courier", "email": "a@b.c"}`,
			setupMock:      func(_ *MockStore) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"error"`,
		},
		{
			name:           "некорректная почта",
			body:           `{"type": "admin", "email": "not-an-email"}`,
			setupMock:      func(_ *MockStore) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"error"`,
		},
		{
			name: "ошибка хранилища",
			body: `{"type": "admin", "email": "x@y.z"}`,
			setupMock: func(m *MockStore) {
				m.On("Add", models.RoleAdmin, "x@y.z").
					Return(nil, errors.New("disk error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"could not add credential"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockStore)
			tt.setupMock(mockStore)

			handler := New(logger, mockStore)

			req := httptest.NewRequest(http.MethodPost, "/api/admin/credentials", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockStore.AssertExpectations(t)
		})
	}
}
