package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/PraneshMithun-cse/Savorly/internal/http/middlewarectx"
	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, uid, email string, req models.DummyOrder) (*models.OrderSummary, error) {
	args := m.Called(ctx, uid, email, req)
	if res := args.Get(0); res != nil {
		return res.(*models.OrderSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

const validBody = `{
	"customerDetails": {"name": "Pranesh", "phone": "9999999999", "address": "Coimbatore"},
	"items": [{"planName": "Gold", "price": 1500}],
	"totalPrice": 1500
}`

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		uid            string
		email          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "успешное оформление заказа",
			body:  validBody,
			uid:   "uid-1",
			email: "user@example.com",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", "user@example.com", mock.AnythingOfType("models.DummyOrder")).
					Return(&models.OrderSummary{OrderID: "SVL-1", Status: models.StatusPending, TotalPrice: 1500}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"orderId":"SVL-1"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"items": [`,
			uid:            "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request body"}`,
		},
		{
			name:           "пустые items не проходят валидацию",
			body:           `{"customerDetails": {"name": "A", "phone": "1", "address": "B"}, "items": [], "totalPrice": 100}`,
			uid:            "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error"`,
		},
		{
			name:           "нет обязательных полей заказа",
			body:           `{"paymentMethod": "cod"}`,
			uid:            "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error"`,
		},
		{
			name:           "нет uid в контексте",
			body:           validBody,
			uid:            "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"unauthorized"}`,
		},
		{
			name:  "ошибка сервиса",
			body:  validBody,
			uid:   "uid-1",
			email: "user@example.com",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", "user@example.com", mock.AnythingOfType("models.DummyOrder")).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"could not create order"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(tt.body))
			ctx := req.Context()
			if tt.uid != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.uid)
				ctx = context.WithValue(ctx, middlewarectx.Email, tt.email)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
