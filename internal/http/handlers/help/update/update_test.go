package update

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/PraneshMithun-cse/Savorly/internal/models"
	services "github.com/PraneshMithun-cse/Savorly/internal/services/help"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, id string, req models.DummyHelpUpdate) (*models.HelpRequest, error) {
	args := m.Called(ctx, id, req)
	if res := args.Get(0); res != nil {
		return res.(*models.HelpRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "перевод в In Progress проходит",
			body: `{"status": "In Progress"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "hr-1",
					models.DummyHelpUpdate{Status: models.HelpInProgress}).
					Return(&models.HelpRequest{ID: "hr-1", Status: models.HelpInProgress}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"In Progress"`,
		},
		{
			name: "недопустимый статус",
			body: `{"status": "Closed"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "hr-1",
					models.DummyHelpUpdate{Status: "Closed"}).
					Return(nil, services.ErrInvalidStatus)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid status, must be one of: Open, In Progress, Resolved",
		},
		{
			name: "обращение не найдено",
			body: `{"status": "Resolved"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "hr-1",
					models.DummyHelpUpdate{Status: models.HelpResolved}).
					Return(nil, services.ErrHelpRequestNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"help request not found"}`,
		},
		{
			name:           "некорректный JSON",
			body:           `{`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPatch, "/api/admin/help/hr-1", strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "hr-1")
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
