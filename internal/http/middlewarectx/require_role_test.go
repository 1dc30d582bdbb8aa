package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

func TestRequireRole(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		role           string
		allowed        []string
		expectedStatus int
	}{
		{
			name:           "администратор проходит",
			role:           models.RoleAdmin,
			allowed:        []string{models.RoleAdmin},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "курьер проходит в список персонала",
			role:           models.RoleDelivery,
			allowed:        []string{models.RoleAdmin, models.RoleDelivery},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "покупатель не проходит",
			role:           models.RoleCustomer,
			allowed:        []string{models.RoleAdmin},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "курьер не администратор",
			role:           models.RoleDelivery,
			allowed:        []string{models.RoleAdmin},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "нет роли в контексте",
			role:           "",
			allowed:        []string{models.RoleAdmin},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
			if tt.role != "" {
				req = req.WithContext(context.WithValue(req.Context(), Role, tt.role))
			}
			w := httptest.NewRecorder()

			RequireRole(logger, tt.allowed...)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
