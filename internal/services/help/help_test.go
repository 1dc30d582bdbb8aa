package services

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

// MockRepo реализует интерфейс HelpRepository
type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) CreateHelpRequest(ctx context.Context, h models.HelpRequest) (*models.HelpRequest, error) {
	args := m.Called(ctx, h)
	if res := args.Get(0); res != nil {
		return res.(*models.HelpRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepo) ListHelpRequests(ctx context.Context) ([]*models.HelpRequest, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]*models.HelpRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepo) UpdateHelpRequest(ctx context.Context, id, status, adminResponse string) (*models.HelpRequest, error) {
	args := m.Called(ctx, id, status, adminResponse)
	if res := args.Get(0); res != nil {
		return res.(*models.HelpRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestCreateSnapshotsIdentity(t *testing.T) {
	repo := new(MockRepo)
	service := NewHelpService(repo, testLogger())

	var captured models.HelpRequest
	repo.On("CreateHelpRequest", mock.Anything, mock.AnythingOfType("models.HelpRequest")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(models.HelpRequest)
		}).
		Return(&models.HelpRequest{ID: "hr-1"}, nil)

	_, err := service.Create(context.Background(), "uid-1", "user@example.com", models.DummyHelpRequest{
		Subject: "Broken meal box",
		Message: "The box arrived damaged",
	})
	require.NoError(t, err)

	// Имя по умолчанию, почта из токена, начальный статус Open
	assert.Equal(t, "User", captured.UserName)
	assert.Equal(t, "user@example.com", captured.UserEmail)
	assert.Equal(t, "uid-1", captured.UserUID)
	assert.Equal(t, models.HelpOpen, captured.Status)
	assert.NotEmpty(t, captured.ID)
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name      string
		req       models.DummyHelpUpdate
		setupMock func(*MockRepo)
		wantErr   error
	}{
		{
			name: "статус Open принимается",
			req:  models.DummyHelpUpdate{Status: models.HelpOpen},
			setupMock: func(m *MockRepo) {
				m.On("UpdateHelpRequest", mock.Anything, "hr-1", models.HelpOpen, "").
					Return(&models.HelpRequest{ID: "hr-1", Status: models.HelpOpen}, nil)
			},
		},
		{
			name: "статус In Progress принимается",
			req:  models.DummyHelpUpdate{Status: models.HelpInProgress},
			setupMock: func(m *MockRepo) {
				m.On("UpdateHelpRequest", mock.Anything, "hr-1", models.HelpInProgress, "").
					Return(&models.HelpRequest{ID: "hr-1", Status: models.HelpInProgress}, nil)
			},
		},
		{
			name: "статус Resolved принимается",
			req:  models.DummyHelpUpdate{Status: models.HelpResolved},
			setupMock: func(m *MockRepo) {
				m.On("UpdateHelpRequest", mock.Anything, "hr-1", models.HelpResolved, "").
					Return(&models.HelpRequest{ID: "hr-1", Status: models.HelpResolved}, nil)
			},
		},
		{
			name: "пустой статус оставляет текущий",
			req:  models.DummyHelpUpdate{AdminResponse: "We are on it"},
			setupMock: func(m *MockRepo) {
				m.On("UpdateHelpRequest", mock.Anything, "hr-1", "", "We are on it").
					Return(&models.HelpRequest{ID: "hr-1", Status: models.HelpOpen}, nil)
			},
		},
		{
			name:    "неизвестный статус отклоняется до записи",
			req:     models.DummyHelpUpdate{Status: "Closed"},
			wantErr: ErrInvalidStatus,
		},
		{
			name: "обращение не найдено",
			req:  models.DummyHelpUpdate{Status: models.HelpResolved},
			setupMock: func(m *MockRepo) {
				m.On("UpdateHelpRequest", mock.Anything, "hr-1", models.HelpResolved, "").
					Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrHelpRequestNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepo)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}
			service := NewHelpService(repo, testLogger())

			updated, err := service.Update(context.Background(), "hr-1", tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.setupMock == nil {
					repo.AssertNotCalled(t, "UpdateHelpRequest")
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "hr-1", updated.ID)
			repo.AssertExpectations(t)
		})
	}
}
