package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PraneshMithun-cse/Savorly/internal/config"
	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(config.CredentialsStore{
		CredentialsPath: filepath.Join(t.TempDir(), "credentials.json"),
		PrimaryAdmin:    "admin@savourly.in",
		SeedDelivery:    "delivery@savourly.in",
	})
}

func TestLoadSeedsDefaults(t *testing.T) {
	store := newTestStore(t)

	creds, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"admin@savourly.in"}, creds.Admins)
	assert.Equal(t, []string{"delivery@savourly.in"}, creds.Delivery)

	// Файл создан на диске
	_, err = os.Stat(store.path)
	require.NoError(t, err)
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		email   string
		wantErr error
	}{
		{
			name:  "добавление нового администратора",
			kind:  models.RoleAdmin,
			email: "second@savourly.in",
		},
		{
			name:  "адрес нормализуется к нижнему регистру",
			kind:  models.RoleDelivery,
			email: "  Courier@Savourly.IN ",
		},
		{
			name:    "дубликат даёт ошибку",
			kind:    models.RoleAdmin,
			email:   "admin@savourly.in",
			wantErr: ErrDuplicate,
		},
		{
			name:    "дубликат в другом регистре",
			kind:    models.RoleAdmin,
			email:   "ADMIN@savourly.in",
			wantErr: ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)

			creds, err := store.Add(tt.kind, tt.email)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			if tt.kind == models.RoleAdmin {
				assert.Contains(t, creds.Admins, "second@savourly.in")
			} else {
				assert.Contains(t, creds.Delivery, "courier@savourly.in")
			}
		})
	}
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Add(models.RoleAdmin, "second@savourly.in")
	require.NoError(t, err)

	creds, err := store.Remove(models.RoleAdmin, "second@savourly.in")
	require.NoError(t, err)
	assert.NotContains(t, creds.Admins, "second@savourly.in")
	assert.Contains(t, creds.Admins, "admin@savourly.in")
}

func TestRemovePrimaryAdminProtected(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Remove(models.RoleAdmin, "admin@savourly.in")
	assert.ErrorIs(t, err, ErrProtectedAdmin)

	// Список не изменился
	creds, err := store.Load()
	require.NoError(t, err)
	assert.Contains(t, creds.Admins, "admin@savourly.in")
}

func TestResolveRole(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"администратор", "admin@savourly.in", models.RoleAdmin},
		{"администратор в другом регистре", "ADMIN@savourly.in", models.RoleAdmin},
		{"курьер", "delivery@savourly.in", models.RoleDelivery},
		{"неизвестный адрес — покупатель", "someone@example.com", models.RoleCustomer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := store.ResolveRole(tt.email)
			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}
}
