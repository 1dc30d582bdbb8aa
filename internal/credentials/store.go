// Package credentials реализует хранилище списков доступа: почтовые адреса
// администраторов и курьеров в одном JSON-файле.
//
// Файл перечитывается при каждом обращении, поэтому все экземпляры видят
// согласованное содержимое. Цикл чтение-правка-запись сериализуется одним
// мьютексом, запись выполняется через временный файл и rename: либо файл
// обновлён целиком, либо остаётся прежним.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/PraneshMithun-cse/Savorly/internal/config"
	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

// Ошибки правки списков доступа.
var (
	// ErrDuplicate — адрес уже есть в списке.
	ErrDuplicate = errors.New("email already exists")
	// ErrProtectedAdmin — попытка удалить главного администратора.
	ErrProtectedAdmin = errors.New("cannot remove the primary admin")
)

// Store — хранилище списков доступа с файлом на диске.
type Store struct {
	mu           sync.Mutex
	path         string
	primaryAdmin string
	seedDelivery string
}

// NewStore создаёт хранилище. Файл будет создан с адресами по умолчанию
// при первом чтении, если его ещё нет.
func NewStore(cfg config.CredentialsStore) *Store {
	return &Store{
		path:         cfg.CredentialsPath,
		primaryAdmin: normalize(cfg.PrimaryAdmin),
		seedDelivery: normalize(cfg.SeedDelivery),
	}
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func contains(list []string, email string) bool {
	for _, e := range list {
		if normalize(e) == email {
			return true
		}
	}
	return false
}

func remove(list []string, email string) []string {
	result := make([]string, 0, len(list))
	for _, e := range list {
		if normalize(e) != email {
			result = append(result, e)
		}
	}
	return result
}

// loadLocked читает файл, инициализируя его адресами по умолчанию при
// отсутствии. Вызывается только под mu.
func (s *Store) loadLocked() (*models.Credentials, error) {
	const op = "credentials.load"

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		defaults := &models.Credentials{
			Admins:   []string{s.primaryAdmin},
			Delivery: []string{s.seedDelivery},
		}
		if err := s.saveLocked(defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}

	var creds models.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &creds, nil
}

// saveLocked атомарно переписывает файл целиком. Вызывается только под mu.
func (s *Store) saveLocked(creds *models.Credentials) error {
	const op = "credentials.save"

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Load возвращает оба списка доступа, всегда читая файл заново.
func (s *Store) Load() (*models.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Add добавляет адрес в список kind ("admin" или "delivery").
// Возвращает ErrDuplicate, если адрес уже есть.
func (s *Store) Add(kind, email string) (*models.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.loadLocked()
	if err != nil {
		return nil, err
	}

	email = normalize(email)
	if kind == models.RoleAdmin {
		if contains(creds.Admins, email) {
			return nil, ErrDuplicate
		}
		creds.Admins = append(creds.Admins, email)
	} else {
		if contains(creds.Delivery, email) {
			return nil, ErrDuplicate
		}
		creds.Delivery = append(creds.Delivery, email)
	}

	if err := s.saveLocked(creds); err != nil {
		return nil, err
	}
	return creds, nil
}

// Remove убирает адрес из списка kind. Главный администратор защищён:
// попытка удалить его возвращает ErrProtectedAdmin, файл не меняется.
func (s *Store) Remove(kind, email string) (*models.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.loadLocked()
	if err != nil {
		return nil, err
	}

	email = normalize(email)
	if kind == models.RoleAdmin {
		if email == s.primaryAdmin {
			return nil, ErrProtectedAdmin
		}
		creds.Admins = remove(creds.Admins, email)
	} else {
		creds.Delivery = remove(creds.Delivery, email)
	}

	if err := s.saveLocked(creds); err != nil {
		return nil, err
	}
	return creds, nil
}

// ResolveRole определяет роль по верифицированной почте: списки читаются
// заново на каждый запрос, роль нигде не кешируется.
func (s *Store) ResolveRole(email string) (string, error) {
	creds, err := s.Load()
	if err != nil {
		return "", err
	}

	email = normalize(email)
	switch {
	case contains(creds.Admins, email):
		return models.RoleAdmin, nil
	case contains(creds.Delivery, email):
		return models.RoleDelivery, nil
	default:
		return models.RoleCustomer, nil
	}
}
