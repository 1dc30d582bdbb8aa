package models

import "time"

// Статусы обращения в поддержку.
const (
	HelpOpen       = "Open"
	HelpInProgress = "In Progress"
	HelpResolved   = "Resolved"
)

// HelpStatuses — допустимые статусы обращения.
var HelpStatuses = []string{HelpOpen, HelpInProgress, HelpResolved}

// IsValidHelpStatus сообщает, входит ли статус в допустимый набор.
func IsValidHelpStatus(status string) bool {
	for _, s := range HelpStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// HelpRequest — обращение в поддержку. Имя и почта автора фиксируются
// в момент создания по данным токена.
type HelpRequest struct {
	ID            string    `json:"id"`
	UserUID       string    `json:"userId"`
	UserName      string    `json:"userName"`
	UserEmail     string    `json:"userEmail"`
	Subject       string    `json:"subject"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
	AdminResponse string    `json:"adminResponse,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DummyHelpRequest используется для приёма обращения из JSON-запроса.
// Name опционально: при отсутствии берётся имя из токена.
type DummyHelpRequest struct {
	Name    string `json:"name"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// DummyHelpUpdate — правка обращения администратором: статус и/или ответ.
// Статус проверяется бизнес-логикой по IsValidHelpStatus: значение
// "In Progress" содержит пробел и тегом oneof не описывается.
type DummyHelpUpdate struct {
	Status        string `json:"status"`
	AdminResponse string `json:"adminResponse"`
}
