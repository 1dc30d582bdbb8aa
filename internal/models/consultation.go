package models

import "time"

// Статусы заявки на консультацию.
const (
	ConsultationPending   = "Pending"
	ConsultationCompleted = "Completed"
	ConsultationCancelled = "Cancelled"
)

// ConsultationStatuses — допустимые статусы заявки.
var ConsultationStatuses = []string{
	ConsultationPending,
	ConsultationCompleted,
	ConsultationCancelled,
}

// IsValidConsultationStatus сообщает, входит ли статус в допустимый набор.
func IsValidConsultationStatus(status string) bool {
	for _, s := range ConsultationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Consultation — лид с публичной формы записи на консультацию.
type Consultation struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Program       string    `json:"program"`
	PreferredTime string    `json:"preferredTime"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}

// DummyConsultation используется для приёма заявки из JSON-запроса.
// Program по умолчанию — "90-day".
type DummyConsultation struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	Program       string `json:"program" validate:"omitempty,oneof=90-day 120-day other"`
	PreferredTime string `json:"preferredTime" validate:"required"`
}
