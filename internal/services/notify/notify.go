// Package services содержит бизнес-логику широковещательных уведомлений:
// сообщение администратора публикуется в очередь, почтовую рассылку
// выполняет отдельный сервис-потребитель.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/PraneshMithun-cse/Savorly/internal/lib/rabbitmq"
	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

// Publisher описывает публикацию сообщения в брокер.
type Publisher interface {
	Publish(exchange, routingKey string, message any) error
}

// CustomerSource отдаёт адресатов рассылки — почты покупателей из заказов.
type CustomerSource interface {
	ListCustomerEmails(ctx context.Context) ([]string, error)
}

// NotifyService реализует широковещательную рассылку администратора.
type NotifyService struct {
	publisher Publisher
	customers CustomerSource
	log       *slog.Logger
}

// NewNotifyService создает новый экземпляр NotifyService.
func NewNotifyService(publisher Publisher, customers CustomerSource, log *slog.Logger) *NotifyService {
	return &NotifyService{
		publisher: publisher,
		customers: customers,
		log:       log,
	}
}

// Broadcast публикует сообщение для всех покупателей и возвращает
// количество адресатов.
func (s *NotifyService) Broadcast(ctx context.Context, message string) (int, error) {
	emails, err := s.customers.ListCustomerEmails(ctx)
	if err != nil {
		return 0, err
	}

	msg := models.BroadcastMessage{
		Message: message,
		SentAt:  time.Now().UTC().Format(time.RFC3339),
		Emails:  emails,
	}
	if err := s.publisher.Publish(rabbitmq.BroadcastExchange, rabbitmq.BroadcastRoutingKey, msg); err != nil {
		return 0, err
	}

	s.log.Info("broadcast notification published", slog.Int("recipients", len(emails)))
	return len(emails), nil
}
