// Package services содержит сервис почтовой рассылки: потребляет
// широковещательные сообщения из очереди и отправляет письма по SMTP.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PraneshMithun-cse/Savorly/internal/lib/sl"
	"github.com/PraneshMithun-cse/Savorly/internal/lib/smtp"
	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

// SenderService отправляет письма рассылки через SMTP транспорт.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendBroadcast разбирает сообщение очереди и рассылает его всем адресатам.
// Ошибка по одному адресату не прерывает рассылку остальным.
func (s *SenderService) SendBroadcast(body []byte) error {
	var message models.BroadcastMessage
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject := "Savourly news"
	var failed int
	for _, email := range message.Emails {
		if err := s.sendEmail([]string{email}, subject, message.Message); err != nil {
			s.log.Error("failed to send broadcast email",
				slog.String("to", email), sl.Err(err))
			failed++
		}
	}
	if failed == len(message.Emails) && len(message.Emails) > 0 {
		return fmt.Errorf("broadcast failed for all %d recipients", failed)
	}
	return nil
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	client, err := s.transport.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP: %w", err)
	}
	defer func() {
		if err := client.Quit(); err != nil {
			s.log.Warn("failed to quit SMTP client", sl.Err(err))
		}
	}()

	from := s.transport.GetSMTPUser()
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", addr, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"",
		bodyText,
	}, "\r\n")
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}
