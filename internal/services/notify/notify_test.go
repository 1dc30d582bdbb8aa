package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/PraneshMithun-cse/Savorly/internal/lib/rabbitmq"
	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

// MockPublisher реализует интерфейс Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, message any) error {
	args := m.Called(exchange, routingKey, message)
	return args.Error(0)
}

// MockCustomers реализует интерфейс CustomerSource
type MockCustomers struct {
	mock.Mock
}

func (m *MockCustomers) ListCustomerEmails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestBroadcast(t *testing.T) {
	publisher := new(MockPublisher)
	customers := new(MockCustomers)
	service := NewNotifyService(publisher, customers, testLogger())

	customers.On("ListCustomerEmails", mock.Anything).
		Return([]string{"a@example.com", "b@example.com"}, nil)
	publisher.On("Publish", rabbitmq.BroadcastExchange, rabbitmq.BroadcastRoutingKey,
		mock.MatchedBy(func(msg models.BroadcastMessage) bool {
			return msg.Message == "hello" && len(msg.Emails) == 2
		})).Return(nil)

	count, err := service.Broadcast(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	publisher.AssertExpectations(t)
}

func TestBroadcastPublishError(t *testing.T) {
	publisher := new(MockPublisher)
	customers := new(MockCustomers)
	service := NewNotifyService(publisher, customers, testLogger())

	customers.On("ListCustomerEmails", mock.Anything).Return([]string{"a@example.com"}, nil)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("broker down"))

	_, err := service.Broadcast(context.Background(), "hello")
	assert.Error(t, err)
}
