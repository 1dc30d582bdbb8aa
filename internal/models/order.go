// Package models содержит доменные структуры витрины Savourly:
// заказы, тарифные планы, консультации и обращения в поддержку,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Статусы жизненного цикла заказа.
const (
	StatusPending        = "Pending"
	StatusPreparing      = "Preparing"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
)

// ValidStatuses — полный набор допустимых статусов заказа в порядке жизненного цикла.
var ValidStatuses = []string{
	StatusPending,
	StatusPreparing,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

// StatusTransitions задаёт явный граф переходов между статусами.
// Текущая конфигурация намеренно разрешает любой переход, включая возврат
// из Delivered обратно в Pending: это позволяет исправлять ошибочно
// проставленные статусы. Ограничение графа — правка одной таблицы.
var StatusTransitions = map[string][]string{
	StatusPending:        {StatusPending, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled},
	StatusPreparing:      {StatusPending, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled},
	StatusOutForDelivery: {StatusPending, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled},
	StatusDelivered:      {StatusPending, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled},
	StatusCancelled:      {StatusPending, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled},
}

// IsValidStatus сообщает, входит ли статус в допустимый набор.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CanTransition проверяет переход from -> to по таблице StatusTransitions.
func CanTransition(from, to string) bool {
	for _, s := range StatusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CustomerDetails — снимок данных покупателя, зафиксированный в момент
// оформления заказа. Не ссылается на профиль пользователя.
type CustomerDetails struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
	Email   string `json:"email"`
}

// OrderItem — позиция заказа. Название и цена плана копируются по значению:
// последующие правки каталога не меняют исторические заказы.
type OrderItem struct {
	PlanName string  `json:"planName" validate:"required"`
	Price    float64 `json:"price" validate:"required"`
	Quantity int     `json:"quantity" validate:"omitempty,min=1"`
}

// Order — основная модель заказа, используемая в бизнес-логике и хранилище.
// DeliveredAt равен nil, пока заказ ни разу не был переведён в Delivered;
// при возврате статуса назад отметка не сбрасывается.
type Order struct {
	OrderID         string          `json:"orderId"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
	Items           []OrderItem     `json:"items"`
	TotalPrice      float64         `json:"totalPrice"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"paymentMethod"`
	UserUID         string          `json:"firebaseUid"`
	Timestamp       time.Time       `json:"timestamp"`
	DeliveredAt     *time.Time      `json:"deliveredAt"`
}

// DummyOrder используется для приёма данных заказа из JSON-запроса
// до их валидации и преобразования в Order.
type DummyOrder struct {
	CustomerDetails CustomerDetails `json:"customerDetails" validate:"required"`
	Items           []OrderItem     `json:"items" validate:"required,min=1,dive"`
	TotalPrice      float64         `json:"totalPrice" validate:"required,gt=0"`
	PaymentMethod   string          `json:"paymentMethod"`
}

// OrderSummary — публичная выжимка заказа, возвращаемая при создании.
type OrderSummary struct {
	OrderID    string    `json:"orderId"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"totalPrice"`
	Timestamp  time.Time `json:"timestamp"`
}

// OrderFilter — параметры выборки заказов для привилегированных ролей.
// Пустой Status означает отсутствие фильтра.
type OrderFilter struct {
	Status string
	Limit  int
	Skip   int
}
