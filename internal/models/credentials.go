package models

// Роли, присваиваемые по спискам доступа.
const (
	RoleAdmin    = "admin"
	RoleDelivery = "delivery"
	RoleCustomer = "customer"
)

// Credentials — списки почтовых адресов администраторов и курьеров.
// Хранится в JSON-файле, все адреса приводятся к нижнему регистру.
type Credentials struct {
	Admins   []string `json:"admins"`
	Delivery []string `json:"delivery"`
}

// DummyCredential используется для приёма правки списков доступа из JSON-запроса.
type DummyCredential struct {
	Type  string `json:"type" validate:"required,oneof=admin delivery"`
	Email string `json:"email" validate:"required,email"`
}

// BroadcastMessage — широковещательное уведомление администратора,
// публикуемое в очередь для сервиса рассылки.
type BroadcastMessage struct {
	Message string   `json:"message"`
	SentAt  string   `json:"sentAt"`
	Emails  []string `json:"emails,omitempty"`
}
