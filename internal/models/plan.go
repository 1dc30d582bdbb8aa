package models

import "time"

// Plan — позиция каталога тарифных планов. Название уникально.
// InfoContent — набор текстов для ротации на витрине.
type Plan struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	BillingPeriod string    `json:"billingPeriod"`
	Description   string    `json:"description"`
	Features      []string  `json:"features"`
	Image         string    `json:"image"`
	InfoContent   []string  `json:"infoContent"`
	IsPopular     bool      `json:"isPopular"`
	BadgeColor    string    `json:"badgeColor"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DummyPlan используется для приёма данных плана из JSON-запроса.
type DummyPlan struct {
	Name          string   `json:"name" validate:"required"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	BillingPeriod string   `json:"billingPeriod"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
	Image         string   `json:"image"`
	InfoContent   []string `json:"infoContent"`
	IsPopular     bool     `json:"isPopular"`
	BadgeColor    string   `json:"badgeColor"`
}

// DummyPlanUpdate — частичная правка плана: nil-поле оставляет текущее
// значение, присланное перезаписывает его.
type DummyPlanUpdate struct {
	Name          *string   `json:"name" validate:"omitempty,min=1"`
	Price         *float64  `json:"price" validate:"omitempty,gt=0"`
	BillingPeriod *string   `json:"billingPeriod"`
	Description   *string   `json:"description"`
	Features      *[]string `json:"features"`
	Image         *string   `json:"image"`
	InfoContent   *[]string `json:"infoContent"`
	IsPopular     *bool     `json:"isPopular"`
	BadgeColor    *string   `json:"badgeColor"`
}
