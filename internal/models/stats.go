package models

import "time"

// OrderStats — сводная статистика по всей коллекции заказов.
// Revenue не учитывает отменённые заказы; AvgDeliveryMinutes считается
// только по доставленным заказам с непустым deliveredAt (0 при пустом наборе).
type OrderStats struct {
	Total          int     `json:"total"`
	Pending        int     `json:"pending"`
	Preparing      int     `json:"preparing"`
	OutForDelivery int     `json:"outForDelivery"`
	Delivered      int     `json:"delivered"`
	Cancelled      int     `json:"cancelled"`
	Revenue        float64 `json:"revenue"`

	AvgDeliveryMinutes int `json:"avgDeliveryMinutes"`
	TotalCustomers     int `json:"totalCustomers"`

	TodayOrders       int     `json:"todayOrders"`
	TodayRevenue      float64 `json:"todayRevenue"`
	TodayDelivered    int     `json:"todayDelivered"`
	NewCustomersToday int     `json:"newCustomersToday"`
}

// CustomerSummary — агрегат по покупателю, собранный из его заказов.
// Контактные данные берутся из последнего заказа.
type CustomerSummary struct {
	UserUID    string    `json:"uid"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	OrderCount int       `json:"orderCount"`
	TotalSpent float64   `json:"totalSpent"`
	LastOrder  time.Time `json:"lastOrder"`
	FirstOrder time.Time `json:"firstOrder"`
}
