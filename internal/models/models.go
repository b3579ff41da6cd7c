// Package models содержит доменные структуры сервиса.
package models

import "time"

// QuotaRecord запись учета потребления квоты для одного пользователя.
// Ключом служит identity — строка вида email, которую прислал клиент.
type QuotaRecord struct {
	Identity           string `json:"identity"`
	Used               int    `json:"used"`
	Subscribed         bool   `json:"subscribed"`
	ProviderCustomerID string `json:"provider_customer_id,omitempty"`
}

// QuotaDecision результат атомарной проверки квоты для одной попытки.
type QuotaDecision struct {
	Allowed    bool
	Used       int
	Limit      int
	Subscribed bool
}

// Статусы платежной сессии.
const (
	SessionStatusPending   = "pending"
	SessionStatusCompleted = "completed"
	SessionStatusExpired   = "expired"
)

// CheckoutSession платежная сессия, выданная провайдером.
type CheckoutSession struct {
	ID        string    `json:"id"`
	Identity  string    `json:"identity"`
	URL       string    `json:"url"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// EventCheckoutSessionCompleted тип события провайдера об успешной оплате.
const EventCheckoutSessionCompleted = "checkout.session.completed"

// WebhookEvent событие, присланное платежным провайдером.
type WebhookEvent struct {
	Event  string `json:"event"`
	Object struct {
		ID       string `json:"id"`
		Customer string `json:"customer"`
	} `json:"object"`
}

// ActivationEvent сообщение о завершенной подписке для брокера.
type ActivationEvent struct {
	Identity   string    `json:"user_id"`
	SessionID  string    `json:"session_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
