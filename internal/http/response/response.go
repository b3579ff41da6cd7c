// Package response содержит типы JSON-ответов HTTP-обработчиков.
// Тела ответов плоские, без обертки: клиенты разбирают поля
// "error" и "checkout_url" напрямую.
package response

// ErrorResponse — тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// QuotaExceededResponse — тело ответа 402: лимит исчерпан, приложен
// адрес страницы оплаты, по которому клиент может перейти сразу.
type QuotaExceededResponse struct {
	Error       string `json:"error" example:"Free limit reached. Subscribe to continue."`
	CheckoutURL string `json:"checkout_url" example:"https://pay.example/s1"`
}

// CheckoutResponse — тело успешного ответа на запрос платежной сессии.
type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url" example:"https://pay.example/s1"`
}

// UsageResponse — текущее состояние квоты пользователя.
type UsageResponse struct {
	Used       int  `json:"used" example:"2"`
	Limit      int  `json:"limit" example:"3"`
	Subscribed bool `json:"subscribed" example:"false"`
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}
