package paymentprovider

// Запрос на создание клиента у провайдера
type CreateCustomerRequest struct {
	Email string `json:"email"`
}

// Ответ провайдера на создание клиента
type CreateCustomerResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Позиция в платежной сессии
type LineItem struct {
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// Запрос на создание платежной сессии в режиме подписки
type CreateSessionRequest struct {
	Customer   string     `json:"customer"`
	Mode       string     `json:"mode"`
	LineItems  []LineItem `json:"line_items"`
	SuccessURL string     `json:"success_url"`
	CancelURL  string     `json:"cancel_url"`
}

// Ответ провайдера с адресом страницы оплаты
type CreateSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
