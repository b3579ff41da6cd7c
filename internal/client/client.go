// Package client реализует клиентскую часть протокола: отправку архива
// на рефакторинг, запрос платежной сессии и чтение состояния квоты.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/magabrotheeeer/refactor-hub/internal/lib/identity"
)

// Status исход отправки архива. Все ответы сервера и сетевые сбои
// выражаются значением Status, а не ошибкой: ошибку возвращают только
// локальные проверки, выполненные до обращения к сети.
type Status int

// Возможные исходы отправки архива.
const (
	// StatusAuthorized попытка авторизована, получен результат.
	StatusAuthorized Status = iota
	// StatusQuotaExceeded бесплатный лимит исчерпан, приложен адрес оплаты.
	StatusQuotaExceeded
	// StatusFailed любой другой отказ сервера или сбой сети.
	StatusFailed
)

// Result результат отправки архива.
type Result struct {
	Status      Status
	Artifact    []byte // результат рефакторинга при StatusAuthorized
	Filename    string // детерминированное имя для сохранения результата
	Message     string // сообщение для пользователя при отказе
	CheckoutURL string // адрес оплаты при StatusQuotaExceeded, без изменений
}

// ErrMissingArtifact означает, что архив для отправки не выбран.
var ErrMissingArtifact = errors.New("artifact is required")

// Client клиент сервиса рефакторинга.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New создает клиента с заданным адресом сервиса и таймаутом запросов.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// quotaBody тело ответа сервера при отказе. Поле checkout_url заполнено
// только при исчерпанном лимите.
type quotaBody struct {
	Error       string `json:"error"`
	CheckoutURL string `json:"checkout_url"`
}

// Submit отправляет архив на рефакторинг от имени пользователя.
// Невалидный идентификатор и пустой архив возвращаются ошибкой без
// единого сетевого вызова; все остальные исходы выражены в Result.
func (c *Client) Submit(ctx context.Context, rawIdentity string, artifact []byte, filename string) (*Result, error) {
	const op = "client.Submit"

	userID, err := identity.Resolve(rawIdentity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(artifact) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingArtifact)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err = part.Write(artifact); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = writer.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("User-ID", userID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Result{Status: StatusFailed, Message: "request failed"}, nil
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Result{Status: StatusFailed, Message: "request failed"}, nil
	}

	if resp.StatusCode == http.StatusOK {
		return &Result{
			Status:   StatusAuthorized,
			Artifact: respBody,
			Filename: "refactored" + filepath.Ext(filename),
		}, nil
	}

	var parsed quotaBody
	_ = json.Unmarshal(respBody, &parsed)
	if parsed.CheckoutURL != "" {
		return &Result{
			Status:      StatusQuotaExceeded,
			Message:     parsed.Error,
			CheckoutURL: parsed.CheckoutURL,
		}, nil
	}

	message := parsed.Error
	if message == "" {
		message = "upload failed"
	}
	return &Result{Status: StatusFailed, Message: message}, nil
}

// Subscribe запрашивает платежную сессию и возвращает адрес страницы
// оплаты без изменений.
func (c *Client) Subscribe(ctx context.Context, rawIdentity string) (string, error) {
	const op = "client.Subscribe"

	userID, err := identity.Resolve(rawIdentity)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	payload, err := json.Marshal(map[string]string{"user_id": userID})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/create-checkout-session", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	var parsed quotaBody
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if parsed.CheckoutURL == "" {
		return "", fmt.Errorf("%s: response has no checkout_url", op)
	}
	return parsed.CheckoutURL, nil
}

// UsageInfo состояние квоты пользователя.
type UsageInfo struct {
	Used       int  `json:"used"`
	Limit      int  `json:"limit"`
	Subscribed bool `json:"subscribed"`
}

// Usage возвращает текущее состояние квоты пользователя.
func (c *Client) Usage(ctx context.Context, rawIdentity string) (*UsageInfo, error) {
	const op = "client.Usage"

	userID, err := identity.Resolve(rawIdentity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/usage", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("User-ID", userID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	var info UsageInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &info, nil
}
