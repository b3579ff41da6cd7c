// Package pages отдает простые HTML-страницы, на которые платежный
// провайдер возвращает браузер после оплаты или отмены.
package pages

import (
	"log/slog"
	"net/http"
)

const successHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Subscription active</title></head>
<body>
<h1>🎉 Subscription active! You can now upload more.</h1>
</body>
</html>`

const cancelHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Subscription canceled</title></head>
<body>
<h1>Subscription canceled. You remain on free plan.</h1>
</body>
</html>`

// Handler отдает страницы возврата после оплаты.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// Success godoc
// @Summary Страница успешной оплаты
// @Tags Checkout
// @Produce html
// @Success 200 "HTML-страница"
// @Router /success [get]
func (h *Handler) Success(w http.ResponseWriter, r *http.Request) {
	h.log.Info("success page rendered")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(successHTML))
}

// Cancel godoc
// @Summary Страница отмены оплаты
// @Tags Checkout
// @Produce html
// @Success 200 "HTML-страница"
// @Router /cancel [get]
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.log.Info("cancel page rendered")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(cancelHTML))
}
