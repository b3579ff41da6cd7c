// Package observability содержит прикладные метрики Prometheus.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Исходы обработки загрузки для метрики UploadsTotal.
const (
	OutcomeAuthorized    = "authorized"
	OutcomeQuotaExceeded = "quota_exceeded"
	OutcomeRejected      = "rejected"
	OutcomeFailed        = "failed"
)

// Metrics прикладные метрики сервиса.
type Metrics struct {
	UploadsTotal          *prometheus.CounterVec
	RefactoredFilesTotal  prometheus.Counter
	CheckoutSessionsTotal prometheus.Counter
	WebhookEventsTotal    *prometheus.CounterVec
}

// New регистрирует метрики в переданном регистраторе.
func New(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		UploadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refactorhub_uploads_total",
				Help: "Total number of upload attempts by outcome",
			},
			[]string{"outcome"},
		),
		RefactoredFilesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "refactorhub_refactored_files_total",
				Help: "Total number of source files successfully refactored",
			},
		),
		CheckoutSessionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "refactorhub_checkout_sessions_total",
				Help: "Total number of checkout sessions created",
			},
		),
		WebhookEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refactorhub_webhook_events_total",
				Help: "Total number of payment provider webhook events by type",
			},
			[]string{"event"},
		),
	}

	registry.MustRegister(
		m.UploadsTotal,
		m.RefactoredFilesTotal,
		m.CheckoutSessionsTotal,
		m.WebhookEventsTotal,
	)
	return m
}
