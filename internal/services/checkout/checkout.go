// Package checkout выпускает платежные сессии провайдера и обрабатывает
// его webhook-события. Завершение сессии активирует подписку пользователя.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/refactor-hub/internal/config"
	"github.com/magabrotheeeer/refactor-hub/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/refactor-hub/internal/lib/sl"
	"github.com/magabrotheeeer/refactor-hub/internal/models"
	"github.com/magabrotheeeer/refactor-hub/internal/paymentprovider"
)

// Repository описывает хранилище записей квот и платежных сессий.
type Repository interface {
	GetRecord(ctx context.Context, identity string) (*models.QuotaRecord, error)
	CreateRecord(ctx context.Context, identity string) error
	SetProviderCustomerID(ctx context.Context, identity, customerID string) error
	CreateSession(ctx context.Context, session models.CheckoutSession) error
	MarkSessionCompleted(ctx context.Context, sessionID string) (bool, error)
	ExpireStaleSessions(ctx context.Context, olderThan time.Duration) (int, error)
}

// ProviderClient определяет интерфейс платежного провайдера.
type ProviderClient interface {
	CreateCustomer(email string) (*paymentprovider.CreateCustomerResponse, error)
	CreateCheckoutSession(reqParams paymentprovider.CreateSessionRequest) (*paymentprovider.CreateSessionResponse, error)
}

// QuotaService активирует подписку в шлюзе квоты.
type QuotaService interface {
	MarkSubscribedByCustomer(ctx context.Context, customerID string) (string, error)
}

// Service сервис платежных сессий.
type Service struct {
	log      *slog.Logger
	repo     Repository
	provider ProviderClient
	quota    QuotaService
	channel  *amqp.Channel // nil, когда брокер не настроен
	cfg      config.Checkout
}

// New создает сервис платежных сессий.
func New(log *slog.Logger, repo Repository, provider ProviderClient,
	quota QuotaService, channel *amqp.Channel, cfg config.Checkout) *Service {
	return &Service{
		log:      log,
		repo:     repo,
		provider: provider,
		quota:    quota,
		channel:  channel,
		cfg:      cfg,
	}
}

// CreateSession создает платежную сессию для пользователя и возвращает
// адрес страницы оплаты. Клиент провайдера создается один раз и
// сохраняется в записи квоты.
func (s *Service) CreateSession(ctx context.Context, identity string) (string, error) {
	const op = "services.checkout.CreateSession"

	customerID, err := s.getOrCreateCustomer(ctx, identity)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	sessionResp, err := s.provider.CreateCheckoutSession(paymentprovider.CreateSessionRequest{
		Customer:   customerID,
		Mode:       "subscription",
		LineItems:  []paymentprovider.LineItem{{Price: s.cfg.PriceID, Quantity: 1}},
		SuccessURL: s.cfg.SuccessURL,
		CancelURL:  s.cfg.CancelURL,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	sessionID := sessionResp.ID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	session := models.CheckoutSession{
		ID:        sessionID,
		Identity:  identity,
		URL:       sessionResp.URL,
		Status:    models.SessionStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("checkout session created",
		slog.String("session_id", session.ID),
		slog.String("identity", identity))
	return sessionResp.URL, nil
}

func (s *Service) getOrCreateCustomer(ctx context.Context, identity string) (string, error) {
	if err := s.repo.CreateRecord(ctx, identity); err != nil {
		return "", err
	}
	rec, err := s.repo.GetRecord(ctx, identity)
	if err != nil {
		return "", err
	}
	if rec.ProviderCustomerID != "" {
		return rec.ProviderCustomerID, nil
	}

	customer, err := s.provider.CreateCustomer(identity)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetProviderCustomerID(ctx, identity, customer.ID); err != nil {
		return "", err
	}
	return customer.ID, nil
}

// ProcessWebhookEvent обрабатывает событие провайдера. Завершение сессии
// идемпотентно помечает её completed и включает подписку пользователя;
// остальные события только логируются.
func (s *Service) ProcessWebhookEvent(ctx context.Context, event *models.WebhookEvent) error {
	const op = "services.checkout.ProcessWebhookEvent"

	if event.Event != models.EventCheckoutSessionCompleted {
		s.log.Info("ignored webhook event", slog.String("event", event.Event))
		return nil
	}

	changed, err := s.repo.MarkSessionCompleted(ctx, event.Object.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	identity, err := s.quota.MarkSubscribedByCustomer(ctx, event.Object.Customer)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if changed && s.channel != nil {
		activation := models.ActivationEvent{
			Identity:   identity,
			SessionID:  event.Object.ID,
			OccurredAt: time.Now().UTC(),
		}
		if err := rabbitmq.PublishMessage(s.channel, "billing", "activated", activation); err != nil {
			s.log.Error("failed to publish activation event", sl.Err(err))
		}
	}

	s.log.Info("subscription activated",
		slog.String("identity", identity),
		slog.String("session_id", event.Object.ID))
	return nil
}

// ExpireStale переводит зависшие pending-сессии в expired.
func (s *Service) ExpireStale(ctx context.Context) (int, error) {
	const op = "services.checkout.ExpireStale"

	expired, err := s.repo.ExpireStaleSessions(ctx, s.cfg.SessionTTL)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return expired, nil
}
