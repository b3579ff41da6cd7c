// Package quota реализует серверный шлюз квоты: авторизацию каждой
// попытки загрузки, компенсацию неудачных попыток и активацию подписки.
package quota

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/refactor-hub/internal/lib/sl"
	"github.com/magabrotheeeer/refactor-hub/internal/models"
)

// Repository описывает хранилище записей квот.
type Repository interface {
	AuthorizeAttempt(ctx context.Context, identity string, limit int) (models.QuotaDecision, error)
	ReleaseAttempt(ctx context.Context, identity string) error
	MarkSubscribedByCustomer(ctx context.Context, customerID string) (string, error)
	GetRecord(ctx context.Context, identity string) (*models.QuotaRecord, error)
}

// Cache описывает кэш записей квот. Может отсутствовать.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

const cacheTTL = 5 * time.Minute

// Service сервис учета квот.
type Service struct {
	repo  Repository
	cache Cache // nil, когда redis не настроен
	log   *slog.Logger
	limit int
}

// New создает сервис с заданным бесплатным лимитом.
func New(repo Repository, cache Cache, log *slog.Logger, limit int) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
		limit: limit,
	}
}

func cacheKey(identity string) string {
	return "quota:" + identity
}

// Authorize атомарно резервирует одну попытку загрузки. Проверка и
// инкремент выполняются хранилищем под блокировкой по ключу identity.
func (s *Service) Authorize(ctx context.Context, identity string) (models.QuotaDecision, error) {
	const op = "services.quota.Authorize"

	decision, err := s.repo.AuthorizeAttempt(ctx, identity, s.limit)
	if err != nil {
		return models.QuotaDecision{}, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		rec := models.QuotaRecord{
			Identity:   identity,
			Used:       decision.Used,
			Subscribed: decision.Subscribed,
		}
		if err := s.cache.Set(cacheKey(identity), rec, cacheTTL); err != nil {
			s.log.Warn("failed to update quota cache", sl.Err(err))
		}
	}
	return decision, nil
}

// Release возвращает попытку, сгоревшую из-за сбоя конвейера рефакторинга.
func (s *Service) Release(ctx context.Context, identity string) error {
	const op = "services.quota.Release"

	if err := s.repo.ReleaseAttempt(ctx, identity); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(cacheKey(identity)); err != nil {
			s.log.Warn("failed to invalidate quota cache", sl.Err(err))
		}
	}
	return nil
}

// MarkSubscribedByCustomer включает подписку по идентификатору клиента
// платежного провайдера и сбрасывает кэш. Вызов идемпотентен.
func (s *Service) MarkSubscribedByCustomer(ctx context.Context, customerID string) (string, error) {
	const op = "services.quota.MarkSubscribedByCustomer"

	identity, err := s.repo.MarkSubscribedByCustomer(ctx, customerID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(cacheKey(identity)); err != nil {
			s.log.Warn("failed to invalidate quota cache", sl.Err(err))
		}
	}
	return identity, nil
}

// Status возвращает текущее состояние квоты пользователя, сначала из кэша.
func (s *Service) Status(ctx context.Context, identity string) (*models.QuotaRecord, error) {
	const op = "services.quota.Status"

	if s.cache != nil {
		var rec models.QuotaRecord
		found, err := s.cache.Get(cacheKey(identity), &rec)
		if err != nil {
			s.log.Warn("failed to read quota cache", sl.Err(err))
		}
		if err == nil && found {
			return &rec, nil
		}
	}

	rec, err := s.repo.GetRecord(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if s.cache != nil {
		if err := s.cache.Set(cacheKey(identity), rec, cacheTTL); err != nil {
			s.log.Warn("failed to update quota cache", sl.Err(err))
		}
	}
	return rec, nil
}

// Limit возвращает настроенный бесплатный лимит.
func (s *Service) Limit() int {
	return s.limit
}
