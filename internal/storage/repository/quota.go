package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/refactor-hub/internal/models"
)

// AuthorizeAttempt атомарно проверяет и резервирует одну попытку загрузки.
// Запись создается лениво при первой попытке. Строка блокируется через
// SELECT ... FOR UPDATE, поэтому две конкурентные попытки одного пользователя
// не могут обе увидеть used < limit: превышение лимита исключено структурно.
// Отказ не меняет счетчик.
func (s *Storage) AuthorizeAttempt(ctx context.Context, identity string, limit int) (models.QuotaDecision, error) {
	const op = "storage.AuthorizeAttempt"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.QuotaDecision{}, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO quota_records (identity) VALUES ($1)
		 ON CONFLICT (identity) DO NOTHING`, identity)
	if err != nil {
		return models.QuotaDecision{}, fmt.Errorf("%s: %w", op, err)
	}

	var used int
	var subscribed bool
	err = tx.QueryRowContext(ctx,
		`SELECT used, subscribed FROM quota_records
		 WHERE identity = $1
		 FOR UPDATE`, identity).Scan(&used, &subscribed)
	if err != nil {
		return models.QuotaDecision{}, fmt.Errorf("%s: %w", op, err)
	}

	decision := models.QuotaDecision{
		Used:       used,
		Limit:      limit,
		Subscribed: subscribed,
	}
	if !subscribed && used >= limit {
		if err := tx.Commit(); err != nil {
			return models.QuotaDecision{}, fmt.Errorf("%s: %w", op, err)
		}
		return decision, nil
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE quota_records SET used = used + 1 WHERE identity = $1`, identity)
	if err != nil {
		return models.QuotaDecision{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return models.QuotaDecision{}, fmt.Errorf("%s: %w", op, err)
	}

	decision.Allowed = true
	decision.Used = used + 1
	return decision, nil
}

// ReleaseAttempt возвращает зарезервированную попытку, если конвейер
// рефакторинга упал после авторизации. Счетчик не уходит ниже нуля.
func (s *Storage) ReleaseAttempt(ctx context.Context, identity string) error {
	const op = "storage.ReleaseAttempt"

	_, err := s.DB.ExecContext(ctx,
		`UPDATE quota_records SET used = GREATEST(used - 1, 0) WHERE identity = $1`, identity)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetRecord возвращает запись квоты пользователя.
func (s *Storage) GetRecord(ctx context.Context, identity string) (*models.QuotaRecord, error) {
	const op = "storage.GetRecord"

	rec := &models.QuotaRecord{Identity: identity}
	var customerID sql.NullString
	err := s.DB.QueryRowContext(ctx,
		`SELECT used, subscribed, provider_customer_id FROM quota_records
		 WHERE identity = $1`, identity).
		Scan(&rec.Used, &rec.Subscribed, &customerID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if customerID.Valid {
		rec.ProviderCustomerID = customerID.String
	}
	return rec, nil
}

// CreateRecord лениво создает запись квоты для пользователя.
func (s *Storage) CreateRecord(ctx context.Context, identity string) error {
	const op = "storage.CreateRecord"

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO quota_records (identity) VALUES ($1)
		 ON CONFLICT (identity) DO NOTHING`, identity)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetProviderCustomerID привязывает клиента платежного провайдера к записи квоты.
func (s *Storage) SetProviderCustomerID(ctx context.Context, identity, customerID string) error {
	const op = "storage.SetProviderCustomerID"

	_, err := s.DB.ExecContext(ctx,
		`UPDATE quota_records SET provider_customer_id = $2 WHERE identity = $1`,
		identity, customerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MarkSubscribedByCustomer включает подписку по идентификатору клиента
// провайдера и возвращает identity пользователя. Повторный вызов для уже
// подписанного пользователя безвреден. Если клиент неизвестен — ErrNotFound.
func (s *Storage) MarkSubscribedByCustomer(ctx context.Context, customerID string) (string, error) {
	const op = "storage.MarkSubscribedByCustomer"

	var identity string
	err := s.DB.QueryRowContext(ctx,
		`UPDATE quota_records SET subscribed = TRUE
		 WHERE provider_customer_id = $1
		 RETURNING identity`, customerID).Scan(&identity)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return identity, nil
}
