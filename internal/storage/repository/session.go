package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/refactor-hub/internal/models"
)

// CreateSession сохраняет новую платежную сессию.
func (s *Storage) CreateSession(ctx context.Context, session models.CheckoutSession) error {
	const op = "storage.CreateSession"

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO checkout_sessions (id, identity, url, status, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		session.ID, session.Identity, session.URL, session.Status, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MarkSessionCompleted помечает сессию завершенной. Возвращает false,
// когда сессия уже была завершена или не существует — повтор webhook
// не меняет состояние.
func (s *Storage) MarkSessionCompleted(ctx context.Context, sessionID string) (bool, error) {
	const op = "storage.MarkSessionCompleted"

	result, err := s.DB.ExecContext(ctx,
		`UPDATE checkout_sessions SET status = $2
		 WHERE id = $1 AND status <> $2`,
		sessionID, models.SessionStatusCompleted)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}

// ExpireStaleSessions переводит зависшие pending-сессии в expired
// и возвращает количество затронутых строк.
func (s *Storage) ExpireStaleSessions(ctx context.Context, olderThan time.Duration) (int, error) {
	const op = "storage.ExpireStaleSessions"

	result, err := s.DB.ExecContext(ctx,
		`UPDATE checkout_sessions SET status = $1
		 WHERE status = $2 AND created_at < $3`,
		models.SessionStatusExpired, models.SessionStatusPending,
		time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
