// Package memory реализует хранилище квот и платежных сессий в памяти.
// Используется в локальном окружении и в тестах. Записи квот шардированы
// по хэшу identity: проверка-и-инкремент сериализуется в пределах шарда,
// попытки разных пользователей почти никогда не конкурируют за один мьютекс.
package memory

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/magabrotheeeer/refactor-hub/internal/models"
	"github.com/magabrotheeeer/refactor-hub/internal/storage/repository"
)

const shardCount = 32

type shard struct {
	mu      sync.Mutex
	records map[string]*models.QuotaRecord
}

// Store потокобезопасное хранилище в памяти.
type Store struct {
	shards [shardCount]*shard

	sessionsMu sync.Mutex
	sessions   map[string]*models.CheckoutSession
}

// New создает пустое хранилище.
func New() *Store {
	s := &Store{
		sessions: make(map[string]*models.CheckoutSession),
	}
	for i := range s.shards {
		s.shards[i] = &shard{records: make(map[string]*models.QuotaRecord)}
	}
	return s
}

func (s *Store) shardFor(identity string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(identity))
	return s.shards[h.Sum32()%shardCount]
}

func (sh *shard) getOrCreate(identity string) *models.QuotaRecord {
	rec, ok := sh.records[identity]
	if !ok {
		rec = &models.QuotaRecord{Identity: identity}
		sh.records[identity] = rec
	}
	return rec
}

// AuthorizeAttempt атомарно проверяет и резервирует одну попытку загрузки.
func (s *Store) AuthorizeAttempt(_ context.Context, identity string, limit int) (models.QuotaDecision, error) {
	sh := s.shardFor(identity)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	rec := sh.getOrCreate(identity)
	decision := models.QuotaDecision{
		Used:       rec.Used,
		Limit:      limit,
		Subscribed: rec.Subscribed,
	}
	if !rec.Subscribed && rec.Used >= limit {
		return decision, nil
	}

	rec.Used++
	decision.Allowed = true
	decision.Used = rec.Used
	return decision, nil
}

// ReleaseAttempt возвращает зарезервированную попытку, не опускаясь ниже нуля.
func (s *Store) ReleaseAttempt(_ context.Context, identity string) error {
	sh := s.shardFor(identity)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	rec := sh.getOrCreate(identity)
	if rec.Used > 0 {
		rec.Used--
	}
	return nil
}

// GetRecord возвращает копию записи квоты.
func (s *Store) GetRecord(_ context.Context, identity string) (*models.QuotaRecord, error) {
	sh := s.shardFor(identity)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	rec, ok := sh.records[identity]
	if !ok {
		return nil, fmt.Errorf("memory.GetRecord: %w", repository.ErrNotFound)
	}
	cp := *rec
	return &cp, nil
}

// CreateRecord лениво создает запись квоты.
func (s *Store) CreateRecord(_ context.Context, identity string) error {
	sh := s.shardFor(identity)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.getOrCreate(identity)
	return nil
}

// SetProviderCustomerID привязывает клиента платежного провайдера.
func (s *Store) SetProviderCustomerID(_ context.Context, identity, customerID string) error {
	sh := s.shardFor(identity)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.getOrCreate(identity).ProviderCustomerID = customerID
	return nil
}

// MarkSubscribedByCustomer включает подписку по идентификатору клиента провайдера.
func (s *Store) MarkSubscribedByCustomer(_ context.Context, customerID string) (string, error) {
	for _, sh := range s.shards {
		sh.mu.Lock()
		for _, rec := range sh.records {
			if rec.ProviderCustomerID == customerID {
				rec.Subscribed = true
				identity := rec.Identity
				sh.mu.Unlock()
				return identity, nil
			}
		}
		sh.mu.Unlock()
	}
	return "", fmt.Errorf("memory.MarkSubscribedByCustomer: %w", repository.ErrNotFound)
}

// CreateSession сохраняет новую платежную сессию.
func (s *Store) CreateSession(_ context.Context, session models.CheckoutSession) error {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	cp := session
	s.sessions[session.ID] = &cp
	return nil
}

// MarkSessionCompleted помечает сессию завершенной, повтор — no-op.
func (s *Store) MarkSessionCompleted(_ context.Context, sessionID string) (bool, error) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok || session.Status == models.SessionStatusCompleted {
		return false, nil
	}
	session.Status = models.SessionStatusCompleted
	return true, nil
}

// ExpireStaleSessions переводит зависшие pending-сессии в expired.
func (s *Store) ExpireStaleSessions(_ context.Context, olderThan time.Duration) (int, error) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	var expired int
	for _, session := range s.sessions {
		if session.Status == models.SessionStatusPending && session.CreatedAt.Before(cutoff) {
			session.Status = models.SessionStatusExpired
			expired++
		}
	}
	return expired, nil
}
