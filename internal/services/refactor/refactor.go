// Package refactor реализует конвейер обработки загруженного архива:
// распаковка, рефакторинг каждого .js/.jsx файла внешним движком,
// сборка результата в новый архив. Сам алгоритм рефакторинга и проверка
// содержимого архива остаются внешними сотрудничающими сервисами.
package refactor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/magabrotheeeer/refactor-hub/internal/lib/bundle"
	"github.com/magabrotheeeer/refactor-hub/internal/lib/sl"
)

// ErrNoOutput возвращается, когда ни один файл архива не удалось отрефакторить.
var ErrNoOutput = errors.New("no refactor output")

// Refactorer внешний движок рефакторинга одного файла.
type Refactorer interface {
	Refactor(ctx context.Context, path string, source string) (string, error)
}

// Scanner внешняя проверка безопасности содержимого архива,
// вызывается до распаковки.
type Scanner interface {
	Scan(ctx context.Context, name string, data []byte) error
}

// NopScanner проверка-заглушка, пропускающая любой архив.
type NopScanner struct{}

// Scan всегда возвращает nil.
func (NopScanner) Scan(_ context.Context, _ string, _ []byte) error { return nil }

// Service конвейер рефакторинга.
type Service struct {
	log        *slog.Logger
	refactorer Refactorer
	scanner    Scanner
	memo       *lru.LRU[string, string]
}

// New создает конвейер. Результаты рефакторинга мемоизируются по хэшу
// содержимого файла: повторная загрузка того же кода не дергает движок.
func New(log *slog.Logger, refactorer Refactorer, scanner Scanner, memoSize int, memoTTL time.Duration) *Service {
	return &Service{
		log:        log,
		refactorer: refactorer,
		scanner:    scanner,
		memo:       lru.NewLRU[string, string](memoSize, nil, memoTTL),
	}
}

// Process обрабатывает загруженный архив и возвращает архив с результатом
// и количество отрефакторенных файлов. Файл, который движок не осилил,
// пропускается; если не осилен ни один — ErrNoOutput.
func (s *Service) Process(ctx context.Context, name string, archive []byte) ([]byte, int, error) {
	const op = "services.refactor.Process"

	if err := s.scanner.Scan(ctx, name, archive); err != nil {
		return nil, 0, fmt.Errorf("%s: scan: %w", op, err)
	}

	files, err := bundle.Unpack(archive)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var refactored []bundle.File
	for _, f := range files {
		ext := path.Ext(f.Path)
		if ext != ".js" && ext != ".jsx" {
			continue
		}

		result, err := s.refactorFile(ctx, f.Path, string(f.Data))
		if err != nil {
			s.log.Warn("skipping file, refactor failed",
				slog.String("path", f.Path), sl.Err(err))
			continue
		}
		refactored = append(refactored, bundle.File{Path: f.Path, Data: []byte(result)})
	}

	if len(refactored) == 0 {
		return nil, 0, fmt.Errorf("%s: %w", op, ErrNoOutput)
	}

	out, err := bundle.Pack(refactored)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return out, len(refactored), nil
}

func (s *Service) refactorFile(ctx context.Context, filePath, source string) (string, error) {
	sum := sha256.Sum256([]byte(source))
	key := hex.EncodeToString(sum[:])

	if cached, ok := s.memo.Get(key); ok {
		return cached, nil
	}

	result, err := s.refactorer.Refactor(ctx, filePath, source)
	if err != nil {
		return "", err
	}

	s.memo.Add(key, result)
	return result, nil
}
