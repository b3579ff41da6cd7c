// Package identity выводит стабильный ключ пользователя из введенной им строки,
// похожей на email. Проверка чисто синтаксическая и носит справочный характер:
// клиент не является доверенной стороной, поэтому сервер выполняет её повторно.
package identity

import (
	"errors"
	"strings"
)

// ErrInvalidIdentity возвращается, когда строка пуста или не похожа на email.
var ErrInvalidIdentity = errors.New("invalid identity")

// Resolve очищает и проверяет введенный идентификатор пользователя.
// Нормализация ограничена обрезкой пробелов: ключом квоты служит
// ровно та строка, которую ввел пользователь.
func Resolve(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidIdentity
	}
	at := strings.Index(trimmed, "@")
	if at <= 0 || at == len(trimmed)-1 {
		return "", ErrInvalidIdentity
	}
	return trimmed, nil
}
