// Package session определяет локальное хранилище сессии — аналог постоянного
// key-value стора браузера. Токен и пользователь записываются и сбрасываются
// только парой; интерфейса для записи одного без другого нет.
package session

import "github.com/attendash/internal/model"

// Store — хранилище сессии.
// Реализации: file.Store (постоянное) и memory.Store (тесты, -dev).
type Store interface {
	// Load возвращает сессию или nil, если пользователь не вошёл.
	Load() (*model.Session, error)
	// Save сохраняет токен и пользователя атомарно.
	Save(s *model.Session) error
	// Clear сбрасывает токен и пользователя; флаг remember сохраняется
	// (вызывается при 401 — сервер отозвал токен, а не пользователь).
	Clear() error
	// ClearAll сбрасывает всё, включая remember (явный выход).
	ClearAll() error
}
