// Package memory — сессия в памяти процесса (тесты и режим -dev,
// чтобы не трогать файл сессии разработчика).
package memory

import (
	"sync"

	"github.com/attendash/internal/model"
)

type Store struct {
	mu       sync.Mutex
	sess     *model.Session
	remember bool
}

func New() *Store {
	return &Store{}
}

func (s *Store) Load() (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return nil, nil
	}
	cp := *s.sess
	return &cp, nil
}

func (s *Store) Save(sess *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	s.sess = &cp
	s.remember = sess.Remember
	return nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
	return nil
}

func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
	s.remember = false
	return nil
}

// Remember сообщает, сохранился ли флаг после Clear (используется в тестах).
func (s *Store) Remember() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remember
}
