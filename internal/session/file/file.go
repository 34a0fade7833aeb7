// Package file хранит сессию в одном JSON-файле в конфиг-директории пользователя.
// Файл заменяется целиком через rename, поэтому токен и пользователь не могут
// быть видны записанными наполовину.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/attendash/internal/model"
)

type Store struct {
	path string
}

// New создаёт хранилище по указанному пути. Пустой путь — путь по умолчанию
// (os.UserConfigDir()/attendash/session.json).
func New(path string) (*Store, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("session file: %w", err)
		}
		path = filepath.Join(dir, "attendash", "session.json")
	}
	return &Store{path: path}, nil
}

// Path возвращает путь к файлу сессии.
func (s *Store) Path() string { return s.path }

func (s *Store) Load() (*model.Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session read: %w", err)
	}
	var sess model.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("session parse: %w", err)
	}
	if sess.Token == "" {
		// Файл остался после Clear — хранит только remember.
		return nil, nil
	}
	return &sess, nil
}

func (s *Store) Save(sess *model.Session) error {
	return s.write(sess)
}

func (s *Store) Clear() error {
	prev, err := s.Load()
	remember := false
	if err == nil && prev != nil {
		remember = prev.Remember
	}
	if !remember {
		// Дополнительно читаем флаг из «пустого» файла после предыдущего Clear.
		if data, rerr := os.ReadFile(s.path); rerr == nil {
			var left model.Session
			if json.Unmarshal(data, &left) == nil {
				remember = left.Remember
			}
		}
	}
	if !remember {
		return s.remove()
	}
	return s.write(&model.Session{Remember: true})
}

func (s *Store) ClearAll() error {
	return s.remove()
}

func (s *Store) remove() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session remove: %w", err)
	}
	return nil
}

func (s *Store) write(sess *model.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("session write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("session rename: %w", err)
	}
	return nil
}
