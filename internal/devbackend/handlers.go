package devbackend

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/attendash/internal/logger"
	"github.com/attendash/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("writeJSON encode: %v", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}

// paged — DRF-формат ответа списка.
type paged struct {
	Count   int `json:"count"`
	Results any `json:"results"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeDetail(w, http.StatusBadRequest, "Malformed request.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.user.Username != creds.Username || acc.password != creds.Password {
			continue
		}
		token := uuid.NewString()
		s.tokens[token] = acc.user.Username
		writeJSON(w, http.StatusOK, map[string]any{
			"token": token,
			"user":  acc.user,
		})
		return
	}
	writeJSON(w, http.StatusBadRequest, map[string][]string{
		"non_field_errors": {"Unable to log in with provided credentials."},
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	const prefix = "Token "
	s.mu.Lock()
	delete(s.tokens, r.Header.Get("Authorization")[len(prefix):])
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"detail": "Successfully logged out."})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	const prefix = "Token "
	s.mu.Lock()
	username := s.tokens[r.Header.Get("Authorization")[len(prefix):]]
	var me *model.User
	for _, acc := range s.accounts {
		if acc.user.Username == username {
			u := acc.user
			me = &u
			break
		}
	}
	s.mu.Unlock()
	if me == nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid token.")
		return
	}
	writeJSON(w, http.StatusOK, me)
}

// handleUsers отдаёт пользователей простым массивом (без пагинации) —
// клиент обязан уметь считать и такой формат.
func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	users := make([]model.User, 0, len(s.accounts))
	for _, acc := range s.accounts {
		users = append(users, acc.user)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	devices := append([]device(nil), s.devices...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, paged{Count: len(devices), Results: devices})
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	s.mu.Lock()
	s.refreshRecords()
	var day []model.AttendanceRecord
	for _, rec := range s.records {
		if date == "" || rec.Timestamp.Local().Format("2006-01-02") == date {
			day = append(day, rec)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, paged{Count: len(day), Results: day})
}

func (s *Server) handleLeaves(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	s.mu.Lock()
	var filtered []leave
	for _, l := range s.leaves {
		if status == "" || l.Status == status {
			filtered = append(filtered, l)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, paged{Count: len(filtered), Results: filtered})
}

// handleRecords отдаёт limit последних отметок, новые первыми.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)
	s.mu.Lock()
	s.refreshRecords()
	recent := make([]model.AttendanceRecord, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, s.records[i])
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, paged{Count: len(recent), Results: recent})
}
