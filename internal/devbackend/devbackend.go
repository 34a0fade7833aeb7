// Package devbackend — стаб REST API посещаемости для разработки и демо:
// те же эндпоинты и формы ответов, что у боевого бэкенда, но всё в памяти
// и без внешних зависимостей. Консоль с флагом -dev поднимает его в своём
// процессе.
package devbackend

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/attendash/internal/model"
)

// account — учётка стаба; пароли в открытом виде, это фикстуры.
type account struct {
	user     model.User
	password string
}

type device struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	IP   string `json:"ip_address,omitempty"`
}

type leave struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Server — состояние стаба. Все коллекции под одним мьютексом: нагрузка
// здесь — один дашборд.
type Server struct {
	mu       sync.Mutex
	accounts []account
	devices  []device
	leaves   []leave
	records  []model.AttendanceRecord
	tokens   map[string]string // token → username
	nextID   int
	lastSeed time.Time
	now      func() time.Time
}

// New создаёт стаб с демо-данными (учётка admin/admin123).
func New() *Server {
	s := &Server{
		tokens: make(map[string]string),
		now:    time.Now,
		nextID: 1,
	}
	s.seed()
	return s
}

// Router собирает chi-роутер с тем же контрактом, что у боевого API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRFToken", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(s.csrfCookie)

	r.Post("/api/auth/login/", s.handleLogin)
	r.Group(func(r chi.Router) {
		r.Use(s.tokenAuth)
		r.Get("/api/auth/users/me/", s.handleMe)
		r.Get("/api/auth/users/", s.handleUsers)
		r.Get("/api/devices/", s.handleDevices)
		r.Get("/api/attendance/daily/", s.handleDaily)
		r.Get("/api/attendance/leaves/", s.handleLeaves)
		r.Get("/api/attendance/records/", s.handleRecords)
		r.Post("/api/auth/logout/", s.handleLogout)
	})
	return r
}

// csrfCookie выдаёт csrftoken каждому клиенту, у которого его ещё нет, —
// как это делает Django.
func (s *Server) csrfCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("csrftoken"); err != nil {
			http.SetCookie(w, &http.Cookie{
				Name:  "csrftoken",
				Value: uuid.NewString(),
				Path:  "/",
			})
		}
		next.ServeHTTP(w, r)
	})
}

// tokenAuth проверяет заголовок "Authorization: Token <t>".
func (s *Server) tokenAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const prefix = "Token "
		header := r.Header.Get("Authorization")
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}
		s.mu.Lock()
		_, ok := s.tokens[header[len(prefix):]]
		s.mu.Unlock()
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Invalid token.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
