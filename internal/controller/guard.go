// Package controller — логика экранов: охрана сессии, вход, дашборд.
// Контроллеры собираются с внедрёнными зависимостями (хранилище, API-клиент,
// view), поэтому в тестах живут без терминала и без сети.
package controller

import (
	"context"
	"errors"

	"github.com/attendash/internal/api"
	"github.com/attendash/internal/logger"
	"github.com/attendash/internal/session"
)

// Guard гоняет пользователя между экранами по состоянию сессии.
type Guard struct {
	store session.Store
	api   *api.Client
}

func NewGuard(store session.Store, client *api.Client) *Guard {
	return &Guard{store: store, api: client}
}

// RequireSession сообщает, можно ли показывать защищённый экран.
// Только проверка наличия токена, без похода на сервер: протухший токен
// обнаружится лениво, по первому 401.
func (g *Guard) RequireSession() bool {
	sess, err := g.store.Load()
	if err != nil {
		logger.Errorf("guard: load session: %v", err)
		return false
	}
	return sess != nil
}

// CheckExisting — проверка на экране входа: если токен сохранился с прошлого
// раза и сервер его подтверждает, вход пропускается. Отвергнутый токен тихо
// сбрасывается, без сообщения пользователю; сетевая ошибка только логируется —
// форма входа в любом случае остаётся рабочей.
func (g *Guard) CheckExisting(ctx context.Context) bool {
	sess, err := g.store.Load()
	if err != nil || sess == nil {
		return false
	}
	if _, err := g.api.Me(ctx); err != nil {
		var apiErr *api.Error
		switch {
		case errors.Is(err, api.ErrUnauthorized):
			// Сессия уже сброшена клиентом.
		case errors.As(err, &apiErr):
			if cerr := g.store.Clear(); cerr != nil {
				logger.Errorf("guard: clear stale session: %v", cerr)
			}
		default:
			logger.Errorf("guard: verify token: %v", err)
		}
		return false
	}
	return true
}
