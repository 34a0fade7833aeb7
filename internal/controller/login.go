package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/attendash/internal/api"
	"github.com/attendash/internal/logger"
	"github.com/attendash/internal/session"
	"github.com/attendash/internal/ui"
)

// Тексты формы входа. Совпадают с сообщениями веб-клиента бэкенда.
const (
	msgEmptyFields  = "Please enter both username and password."
	msgBadCreds     = "Invalid username or password. Please try again."
	msgGenericError = "An error occurred. Please try again later."
)

const (
	defaultErrorTTL     = 5 * time.Second
	defaultSuccessDelay = time.Second
)

// Login проводит форму входа по состояниям Idle → Submitting → {Success, Failed}.
type Login struct {
	api   *api.Client
	store session.Store
	view  ui.LoginView

	// ErrorTTL — время жизни баннера ошибки; SuccessDelay — косметическая
	// пауза между отметкой об успехе и переходом на дашборд. Нули — значения
	// по умолчанию (5s и 1s); в тестах ставятся короче.
	ErrorTTL     time.Duration
	SuccessDelay time.Duration

	mu        sync.Mutex
	hideTimer *time.Timer
}

func NewLogin(client *api.Client, store session.Store, view ui.LoginView) *Login {
	return &Login{api: client, store: store, view: view}
}

// Submit отправляет форму. true — вход выполнен, сессия сохранена,
// пора на дашборд; false — остаёмся на форме (ошибка уже показана).
func (l *Login) Submit(ctx context.Context, username, password string, remember bool) bool {
	if username == "" || password == "" {
		// Без похода в сеть.
		l.showError(msgEmptyFields)
		return false
	}

	l.view.SetBusy(true)
	sess, err := l.api.Login(ctx, username, password)
	if err != nil {
		var apiErr *api.Error
		switch {
		case errors.As(err, &apiErr):
			msg := apiErr.Message
			if msg == "" {
				msg = msgBadCreds
			}
			l.showError(msg)
		default:
			logger.Errorf("login: %v", err)
			l.showError(msgGenericError)
		}
		l.view.SetBusy(false)
		return false
	}

	// Сессия сохраняется до косметической паузы: даже прерванный переход
	// оставляет пользователя залогиненным.
	sess.Remember = remember
	if err := l.store.Save(sess); err != nil {
		logger.Errorf("login: save session: %v", err)
		l.showError(msgGenericError)
		l.view.SetBusy(false)
		return false
	}

	l.view.ShowSuccess()
	delay := l.SuccessDelay
	if delay <= 0 {
		delay = defaultSuccessDelay
	}
	select {
	case <-time.After(delay):
	case <-ctx.Done():
	}
	return true
}

// showError показывает баннер и перезапускает таймер автоскрытия.
// Ошибки не копятся: новая заменяет видимую.
func (l *Login) showError(msg string) {
	l.view.ShowError(msg)
	ttl := l.ErrorTTL
	if ttl <= 0 {
		ttl = defaultErrorTTL
	}
	l.mu.Lock()
	if l.hideTimer != nil {
		l.hideTimer.Stop()
	}
	l.hideTimer = time.AfterFunc(ttl, l.view.HideError)
	l.mu.Unlock()
}
