// Package api — HTTP-клиент бэкенда посещаемости. На каждый запрос
// подставляются токен, Content-Type и CSRF-заголовок; ответ 401 прозрачно
// сбрасывает локальную сессию, и вызывающий код получает ErrUnauthorized
// вместо ответа.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/attendash/internal/logger"
	"github.com/attendash/internal/model"
	"github.com/attendash/internal/session"
)

// csrfCookieName — имя куки, из которой берётся значение для X-CSRFToken.
const csrfCookieName = "csrftoken"

// ErrUnauthorized возвращается вместо ответа при статусе 401: сессия уже
// сброшена, хук unauthorized вызван. Дальше по этой ошибке ничего читать нельзя.
var ErrUnauthorized = errors.New("api: unauthorized")

// Error — ответ бэкенда со статусом вне 2xx (кроме 401).
// Message заполняется из non_field_errors[0], если бэкенд его прислал.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// Client — клиент REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store

	mu             sync.Mutex
	csrfToken      string
	onUnauthorized func()
}

// New создаёт клиент. store нужен для подстановки токена и сброса сессии на 401.
func New(baseURL string, timeout time.Duration, store session.Store) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
	}
}

// SetUnauthorizedHook задаёт колбэк, вызываемый после сброса сессии по 401
// (консоль возвращается на экран входа).
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

// Do выполняет запрос с заголовками по умолчанию: Authorization (если есть
// токен), Content-Type, X-CSRFToken и X-Request-ID. Заголовки из headers
// перекрывают их поимённо; пустое значение снимает заголовок (так Login
// уходит без Authorization). body != nil кодируется в JSON.
// На 401 сессия сбрасывается и возвращается (nil, ErrUnauthorized);
// остальные статусы возвращаются как есть — интерпретация за вызывающим.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any, headers map[string]string) (*http.Response, error) {
	defer logger.LogDuration("api "+method+" "+endpoint, time.Now())

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: encode body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if sess, err := c.store.Load(); err == nil && sess != nil {
		req.Header.Set("Authorization", "Token "+sess.Token)
	}
	c.mu.Lock()
	if c.csrfToken != "" {
		req.Header.Set("X-CSRFToken", c.csrfToken)
	}
	c.mu.Unlock()
	for k, v := range headers {
		if v == "" {
			req.Header.Del(k)
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, endpoint, err)
	}
	c.captureCSRF(resp)

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if err := c.store.Clear(); err != nil {
			logger.Errorf("clear session after 401: %v", err)
		}
		c.mu.Lock()
		hook := c.onUnauthorized
		c.mu.Unlock()
		if hook != nil {
			hook()
		}
		return nil, ErrUnauthorized
	}
	return resp, nil
}

// captureCSRF запоминает csrftoken из Set-Cookie ответа.
func (c *Client) captureCSRF(resp *http.Response) {
	for _, raw := range resp.Header.Values("Set-Cookie") {
		if val, ok := CookieValue(raw, csrfCookieName); ok && val != "" {
			c.mu.Lock()
			c.csrfToken = val
			c.mu.Unlock()
			return
		}
	}
}

// loginResponse — успешный ответ /api/auth/login/.
type loginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// loginErrorResponse — тело ответа при отказе в аутентификации.
type loginErrorResponse struct {
	NonFieldErrors []string `json:"non_field_errors"`
}

// Login аутентифицирует пользователя. Токен не подставляется (его ещё нет),
// CSRF-заголовок — подставляется. При отказе возвращается *Error с сообщением
// бэкенда, если оно есть.
func (c *Client) Login(ctx context.Context, username, password string) (*model.Session, error) {
	body := map[string]string{"username": username, "password": password}
	resp, err := c.Do(ctx, http.MethodPost, "/api/auth/login/", body, map[string]string{"Authorization": ""})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var fail loginErrorResponse
		apiErr := &Error{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(&fail); err == nil && len(fail.NonFieldErrors) > 0 {
			apiErr.Message = fail.NonFieldErrors[0]
		}
		return nil, apiErr
	}

	var ok loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&ok); err != nil {
		return nil, fmt.Errorf("api: decode login response: %w", err)
	}
	if ok.Token == "" {
		return nil, fmt.Errorf("api: login response without token")
	}
	return &model.Session{Token: ok.Token, User: ok.User}, nil
}

// Me проверяет текущую сессию и возвращает пользователя.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/api/auth/users/me/", nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Status: resp.StatusCode}
	}
	var u model.User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("api: decode user: %w", err)
	}
	return &u, nil
}

// Logout отзывает токен на сервере. Локальную сессию не трогает —
// это забота вызывающего (выход чистит хранилище независимо от результата).
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.Do(ctx, http.MethodPost, "/api/auth/logout/", nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Status: resp.StatusCode}
	}
	return nil
}

// UserCount возвращает число пользователей.
func (c *Client) UserCount(ctx context.Context) (int, error) {
	return c.count(ctx, "/api/auth/users/")
}

// DeviceCount возвращает число устройств.
func (c *Client) DeviceCount(ctx context.Context) (int, error) {
	return c.count(ctx, "/api/devices/")
}

// DailyCount возвращает число отметок за дату (YYYY-MM-DD).
func (c *Client) DailyCount(ctx context.Context, date string) (int, error) {
	return c.count(ctx, "/api/attendance/daily/?date="+date)
}

// PendingLeaveCount возвращает число заявок на отпуск в статусе pending.
func (c *Client) PendingLeaveCount(ctx context.Context) (int, error) {
	return c.count(ctx, "/api/attendance/leaves/?status=pending")
}

// count выполняет GET и достаёт счётчик из любого из принятых форматов:
// {"count": N}, {"results": [...]} или просто массив. Ничего из этого — 0.
func (c *Client) count(ctx context.Context, endpoint string) (int, error) {
	resp, err := c.Do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, &Error{Status: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("api: read %s: %w", endpoint, err)
	}
	return parseCount(data), nil
}

// parseCount разбирает счётчик из тела ответа; неизвестный формат — 0.
func parseCount(data []byte) int {
	var paged struct {
		Count   *int              `json:"count"`
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(data, &paged); err == nil {
		if paged.Count != nil {
			return *paged.Count
		}
		if paged.Results != nil {
			return len(paged.Results)
		}
	}
	var bare []json.RawMessage
	if err := json.Unmarshal(data, &bare); err == nil {
		return len(bare)
	}
	return 0
}

// RecentRecords возвращает limit последних отметок (новые первыми).
// Принимаются оба формата: {"results": [...]} и просто массив.
func (c *Client) RecentRecords(ctx context.Context, limit int) ([]model.AttendanceRecord, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/api/attendance/records/?limit="+strconv.Itoa(limit), nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Status: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read records: %w", err)
	}
	var paged struct {
		Results []model.AttendanceRecord `json:"results"`
	}
	if err := json.Unmarshal(data, &paged); err == nil && paged.Results != nil {
		return paged.Results, nil
	}
	var bare []model.AttendanceRecord
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("api: decode records: %w", err)
	}
	return bare, nil
}
