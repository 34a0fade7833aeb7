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

// Dashboard опрашивает бэкенд и гонит результаты во view.
// Два независимых таймера: счётчики и лента отметок. Тики не координируются;
// запросы соседних тиков могут перекрываться, побеждает последняя отрисовка.
type Dashboard struct {
	api   *api.Client
	store session.Store
	view  ui.DashboardView

	StatsInterval   time.Duration
	RecordsInterval time.Duration
	RecordsLimit    int

	// Now подменяется в тестах (дата для /api/attendance/daily/).
	Now func() time.Time
}

func NewDashboard(client *api.Client, store session.Store, view ui.DashboardView) *Dashboard {
	return &Dashboard{
		api:             client,
		store:           store,
		view:            view,
		StatsInterval:   30 * time.Second,
		RecordsInterval: 10 * time.Second,
		RecordsLimit:    10,
		Now:             time.Now,
	}
}

// Run рисует сохранённого пользователя, запускает обе загрузки и крутит
// таймеры до отмены контекста. Шаги независимы: упавшая загрузка не мешает
// соседней и повторится на следующем тике.
func (d *Dashboard) Run(ctx context.Context) {
	d.renderIdentity()
	go d.LoadStats(ctx)
	go d.LoadRecords(ctx)

	statsTick := time.NewTicker(d.StatsInterval)
	defer statsTick.Stop()
	recordsTick := time.NewTicker(d.RecordsInterval)
	defer recordsTick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-statsTick.C:
			go d.LoadStats(ctx)
		case <-recordsTick.C:
			go d.LoadRecords(ctx)
		}
	}
}

// renderIdentity рисует имя и роль из сохранённой сессии, без похода в сеть.
func (d *Dashboard) renderIdentity() {
	sess, err := d.store.Load()
	if err != nil || sess == nil {
		return
	}
	u := sess.User
	d.view.ShowIdentity(u.DisplayName(), u.AvatarInitial(), u.RoleDisplay)
}

// LoadStats обновляет четыре счётчика. Каждый запрос огорожен отдельно:
// упавший эндпоинт логируется и не мешает остальным трём обновиться
// в этом же цикле.
func (d *Dashboard) LoadStats(ctx context.Context) {
	type fetch struct {
		stat ui.Stat
		name string
		fn   func(context.Context) (int, error)
	}
	logger.Debugf("dashboard: refreshing counters")
	today := d.Now().Format("2006-01-02")
	fetches := []fetch{
		{ui.StatUsers, "users", d.api.UserCount},
		{ui.StatDevices, "devices", d.api.DeviceCount},
		{ui.StatToday, "daily", func(ctx context.Context) (int, error) {
			return d.api.DailyCount(ctx, today)
		}},
		{ui.StatLeaves, "leaves", d.api.PendingLeaveCount},
	}

	var wg sync.WaitGroup
	for _, f := range fetches {
		wg.Add(1)
		go func(f fetch) {
			defer wg.Done()
			n, err := f.fn(ctx)
			if err != nil {
				if !errors.Is(err, api.ErrUnauthorized) {
					logger.Errorf("dashboard: load %s count: %v", f.name, err)
				}
				return
			}
			d.view.SetStat(f.stat, n)
		}(f)
	}
	wg.Wait()
}

// LoadRecords обновляет ленту последних отметок.
func (d *Dashboard) LoadRecords(ctx context.Context) {
	logger.Debugf("dashboard: refreshing records (limit %d)", d.RecordsLimit)
	records, err := d.api.RecentRecords(ctx, d.RecordsLimit)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return
		}
		logger.Errorf("dashboard: load records: %v", err)
		d.view.ShowRecordsError()
		return
	}
	if len(records) == 0 {
		d.view.ShowRecordsEmpty()
		return
	}
	d.view.ShowRecords(records)
}

// Logout отзывает токен на сервере (неудача только логируется) и в любом
// случае чистит сессию целиком, включая remember.
func (d *Dashboard) Logout(ctx context.Context) {
	if err := d.api.Logout(ctx); err != nil && !errors.Is(err, api.ErrUnauthorized) {
		logger.Errorf("dashboard: logout: %v", err)
	}
	if err := d.store.ClearAll(); err != nil {
		logger.Errorf("dashboard: clear session: %v", err)
	}
}
