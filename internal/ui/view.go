// Package ui — отрисовка экранов входа и дашборда в терминале.
// Контроллеры работают с интерфейсами LoginView/DashboardView, поэтому в
// тестах вместо терминала подставляются фейки.
package ui

import "github.com/attendash/internal/model"

// Stat — один из четырёх счётчиков дашборда.
type Stat int

const (
	StatUsers Stat = iota
	StatDevices
	StatToday
	StatLeaves
)

// LoginView — состояние экрана входа.
type LoginView interface {
	// SetBusy включает/выключает индикатор отправки (кнопка "заблокирована").
	SetBusy(busy bool)
	// ShowSuccess показывает отметку об успешном входе.
	ShowSuccess()
	// ShowError показывает баннер ошибки, заменяя предыдущий.
	ShowError(msg string)
	// HideError убирает баннер (автоскрытие по таймеру).
	HideError()
}

// DashboardView — состояние дашборда.
type DashboardView interface {
	// ShowIdentity рисует имя, инициал аватара и роль. Пустая роль
	// оставляет прежнее значение без изменений.
	ShowIdentity(name, initial, role string)
	// SetStat обновляет один счётчик; остальные не трогаются.
	SetStat(s Stat, value int)
	// ShowRecords рисует таблицу отметок.
	ShowRecords(rs []model.AttendanceRecord)
	// ShowRecordsEmpty рисует единственную строку-заглушку.
	ShowRecordsEmpty()
	// ShowRecordsError рисует единственную строку ошибки вместо данных.
	ShowRecordsError()
}
