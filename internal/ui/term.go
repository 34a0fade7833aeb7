package ui

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/attendash/internal/model"
)

// ANSI-последовательности. При выводе не в терминал не используются.
const (
	escReset  = "\x1b[0m"
	escBold   = "\x1b[1m"
	escDim    = "\x1b[2m"
	escRed    = "\x1b[31m"
	escGreen  = "\x1b[32m"
	escYellow = "\x1b[33m"
	escCyan   = "\x1b[36m"
	escClear   = "\x1b[2J\x1b[H"
	escUpKill  = "\x1b[1A\x1b[2K"
	escKill    = "\x1b[2K"
	escSave    = "\x1b7"
	escRestore = "\x1b8"
)

type recordsState int

const (
	recordsLoading recordsState = iota
	recordsData
	recordsEmpty
	recordsError
)

// Terminal рисует оба экрана в один io.Writer. Дашборд перерисовывается
// целиком при каждом обновлении; последняя запись побеждает — ровно как
// last-write-wins в DOM.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
	tty bool

	// Экран входа. errLines — сколько строк вышло на экран после баннера
	// ошибки: по этому смещению HideError находит его строку.
	busy      bool
	lastError bool
	errLines  int

	// Состояние дашборда.
	name    string
	initial string
	role    string
	stats   [4]*int
	rstate  recordsState
	records []model.AttendanceRecord
}

// NewTerminal создаёт отрисовку в out. Цвета и перерисовка экрана включаются
// только когда out — терминал; в файл или пайп уходят плоские строки.
func NewTerminal(out io.Writer) *Terminal {
	t := &Terminal{out: out}
	if f, ok := out.(*os.File); ok {
		t.tty = term.IsTerminal(int(f.Fd()))
	}
	return t
}

func (t *Terminal) color(code, s string) string {
	if !t.tty {
		return s
	}
	return code + s + escReset
}

// --- LoginView ---

// SetBusy печатает индикатор отправки. Баннер ошибки не трогает: его гасит
// таймер через HideError либо заменяет следующий ShowError.
func (t *Terminal) SetBusy(busy bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.busy = busy
	if busy {
		fmt.Fprintln(t.out, t.color(escDim, "Signing in..."))
		if t.lastError {
			t.errLines++
		}
	}
}

func (t *Terminal) ShowSuccess() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hideErrorLocked()
	fmt.Fprintln(t.out, t.color(escGreen, "✔ Success!"))
}

func (t *Terminal) ShowError(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lastError && t.tty {
		if t.errLines == 0 {
			// Новый баннер заменяет предыдущий на месте.
			fmt.Fprint(t.out, escUpKill)
		} else {
			t.eraseBannerLocked()
		}
	}
	t.lastError = true
	t.errLines = 0
	fmt.Fprintln(t.out, t.color(escRed, msg))
}

// HideError стирает строку баннера, где бы она ни была: после неё уже могли
// выйти строки формы, поэтому стирание идёт по смещению errLines, с
// сохранением позиции курсора.
func (t *Terminal) HideError() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hideErrorLocked()
}

func (t *Terminal) hideErrorLocked() {
	if !t.lastError {
		return
	}
	t.lastError = false
	if t.tty {
		t.eraseBannerLocked()
	}
}

func (t *Terminal) eraseBannerLocked() {
	fmt.Fprintf(t.out, "%s\x1b[%dA%s%s", escSave, t.errLines+1, escKill, escRestore)
}

// Write пропускает через Terminal вывод Prompter: пока баннер ошибки на
// экране, переводы строки считаются, чтобы HideError знал его смещение.
func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lastError {
		t.errLines += bytes.Count(p, []byte{'\n'})
	}
	return t.out.Write(p)
}

// promptLineEnded учитывает перевод строки, который печатает эхо терминала
// при нажатии Enter, минуя Write.
func (t *Terminal) promptLineEnded() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lastError {
		t.errLines++
	}
}

// --- DashboardView ---

func (t *Terminal) ShowIdentity(name, initial, role string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.name = name
	t.initial = initial
	if role != "" {
		t.role = role
	}
	t.redraw()
}

func (t *Terminal) SetStat(s Stat, value int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v := value
	t.stats[s] = &v
	t.redraw()
}

func (t *Terminal) ShowRecords(rs []model.AttendanceRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rstate = recordsData
	t.records = rs
	t.redraw()
}

func (t *Terminal) ShowRecordsEmpty() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rstate = recordsEmpty
	t.records = nil
	t.redraw()
}

func (t *Terminal) ShowRecordsError() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rstate = recordsError
	t.records = nil
	t.redraw()
}

var statTitles = [4]string{"Total Users", "Total Devices", "Today's Attendance", "Pending Leaves"}

// redraw перерисовывает дашборд целиком. Вызывается под mu.
func (t *Terminal) redraw() {
	t.lastError = false
	t.errLines = 0
	if t.tty {
		fmt.Fprint(t.out, escClear)
	}

	who := t.name
	if t.initial != "" {
		who = "(" + t.initial + ") " + who
	}
	if t.role != "" {
		who += " · " + t.role
	}
	fmt.Fprintln(t.out, t.color(escBold, "Attendance Dashboard"))
	fmt.Fprintln(t.out, who)
	fmt.Fprintln(t.out)

	for i, title := range statTitles {
		val := "-"
		if t.stats[i] != nil {
			val = fmt.Sprintf("%d", *t.stats[i])
		}
		fmt.Fprintf(t.out, "%-22s %s\n", title, t.color(escBold, val))
	}
	fmt.Fprintln(t.out)

	fmt.Fprintln(t.out, t.color(escBold, "Recent Attendance"))
	switch t.rstate {
	case recordsLoading:
		fmt.Fprintln(t.out, t.color(escDim, "Loading..."))
	case recordsEmpty:
		fmt.Fprintln(t.out, t.color(escDim, "No attendance records found"))
	case recordsError:
		fmt.Fprintln(t.out, t.color(escRed, "Error loading data"))
	case recordsData:
		t.drawRecords()
	}

	if t.tty {
		fmt.Fprintln(t.out)
		fmt.Fprintln(t.out, t.color(escDim, "Ctrl+C: quit (keeps session) · console -logout: sign out"))
	}
}

func (t *Terminal) drawRecords() {
	fmt.Fprintf(t.out, "%s %s %s %s %s %s\n",
		pad("USER", 16), pad("EMPLOYEE", 12), pad("DEVICE", 18),
		pad("TIME", 7), pad("METHOD", 12), "ACTION")
	for _, r := range t.records {
		badge := model.VerifyCodeBadge(r.VerifyCode)
		fmt.Fprintf(t.out, "%s %s %s %s %s %s\n",
			pad(trim(r.Username(), 16), 16),
			pad(trim(r.EmployeeID(), 12), 12),
			pad(trim(r.DeviceName(), 18), 18),
			pad(r.Timestamp.Local().Format("15:04"), 7),
			pad(model.VerifyTypeLabel(r.VerifyType), 12),
			t.badge(badge))
	}
}

func (t *Terminal) badge(b model.Badge) string {
	switch b.Severity {
	case model.SeveritySuccess:
		return t.color(escGreen, b.Text)
	case model.SeverityDanger:
		return t.color(escRed, b.Text)
	case model.SeverityWarning:
		return t.color(escYellow, b.Text)
	default:
		return t.color(escCyan, b.Text)
	}
}

// trim и pad работают в рунах: байтовый срез резал бы кириллицу посреди
// руны, а %-16s выравнивал бы её по числу байтов.
func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return strings.TrimSpace(string(r[:max-1])) + "…"
}

func pad(s string, w int) string {
	n := utf8.RuneCountInString(s)
	if n >= w {
		return s
	}
	return s + strings.Repeat(" ", w-n)
}
