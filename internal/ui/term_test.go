package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/attendash/internal/model"
)

func TestDashboardPlainRendering(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.ShowIdentity("Bob Smith", "B", "HR Manager")
	term.SetStat(StatUsers, 5)
	term.SetStat(StatToday, 0)

	out := buf.String()
	for _, want := range []string{"Bob Smith", "(B)", "HR Manager", "Total Users"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	// Вне терминала управляющие последовательности не используются.
	if strings.Contains(out, "\x1b[") {
		t.Fatal("ANSI escapes in non-tty output")
	}
}

func TestRecordsStatesRenderSingleRow(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	buf.Reset()
	term.ShowRecordsEmpty()
	if n := strings.Count(buf.String(), "No attendance records found"); n != 1 {
		t.Fatalf("placeholder rows = %d, want 1", n)
	}

	buf.Reset()
	term.ShowRecordsError()
	if n := strings.Count(buf.String(), "Error loading data"); n != 1 {
		t.Fatalf("error rows = %d, want 1", n)
	}
}

func TestHideErrorErasesBannerAfterBusyToggle(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)
	term.tty = true

	// Последовательность неудачного входа: индикатор, баннер, снятие
	// индикатора — и отложенное гашение баннера таймером.
	term.SetBusy(true)
	term.ShowError("Invalid username or password. Please try again.")
	term.SetBusy(false)

	buf.Reset()
	term.HideError()
	if got, want := buf.String(), escSave+"\x1b[1A"+escKill+escRestore; got != want {
		t.Fatalf("hide wrote %q, want %q", got, want)
	}

	buf.Reset()
	term.HideError()
	if buf.Len() != 0 {
		t.Fatalf("second hide wrote %q", buf.String())
	}
}

func TestHideErrorReachesBannerBehindPromptLines(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)
	term.tty = true

	term.ShowError("Invalid username or password. Please try again.")
	// Форма ниже баннера: текст подсказки через Write, Enter — эхом,
	// перевод строки после пароля печатается явно.
	term.Write([]byte("Username: "))
	term.promptLineEnded()
	term.Write([]byte("Password: \n"))

	buf.Reset()
	term.HideError()
	if got, want := buf.String(), escSave+"\x1b[3A"+escKill+escRestore; got != want {
		t.Fatalf("hide wrote %q, want %q", got, want)
	}
}

func TestNewErrorReplacesPreviousBanner(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)
	term.tty = true

	term.ShowError("first")
	buf.Reset()
	term.ShowError("second")
	if !strings.HasPrefix(buf.String(), escUpKill) {
		t.Fatalf("expected in-place replacement, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "first") {
		t.Fatalf("old banner reprinted: %q", buf.String())
	}
}

func TestRecordsTable(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	ts := time.Date(2026, 9, 1, 8, 30, 0, 0, time.Local)
	term.ShowRecords([]model.AttendanceRecord{
		{
			Timestamp:  ts,
			User:       &model.UserRef{Username: "bob", EmployeeID: "EMP-2"},
			Device:     &model.DeviceRef{Name: "Main Entrance"},
			VerifyType: 1,
			VerifyCode: 1,
		},
		{Timestamp: ts, VerifyType: 77, VerifyCode: 99},
	})

	out := buf.String()
	for _, want := range []string{"bob", "EMP-2", "Main Entrance", "08:30", "Fingerprint", "Check Out", "Unknown", "Unknown Device"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRecordsTableUnicodeColumns(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	ts := time.Date(2026, 9, 1, 9, 15, 0, 0, time.Local)
	term.ShowRecords([]model.AttendanceRecord{{
		Timestamp:  ts,
		User:       &model.UserRef{Username: "ядвигаантоновна-премудрая", EmployeeID: "EMP-9"},
		Device:     &model.DeviceRef{Name: "Проходная №1"},
		VerifyType: 0,
		VerifyCode: 0,
	}})

	out := buf.String()
	if strings.ContainsRune(out, '�') {
		t.Fatalf("broken rune in output:\n%s", out)
	}
	// Обрезка по рунам, не по байтам: 15 знаков плюс многоточие.
	if !strings.Contains(out, "ядвигаантоновна…") {
		t.Fatalf("username not trimmed at rune boundary:\n%s", out)
	}
	// Выравнивание по числу знаков: до колонки TIME ровно 7 пробелов
	// (6 добивочных и один разделитель).
	if !strings.Contains(out, "Проходная №1       09:15") {
		t.Fatalf("device column misaligned:\n%s", out)
	}
}
