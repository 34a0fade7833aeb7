package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter читает данные формы входа из терминала.
type Prompter struct {
	in  *os.File
	out io.Writer
	rd  *bufio.Reader
}

// lineTracker получает сигнал о переводе строки, который напечатало эхо
// терминала при нажатии Enter — мимо out, поэтому Write его не видит.
type lineTracker interface{ promptLineEnded() }

func (p *Prompter) noteEcho() {
	if !term.IsTerminal(int(p.in.Fd())) {
		return
	}
	if lt, ok := p.out.(lineTracker); ok {
		lt.promptLineEnded()
	}
}

func NewPrompter(in *os.File, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out, rd: bufio.NewReader(in)}
}

// ReadLine печатает приглашение и читает строку (с обрезкой пробелов).
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.rd.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	p.noteEcho()
	return strings.TrimSpace(line), nil
}

// ReadPassword читает пароль без эха. Вне терминала (пайп в тестах и CI)
// читается обычная строка.
func (p *Prompter) ReadPassword(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if term.IsTerminal(int(p.in.Fd())) {
		data, err := term.ReadPassword(int(p.in.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}
	line, err := p.rd.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadYesNo читает ответ y/n; пустой ввод — значение по умолчанию.
func (p *Prompter) ReadYesNo(prompt string, def bool) (bool, error) {
	line, err := p.ReadLine(prompt)
	if err != nil {
		return def, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return def, nil
	}
}
