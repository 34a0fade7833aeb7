// Консоль посещаемости: вход по логину/паролю и живой дашборд
// (счётчики и последние отметки) поверх REST API бэкенда.
package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/attendash/internal/api"
	"github.com/attendash/internal/config"
	"github.com/attendash/internal/controller"
	"github.com/attendash/internal/devbackend"
	"github.com/attendash/internal/logger"
	"github.com/attendash/internal/session"
	"github.com/attendash/internal/session/file"
	"github.com/attendash/internal/session/memory"
	"github.com/attendash/internal/ui"
)

func main() {
	logger.SetPrefix("console")
	dev := flag.Bool("dev", false, "start with an embedded stub backend (no server required)")
	logout := flag.Bool("logout", false, "sign out and clear the stored session")
	flag.Parse()

	cfg := config.Load()

	var store session.Store
	if *dev {
		// В -dev сессия живёт в памяти, чтобы не трогать файл сессии.
		store = memory.New()
	} else {
		fs, err := file.New(cfg.SessionFile)
		if err != nil {
			logger.Errorf("session store: %v", err)
			os.Exit(1)
		}
		store = fs
	}

	if *dev {
		addr, closeFn, err := startEmbeddedBackend()
		if err != nil {
			logger.Errorf("embedded backend: %v", err)
			os.Exit(1)
		}
		defer closeFn()
		cfg.ServerURL = "http://" + addr
		logger.Infof("embedded backend on %s (логин admin/admin123)", cfg.ServerURL)
	}

	client := api.New(cfg.ServerURL, cfg.HTTPTimeout, store)
	view := ui.NewTerminal(os.Stdout)
	// Вывод подсказок идёт через view: он следит за смещением баннера ошибки.
	prompter := ui.NewPrompter(os.Stdin, view)
	guard := controller.NewGuard(store, client)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *logout {
		// Выход из аккаунта: best-effort отзыв токена и сброс хранилища.
		controller.NewDashboard(client, store, view).Logout(ctx)
		logger.Info("signed out")
		return
	}

	for ctx.Err() == nil {
		if guard.RequireSession() {
			// Защищённый экран: токен есть — рисуем; валидность выяснится
			// лениво, по первому 401.
			if !runDashboard(ctx, cfg, client, store, view) {
				return
			}
			continue // сброшено по 401 — обратно на вход
		}
		if !runLogin(ctx, client, store, guard, view, prompter) {
			return
		}
	}
}

// runLogin крутит форму входа до успеха. false — пользователь прервал ввод
// или процесс останавливается.
func runLogin(ctx context.Context, client *api.Client, store session.Store, guard *controller.Guard, view *ui.Terminal, prompter *ui.Prompter) bool {
	// Проверка сохранённого токена не блокирует форму: идёт параллельно
	// с вводом, результат подбирается перед отправкой.
	okCh := make(chan bool, 1)
	go func() { okCh <- guard.CheckExisting(ctx) }()

	login := controller.NewLogin(client, store, view)
	for ctx.Err() == nil {
		username, err := prompter.ReadLine("Username: ")
		if err != nil {
			return false
		}
		password, err := prompter.ReadPassword("Password: ")
		if err != nil {
			return false
		}
		remember, err := prompter.ReadYesNo("Remember me? [y/N]: ", false)
		if err != nil {
			return false
		}
		select {
		case ok := <-okCh:
			if ok {
				// Старая сессия подтверждена сервером — вход без пароля.
				return true
			}
		default:
		}
		if login.Submit(ctx, username, password, remember) {
			return true
		}
	}
	return false
}

// runDashboard блокируется до остановки процесса или принудительного выхода
// по 401. true — надо вернуться на экран входа.
func runDashboard(ctx context.Context, cfg *config.Config, client *api.Client, store session.Store, view *ui.Terminal) bool {
	dctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var forced atomic.Bool
	client.SetUnauthorizedHook(func() {
		forced.Store(true)
		cancel()
	})
	defer client.SetUnauthorizedHook(nil)

	dash := controller.NewDashboard(client, store, view)
	dash.StatsInterval = cfg.StatsInterval
	dash.RecordsInterval = cfg.RecordsInterval
	dash.RecordsLimit = cfg.RecordsLimit
	dash.Run(dctx)

	return forced.Load() && ctx.Err() == nil
}

// startEmbeddedBackend поднимает стаб-бэкенд на свободном локальном порту.
func startEmbeddedBackend() (addr string, closeFn func(), err error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}
	srv := &http.Server{Handler: devbackend.New().Router()}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Errorf("embedded backend: %v", err)
		}
	}()
	return ln.Addr().String(), func() { srv.Close() }, nil
}
