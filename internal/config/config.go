package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/attendash/internal/logger"
)

// loadEnv читает .env только вне production (в контейнере/prod конфиг только из env).
func loadEnv() {
	if os.Getenv("APP_ENV") == "production" {
		return
	}
	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for i := 0; i < 5; i++ {
		path := dir + "/.env"
		f, err := os.Open(path)
		if err == nil {
			loadEnvFrom(f)
			f.Close()
			return
		}
		parent := strings.TrimSuffix(dir, "/")
		if idx := strings.LastIndex(parent, "/"); idx <= 0 {
			return
		} else {
			dir = parent[:idx]
			if dir == "" {
				dir = "/"
			}
		}
	}
}

func loadEnvFrom(f *os.File) {
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		if key == "" {
			continue
		}
		if len(val) >= 2 && (val[0] == '"' && val[len(val)-1] == '"' || val[0] == '\'' && val[len(val)-1] == '\'') {
			val = val[1 : len(val)-1]
		}
		if os.Getenv(key) == "" {
			os.Setenv(key, val)
		}
	}
}

// Config содержит настройки консоли и стаб-бэкенда.
// Приоритет: переменные окружения > YAML-файл > значения по умолчанию.
type Config struct {
	// ServerURL — адрес бэкенда посещаемости.
	ServerURL string

	// SessionFile — путь к файлу сессии; пустой — путь по умолчанию
	// в конфиг-директории пользователя.
	SessionFile string

	// Интервалы опроса дашборда.
	StatsInterval   time.Duration
	RecordsInterval time.Duration
	RecordsLimit    int

	// HTTPTimeout — таймаут одного запроса к API.
	HTTPTimeout time.Duration

	// DevBackendAddr — адрес standalone стаб-бэкенда (services/devbackend).
	DevBackendAddr string

	// LogLevel — debug/info (читается и пакетом logger из env).
	LogLevel string
}

// yamlConfig — промежуточная структура для парсинга YAML (интервалы в секундах).
type yamlConfig struct {
	ServerURL       string `yaml:"server_url"`
	SessionFile     string `yaml:"session_file"`
	StatsInterval   int    `yaml:"stats_interval"`
	RecordsInterval int    `yaml:"records_interval"`
	RecordsLimit    int    `yaml:"records_limit"`
	HTTPTimeout     int    `yaml:"http_timeout"`
	DevBackendAddr  string `yaml:"devbackend_addr"`
	LogLevel        string `yaml:"log_level"`
}

// Load загружает конфигурацию.
// Сначала подгружаются переменные из .env (если есть), затем YAML и env (env имеет приоритет).
func Load() *Config {
	loadEnv()
	// Значения по умолчанию
	yc := yamlConfig{
		ServerURL:       "http://localhost:8000",
		StatsInterval:   30,
		RecordsInterval: 10,
		RecordsLimit:    10,
		HTTPTimeout:     10,
		DevBackendAddr:  ":8000",
		LogLevel:        "info",
	}

	// Загрузка конфигурации: CONFIG_PATH → config/console.yaml
	paths := []string{os.Getenv("CONFIG_PATH"), "config/console.yaml"}
	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &yc); err != nil {
			logger.Errorf("config: ошибка парсинга %s: %v (используются значения по умолчанию)", path, err)
		} else {
			logger.Infof("config: загружен %s", path)
		}
		break
	}

	cfg := &Config{
		ServerURL:       strings.TrimSuffix(envStr("SERVER_URL", yc.ServerURL), "/"),
		SessionFile:     envStr("SESSION_FILE", yc.SessionFile),
		StatsInterval:   time.Duration(envInt("STATS_INTERVAL", yc.StatsInterval)) * time.Second,
		RecordsInterval: time.Duration(envInt("RECORDS_INTERVAL", yc.RecordsInterval)) * time.Second,
		RecordsLimit:    envInt("RECORDS_LIMIT", yc.RecordsLimit),
		HTTPTimeout:     time.Duration(envInt("HTTP_TIMEOUT", yc.HTTPTimeout)) * time.Second,
		DevBackendAddr:  envStr("SERVER_ADDR", yc.DevBackendAddr),
		LogLevel:        envStr("LOG_LEVEL", yc.LogLevel),
	}
	if cfg.StatsInterval <= 0 {
		cfg.StatsInterval = 30 * time.Second
	}
	if cfg.RecordsInterval <= 0 {
		cfg.RecordsInterval = 10 * time.Second
	}
	if cfg.RecordsLimit <= 0 {
		cfg.RecordsLimit = 10
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	return cfg
}

// envStr возвращает значение переменной окружения или fallback.
func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envInt возвращает числовое значение переменной окружения или fallback.
func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
