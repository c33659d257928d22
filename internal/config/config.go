// Package config загрузка конфигурации сервиса из TOML-файла
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Notifier     NotifierConfig     `toml:"notifier"`
	CalendarSync CalendarSyncConfig `toml:"calendar_sync"`
	Reminders    RemindersConfig    `toml:"reminders"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// NotifierConfig настройки клиента сервиса уведомлений
type NotifierConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// CalendarSyncConfig настройки синхронизации внешних календарей
type CalendarSyncConfig struct {
	Providers []CalendarProviderConfig `toml:"providers"`
	// Окно выгрузки занятых интервалов вперед от текущего момента
	HorizonDays int `toml:"horizon_days"`
	Timeout     int `toml:"timeout"` // секунды
}

// CalendarProviderConfig один внешний провайдер календаря
type CalendarProviderConfig struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

// RemindersConfig настройки подсистемы напоминаний
type RemindersConfig struct {
	// Bearer-токен для внешнего триггера батча (cron)
	Token string `toml:"token"`

	RSVPFirstHours  int `toml:"rsvp_first_hours"`  // часов с момента создания до первого RSVP-напоминания
	RSVPSecondHours int `toml:"rsvp_second_hours"` // часов до второго RSVP-напоминания

	// Полуширина окна допуска для пред-сессионных напоминаний (минуты)
	// Окно 24h при 30 минутах: 23.5h - 24.5h до начала сессии
	SessionToleranceMinutes int `toml:"session_tolerance_minutes"`

	RSVPFirstEnabled  bool `toml:"rsvp_first_enabled"`
	RSVPSecondEnabled bool `toml:"rsvp_second_enabled"`
	Session24hEnabled bool `toml:"session_24h_enabled"`
	Session1hEnabled  bool `toml:"session_1h_enabled"`
}

// Load загружает конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "scheduling-service"
	}
	if cfg.CalendarSync.HorizonDays == 0 {
		cfg.CalendarSync.HorizonDays = 60
	}
	if cfg.CalendarSync.Timeout == 0 {
		cfg.CalendarSync.Timeout = 10
	}
	if cfg.Notifier.Timeout == 0 {
		cfg.Notifier.Timeout = 10
	}
	if cfg.Reminders.RSVPFirstHours == 0 {
		cfg.Reminders.RSVPFirstHours = 24
	}
	if cfg.Reminders.RSVPSecondHours == 0 {
		cfg.Reminders.RSVPSecondHours = 48
	}
	if cfg.Reminders.SessionToleranceMinutes == 0 {
		cfg.Reminders.SessionToleranceMinutes = 30
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if cfg.Reminders.Token == "" {
		return fmt.Errorf("config: reminders.token is required")
	}
	if cfg.Reminders.RSVPSecondHours <= cfg.Reminders.RSVPFirstHours {
		return fmt.Errorf("config: reminders.rsvp_second_hours must be greater than rsvp_first_hours")
	}
	return nil
}
