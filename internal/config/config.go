package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Service  ServiceConfig  `toml:"service"`
	Notifier NotifierConfig `toml:"notifier"`
	Jobs     JobsConfig     `toml:"jobs"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// ServiceConfig бизнес-настройки сервиса
type ServiceConfig struct {
	// DefaultResourceID ресурс (расписание), используемый когда селектор
	// не удалось разрешить. Политика fallback описана в API сервиса:
	// ответ с подставленным ресурсом помечается флагом resourceDefaulted
	DefaultResourceID int64 `toml:"default_resource_id"`
}

// NotifierConfig настройки отправки уведомлений через SendGrid
type NotifierConfig struct {
	Enabled   bool   `toml:"enabled"`
	APIKey    string `toml:"api_key"`
	FromEmail string `toml:"from_email"`
	FromName  string `toml:"from_name"`
}

// JobsConfig настройки фоновых задач
type JobsConfig struct {
	Enabled bool `toml:"enabled"`
	// CompletePastSpec cron-выражение для задачи завершения прошедших записей
	CompletePastSpec string `toml:"complete_past_spec"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.Service.DefaultResourceID <= 0 {
		return fmt.Errorf("config: service.default_resource_id is required")
	}
	if c.Notifier.Enabled && c.Notifier.APIKey == "" {
		return fmt.Errorf("config: notifier.api_key is required when notifier is enabled")
	}
	if c.Jobs.Enabled && c.Jobs.CompletePastSpec == "" {
		return fmt.Errorf("config: jobs.complete_past_spec is required when jobs are enabled")
	}
	return nil
}
