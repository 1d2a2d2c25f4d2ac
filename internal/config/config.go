package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	"github.com/m04kA/SMC-AutoService/pkg/types"
)

const (
	// EnvConfigPath переопределяет путь к файлу конфигурации
	EnvConfigPath = "CONFIG_PATH"
	// EnvDBPassword переопределяет пароль базы данных
	EnvDBPassword = "DB_PASSWORD"
)

// ErrInvalidConfig возвращается, если конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Calendar CalendarConfig `toml:"calendar"`
	Booking  BookingConfig  `toml:"booking"`
	Redis    RedisConfig    `toml:"redis"`
}

type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`     // секунды
	WriteTimeout    int      `toml:"write_timeout"`    // секунды
	IdleTimeout     int      `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int      `toml:"shutdown_timeout"` // секунды
	AllowedOrigins  []string `toml:"allowed_origins"`
}

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

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CalendarConfig рабочие часы и шаг сетки слотов
type CalendarConfig struct {
	WorkingStart           string `toml:"working_start"`
	WorkingEnd             string `toml:"working_end"`
	SlotGranularityMinutes int    `toml:"slot_granularity_minutes"`
}

// BookingConfig параметры фиксации записи
type BookingConfig struct {
	MaxCommitAttempts   int  `toml:"max_commit_attempts"`
	RetryBackoffMs      int  `toml:"retry_backoff_ms"`
	LockEnabled         bool `toml:"lock_enabled"`
	LockTTLSeconds      int  `toml:"lock_ttl_seconds"`
	LockWaitTimeoutMs   int  `toml:"lock_wait_timeout_ms"`
	LockRetryIntervalMs int  `toml:"lock_retry_interval_ms"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Load читает конфигурацию из TOML-файла, применяет значения по умолчанию
// и переопределения из окружения
func Load(path string) (*Config, error) {
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		path = envPath
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if password := os.Getenv(EnvDBPassword); password != "" {
		cfg.Database.Password = password
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default конфигурация со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			AllowedOrigins:  []string{"*"},
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc-autoservice",
		},
		Calendar: CalendarConfig{
			WorkingStart:           domain.DefaultWorkingStart,
			WorkingEnd:             domain.DefaultWorkingEnd,
			SlotGranularityMinutes: domain.DefaultSlotGranularityMinutes,
		},
		Booking: BookingConfig{
			MaxCommitAttempts:   3,
			RetryBackoffMs:      20,
			LockTTLSeconds:      10,
			LockWaitTimeoutMs:   2000,
			LockRetryIntervalMs: 50,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if _, err := c.Calendar.Build(); err != nil {
		return fmt.Errorf("%w: calendar: %v", ErrInvalidConfig, err)
	}
	if c.Booking.MaxCommitAttempts <= 0 {
		return fmt.Errorf("%w: booking.max_commit_attempts must be positive", ErrInvalidConfig)
	}
	if c.Booking.LockEnabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required when booking.lock_enabled", ErrInvalidConfig)
		}
		if c.Booking.LockTTLSeconds <= 0 || c.Booking.LockWaitTimeoutMs <= 0 || c.Booking.LockRetryIntervalMs <= 0 {
			return fmt.Errorf("%w: booking lock timings must be positive", ErrInvalidConfig)
		}
	}
	return nil
}

// Build создает неизменяемый календарь из конфигурации
func (c CalendarConfig) Build() (*domain.Calendar, error) {
	start, err := types.NewTimeStringFromString(c.WorkingStart)
	if err != nil {
		return nil, fmt.Errorf("working_start: %w", err)
	}
	end, err := types.NewTimeStringFromString(c.WorkingEnd)
	if err != nil {
		return nil, fmt.Errorf("working_end: %w", err)
	}
	return domain.NewCalendar(start, end, c.SlotGranularityMinutes)
}
