package config

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix префикс переменных окружения, переопределяющих config.toml
const envPrefix = "CHARTER"

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	FleetService   ServiceClientConfig  `toml:"fleet_service"`
	Availability   AvailabilityConfig   `toml:"availability"`
	Reconciliation ReconciliationConfig `toml:"reconciliation"`
	Normalizer     NormalizerConfig     `toml:"normalizer"`
	Import         ImportConfig         `toml:"import"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к Postgres
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

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
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
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// ServiceClientConfig настройки клиента внешнего сервиса (таймаут в секундах)
type ServiceClientConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// AvailabilityConfig каталог слотов и порог полной занятости
type AvailabilityConfig struct {
	FullyBookedThreshold int          `toml:"fully_booked_threshold"`
	Timezone             string       `toml:"timezone"`
	Slots                []SlotConfig `toml:"slots"`
}

// SlotConfig слот каталога
type SlotConfig struct {
	ID            string  `toml:"id"`
	Label         string  `toml:"label"`
	StartTime     string  `toml:"start_time"`
	DurationHours float64 `toml:"duration_hours"`
	MinPrice      float64 `toml:"min_price"`
}

// ReconciliationConfig пороги сверки платежей
type ReconciliationConfig struct {
	UrgentWithinDays           int     `toml:"urgent_within_days"`
	SoonWithinDays             int     `toml:"soon_within_days"`
	BalanceDueDays             int     `toml:"balance_due_days"`
	PaymentMismatchEpsilon     float64 `toml:"payment_mismatch_epsilon"`
	PaymentActionsLookbackDays int     `toml:"payment_actions_lookback_days"`

	// Ежедневный дайджест чартеров с несобранным остатком
	DigestEnabled  bool   `toml:"digest_enabled"`
	DigestSchedule string `toml:"digest_schedule"`
}

// NormalizerConfig дополнения к встроенной таблице вариантов схем.
// Ключи year_variants - годы в виде строк ("2025" = "historical_2024").
type NormalizerConfig struct {
	YearVariants map[string]string        `toml:"year_variants"`
	Variants     map[string]VariantConfig `toml:"variants"`
}

// VariantConfig вариант схемы исторических данных
type VariantConfig struct {
	Period             string   `toml:"period"`
	DateFormat         string   `toml:"date_format"`
	StartDateFields    []string `toml:"start_date_fields"`
	EndDateFields      []string `toml:"end_date_fields"`
	BookedOnFields     []string `toml:"booked_on_fields"`
	IDFields           []string `toml:"id_fields"`
	LocatorFields      []string `toml:"locator_fields"`
	BoatFields         []string `toml:"boat_fields"`
	GuestNameFields    []string `toml:"guest_name_fields"`
	CharterTotalFields []string `toml:"charter_total_fields"`
	PaidAmountFields   []string `toml:"paid_amount_fields"`
	TotalGuestsFields  []string `toml:"total_guests_fields"`
	StatusFields       []string `toml:"status_fields"`
	DefaultStatus      string   `toml:"default_status"`
}

// ImportConfig ограничения импорта выгрузок
type ImportConfig struct {
	MaxRows       int `toml:"max_rows"`
	MaxUploadSize int `toml:"max_upload_mb"`
}

// envOverrides переменные окружения (CHARTER_DB_PASSWORD и т.п.).
// Заданные переменные имеют приоритет над config.toml.
type envOverrides struct {
	HTTPPort        int    `envconfig:"HTTP_PORT"`
	DBHost          string `envconfig:"DB_HOST"`
	DBPort          int    `envconfig:"DB_PORT"`
	DBUser          string `envconfig:"DB_USER"`
	DBPassword      string `envconfig:"DB_PASSWORD"`
	DBName          string `envconfig:"DB_NAME"`
	DBSSLMode       string `envconfig:"DB_SSLMODE"`
	LogLevel        string `envconfig:"LOG_LEVEL"`
	LogFile         string `envconfig:"LOG_FILE"`
	FleetServiceURL string `envconfig:"FLEET_SERVICE_URL"`
}

// Load загружает конфигурацию из TOML файла и переменных окружения
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
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
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
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
			File:  "logs/app.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "smc-charter-service",
			Path:        "/metrics",
		},
		FleetService: ServiceClientConfig{
			Timeout: 5,
		},
		Availability: AvailabilityConfig{
			FullyBookedThreshold: 3,
			Timezone:             "UTC",
		},
		Reconciliation: ReconciliationConfig{
			UrgentWithinDays:           3,
			SoonWithinDays:             7,
			BalanceDueDays:             0,
			PaymentMismatchEpsilon:     0.01,
			PaymentActionsLookbackDays: 30,
			DigestSchedule:             "0 0 8 * * *",
		},
		Import: ImportConfig{
			MaxRows:       20000,
			MaxUploadSize: 10,
		},
	}
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("failed to process env overrides: %w", err)
	}

	setInt(&c.Server.HTTPPort, env.HTTPPort)
	setString(&c.Database.Host, env.DBHost)
	setInt(&c.Database.Port, env.DBPort)
	setString(&c.Database.User, env.DBUser)
	setString(&c.Database.Password, env.DBPassword)
	setString(&c.Database.DBName, env.DBName)
	setString(&c.Database.SSLMode, env.DBSSLMode)
	setString(&c.Logs.Level, env.LogLevel)
	setString(&c.Logs.File, env.LogFile)
	setString(&c.FleetService.URL, env.FleetServiceURL)

	return nil
}

// Location часовой пояс операционного дня
func (a AvailabilityConfig) Location() (*time.Location, error) {
	if a.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(a.Timezone)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
