package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

// EnvPrefix префикс переменных окружения, переопределяющих секреты из файла
const EnvPrefix = "BOOKING"

var (
	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")

	referencePrefixPattern = regexp.MustCompile(`^[A-Z0-9]+-$`)
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Business  BusinessConfig  `toml:"business"`
	Admin     AdminConfig     `toml:"admin"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Events    EventsConfig    `toml:"events"`
	WhatsApp  WhatsAppConfig  `toml:"whatsapp"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BusinessConfig настройки бизнеса по умолчанию; используются, если в БД нет записи business_settings
type BusinessConfig struct {
	Name                   string   `toml:"name"`
	Phone                  string   `toml:"phone"`
	WhatsApp               string   `toml:"whatsapp"`
	Email                  string   `toml:"email"`
	Address                string   `toml:"address"`
	OpeningTime            string   `toml:"opening_time"`
	ClosingTime            string   `toml:"closing_time"`
	ClosedDays             []string `toml:"closed_days"`
	SlotDurationMinutes    int      `toml:"slot_duration_minutes"`
	MinAdvanceBookingHours int      `toml:"min_advance_booking_hours"`
	MaxAdvanceBookingDays  int      `toml:"max_advance_booking_days"`
	ReferencePrefix        string   `toml:"reference_prefix"`
}

// Settings конвертирует секцию в доменную модель
func (b BusinessConfig) Settings() (*domain.BusinessSettings, error) {
	opening, err := types.NewTimeStringFromString(b.OpeningTime)
	if err != nil {
		return nil, fmt.Errorf("%w: business.opening_time: %v", ErrInvalidConfig, err)
	}
	closing, err := types.NewTimeStringFromString(b.ClosingTime)
	if err != nil {
		return nil, fmt.Errorf("%w: business.closing_time: %v", ErrInvalidConfig, err)
	}
	closedDays, err := domain.ParseWeekdays(b.ClosedDays)
	if err != nil {
		return nil, fmt.Errorf("%w: business.closed_days: %v", ErrInvalidConfig, err)
	}

	return &domain.BusinessSettings{
		BusinessName:           b.Name,
		Phone:                  b.Phone,
		WhatsApp:               b.WhatsApp,
		Email:                  b.Email,
		Address:                b.Address,
		OpeningTime:            opening,
		ClosingTime:            closing,
		ClosedDays:             closedDays,
		SlotDurationMinutes:    b.SlotDurationMinutes,
		MinAdvanceBookingHours: b.MinAdvanceBookingHours,
		MaxAdvanceBookingDays:  b.MaxAdvanceBookingDays,
	}, nil
}

type AdminConfig struct {
	// Token значение заголовка X-Admin-Token для административных маршрутов
	Token string `toml:"token"`
}

type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`

	// TrustedProxies адреса или подсети прокси, которым разрешено передавать X-Forwarded-For
	TrustedProxies []string `toml:"trusted_proxies"`
}

// TrustedProxyPrefixes разбирает TrustedProxies; одиночный адрес становится подсетью /32 или /128
func (c RateLimitConfig) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, raw := range c.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if strings.Contains(raw, "/") {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: rate_limit.trusted_proxies %q: %v", ErrInvalidConfig, raw, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: rate_limit.trusted_proxies %q: %v", ErrInvalidConfig, raw, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

type WhatsAppConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Phone   string `toml:"phone"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"` // секунды
}

// envOverrides секреты, которые не хранятся в файле
type envOverrides struct {
	DBPassword     string `envconfig:"DB_PASSWORD"`
	DBHost         string `envconfig:"DB_HOST"`
	AdminToken     string `envconfig:"ADMIN_TOKEN"`
	EventsURL      string `envconfig:"EVENTS_URL"`
	WhatsAppAPIKey string `envconfig:"WHATSAPP_API_KEY"`
	LogLevel       string `envconfig:"LOG_LEVEL"`
}

// Load читает TOML файл, применяет значения по умолчанию и переменные окружения BOOKING_*
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse разбирает содержимое TOML файла
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	cfg.applyEnv(env)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "beauty_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "beauty-booking",
		},
		Business: BusinessConfig{
			OpeningTime:            domain.DefaultOpeningTime,
			ClosingTime:            domain.DefaultClosingTime,
			ClosedDays:             []string{domain.DefaultClosedDays},
			SlotDurationMinutes:    domain.DefaultSlotDurationMinutes,
			MinAdvanceBookingHours: domain.DefaultMinAdvanceBookingHours,
			MaxAdvanceBookingDays:  domain.DefaultMaxAdvanceBookingDays,
			ReferencePrefix:        domain.DefaultReferencePrefix,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 20,
			Burst:             5,
		},
		Events: EventsConfig{
			Exchange: "booking.events",
		},
		WhatsApp: WhatsAppConfig{
			URL:     "https://api.callmebot.com/whatsapp.php",
			Timeout: 5,
		},
	}
}

func (c *Config) applyEnv(env envOverrides) {
	if env.DBPassword != "" {
		c.Database.Password = env.DBPassword
	}
	if env.DBHost != "" {
		c.Database.Host = env.DBHost
	}
	if env.AdminToken != "" {
		c.Admin.Token = env.AdminToken
	}
	if env.EventsURL != "" {
		c.Events.URL = env.EventsURL
	}
	if env.WhatsAppAPIKey != "" {
		c.WhatsApp.APIKey = env.WhatsAppAPIKey
	}
	if env.LogLevel != "" {
		c.Logs.Level = env.LogLevel
	}
}

// Validate проверяет значения, без которых сервис не может работать
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Admin.Token == "" {
		return fmt.Errorf("%w: admin.token is required", ErrInvalidConfig)
	}
	if !referencePrefixPattern.MatchString(c.Business.ReferencePrefix) {
		return fmt.Errorf("%w: business.reference_prefix %q must look like \"TBE-\"", ErrInvalidConfig, c.Business.ReferencePrefix)
	}

	settings, err := c.Business.Settings()
	if err != nil {
		return err
	}
	if err := settings.Calendar().Validate(); err != nil {
		return fmt.Errorf("%w: business: %v", ErrInvalidConfig, err)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit values must be positive", ErrInvalidConfig)
	}
	if _, err := c.RateLimit.TrustedProxyPrefixes(); err != nil {
		return err
	}
	if c.Events.Enabled && c.Events.URL == "" {
		return fmt.Errorf("%w: events.url is required when events are enabled", ErrInvalidConfig)
	}
	if c.WhatsApp.Enabled && (c.WhatsApp.Phone == "" || c.WhatsApp.APIKey == "") {
		return fmt.Errorf("%w: whatsapp.phone and whatsapp.api_key are required when whatsapp is enabled", ErrInvalidConfig)
	}
	return nil
}

// Timeout helpers

func (s ServerConfig) ShutdownDuration() time.Duration {
	return time.Duration(s.ShutdownTimeout) * time.Second
}

func (w WhatsAppConfig) TimeoutDuration() time.Duration {
	return time.Duration(w.Timeout) * time.Second
}
