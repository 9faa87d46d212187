package config

import (
	"fmt"
	"strings"
	"sync"
	"time"
	_ "time/tzdata" // REPORT_TIMEZONE must resolve in minimal containers
	"unicode"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Report   ReportConfig
	Shop     ShopConfig
	LogLevel string
}

type ServerConfig struct {
	Port           string
	Mode           string
	BaseURL        string
	AllowedOrigins []string
}

type StoreConfig struct {
	Driver string // mysql, sqlite, redis or memory
}

type DatabaseConfig struct {
	DSN        string // MySQL DSN
	SQLitePath string
	LogLevel   string // gorm logger: silent, error, warn, info
}

type RedisConfig struct {
	URL       string
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

type ReportConfig struct {
	TimeZone     string
	Location     *time.Location
	WindowMonths int
}

// ShopConfig is printed on bills and exported reports.
type ShopConfig struct {
	Name    string
	Address string
	Phone   string
}

var (
	once     sync.Once
	instance *Config
	loadErr  error
)

// Load reads .env (if present) and the environment once per process.
func Load() (*Config, error) {
	once.Do(func() {
		_ = godotenv.Load()
		instance, loadErr = fromViper(viper.GetViper())
	})
	return instance, loadErr
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("SERVER_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("STORE_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("SQLITE_PATH", "pos.db")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "pos:")
	v.SetDefault("REPORT_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("REPORT_MONTHS", 6)
	v.SetDefault("SHOP_NAME", "Anwar Al Khaleej")
	v.SetDefault("SHOP_ADDRESS", "Kayalpattinam")
	v.SetDefault("SHOP_PHONE", "7418304663")
	v.SetDefault("LOG_LEVEL", "info")
}

func fromViper(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	loc, err := time.LoadLocation(v.GetString("REPORT_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", v.GetString("REPORT_TIMEZONE"), err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: splitList(v.GetString("SERVER_ALLOWED_ORIGINS")),
		},
		Store: StoreConfig{
			Driver: v.GetString("STORE_DRIVER"),
		},
		Database: DatabaseConfig{
			DSN:        v.GetString("DB_DSN"),
			SQLitePath: v.GetString("SQLITE_PATH"),
			LogLevel:   v.GetString("DB_LOG_LEVEL"),
		},
		Redis: RedisConfig{
			URL:       v.GetString("REDIS_URL"),
			Host:      v.GetString("REDIS_HOST"),
			Port:      v.GetString("REDIS_PORT"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
		},
		Report: ReportConfig{
			TimeZone:     v.GetString("REPORT_TIMEZONE"),
			Location:     loc,
			WindowMonths: v.GetInt("REPORT_MONTHS"),
		},
		Shop: ShopConfig{
			Name:    v.GetString("SHOP_NAME"),
			Address: v.GetString("SHOP_ADDRESS"),
			Phone:   v.GetString("SHOP_PHONE"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	switch cfg.Store.Driver {
	case "mysql":
		if cfg.Database.DSN == "" {
			return nil, fmt.Errorf("STORE_DRIVER=mysql requires DB_DSN")
		}
	case "sqlite", "redis", "memory":
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}

	if cfg.Report.WindowMonths <= 0 {
		return nil, fmt.Errorf("REPORT_MONTHS must be positive, got %d", cfg.Report.WindowMonths)
	}

	return cfg, nil
}

// splitList reads a comma or whitespace separated list, dropping empty entries.
func splitList(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// FromViper builds a Config from an explicit viper instance. Used by tests and the CLI.
func FromViper(v *viper.Viper) (*Config, error) {
	return fromViper(v)
}
