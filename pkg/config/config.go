package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App       AppConfig
	Catalog   CatalogConfig
	Twilio    TwilioConfig
	OpenAI    OpenAIConfig
	Sendgrid  SendgridConfig
	Redis     RedisConfig
	DB        DBConfig
	Session   SessionConfig
	Reminders RemindersConfig
	AI        AIConfig
	Flags     FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PANESBOT_APP_ENV" default:"dev"`
	Port         string `envconfig:"PANESBOT_APP_PORT" default:"5000"`
	Version      string `envconfig:"PANESBOT_APP_VERSION" default:"dev"`
	LogLevel     string `envconfig:"PANESBOT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PANESBOT_LOG_WARN_STACK" default:"false"`
	SupportEmail string `envconfig:"PANESBOT_SUPPORT_EMAIL" default:"support@panes.gr"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CatalogConfig points at the WooCommerce products API.
type CatalogConfig struct {
	BaseURL        string        `envconfig:"PANESBOT_CATALOG_URL" default:"https://panes.gr"`
	ConsumerKey    string        `envconfig:"PANESBOT_CATALOG_CONSUMER_KEY"`
	ConsumerSecret string        `envconfig:"PANESBOT_CATALOG_CONSUMER_SECRET"`
	Timeout        time.Duration `envconfig:"PANESBOT_CATALOG_TIMEOUT" default:"10s"`
}

// TwilioConfig drives outbound WhatsApp delivery (subscription reminders).
type TwilioConfig struct {
	AccountSID     string `envconfig:"TWILIO_ACCOUNT_SID"`
	AuthToken      string `envconfig:"TWILIO_AUTH_TOKEN"`
	WhatsAppNumber string `envconfig:"TWILIO_WHATSAPP_NUMBER" default:"whatsapp:+14155238886"`
}

func (t TwilioConfig) Configured() bool {
	return t.AccountSID != "" && t.AuthToken != ""
}

type OpenAIConfig struct {
	APIKey string `envconfig:"PANESBOT_OPENAI_API_KEY"`
	Model  string `envconfig:"PANESBOT_OPENAI_MODEL" default:"gpt-4o-mini"`
}

func (o OpenAIConfig) Configured() bool {
	return o.APIKey != ""
}

type SendgridConfig struct {
	APIKey      string `envconfig:"PANESBOT_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"PANESBOT_SENDGRID_FROM_EMAIL" default:"bot@panes.gr"`
}

func (s SendgridConfig) Configured() bool {
	return s.APIKey != ""
}

// RedisConfig is optional; without a URL sessions stay in process memory.
type RedisConfig struct {
	URL          string        `envconfig:"PANESBOT_REDIS_URL"`
	Password     string        `envconfig:"PANESBOT_REDIS_PASSWORD"`
	DB           int           `envconfig:"PANESBOT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PANESBOT_REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"PANESBOT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PANESBOT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PANESBOT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Configured() bool {
	return r.URL != ""
}

// DBConfig is optional; without a DSN customer profiles stay in process memory.
type DBConfig struct {
	DSN             string        `envconfig:"PANESBOT_DB_DSN"`
	Driver          string        `envconfig:"PANESBOT_DB_DRIVER" default:"sqlite"`
	MaxOpenConns    int           `envconfig:"PANESBOT_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"PANESBOT_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"PANESBOT_DB_CONN_MAX_LIFETIME" default:"1h"`
}

func (d DBConfig) Configured() bool {
	return d.DSN != ""
}

func (d DBConfig) IsPostgres() bool {
	return strings.EqualFold(d.Driver, "postgres")
}

// SessionConfig bounds how long an idle conversation keeps its state.
type SessionConfig struct {
	TTL time.Duration `envconfig:"PANESBOT_SESSION_TTL" default:"24h"`
}

type RemindersConfig struct {
	Secret   string `envconfig:"PANESBOT_REMINDERS_SECRET"`
	CronSpec string `envconfig:"PANESBOT_REMINDERS_CRON" default:"0 9 * * *"`
}

// AIConfig bounds the rolling history forwarded to the chat model.
type AIConfig struct {
	HistoryTurns int `envconfig:"PANESBOT_AI_HISTORY_TURNS" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PANESBOT_AUTO_MIGRATE" default:"false"`
}
