package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Mail      MailConfig
	Payments  PaymentsConfig
	Business  BusinessConfig

	// EnvFileErr is set when .env could not be read and only the
	// environment was used.
	EnvFileErr error
}

type AppConfig struct {
	Name      string
	Env       string
	Port      string
	Debug     bool
	PublicURL string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	Timezone     string
	MaxIdleConns int
	MaxOpenConns int
	AutoMigrate  bool
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type LogConfig struct {
	Level  string
	Format string
}

// MailConfig lists the delivery providers in the order they are tried
type MailConfig struct {
	Providers   []string
	FromAddress string
	FromName    string
	Timeout     time.Duration
	Graph       GraphConfig
	AzureSMTP   AzureSMTPConfig
	SMTP        SMTPConfig
}

type GraphConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Sender       string
	BaseURL      string
}

type AzureSMTPConfig struct {
	Host         string
	Port         int
	Username     string
	TenantID     string
	ClientID     string
	ClientSecret string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type PaymentsConfig struct {
	StripePaymentLink string
}

// BusinessConfig is printed on quote documents when site settings are blank
type BusinessConfig struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	envErr := viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("APP_NAME", "catering-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_PUBLIC_URL", "http://localhost:3000")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "catering")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 50)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("MAIL_PROVIDERS", "graph,azure_smtp,smtp")
	viper.SetDefault("MAIL_FROM_NAME", "Catering")
	viper.SetDefault("MAIL_TIMEOUT_SECONDS", 20)
	viper.SetDefault("GRAPH_BASE_URL", "https://graph.microsoft.com/v1.0")
	viper.SetDefault("AZURE_SMTP_HOST", "smtp.office365.com")
	viper.SetDefault("AZURE_SMTP_PORT", 587)
	viper.SetDefault("SMTP_PORT", 587)

	return &Config{
		App: AppConfig{
			Name:      viper.GetString("APP_NAME"),
			Env:       viper.GetString("APP_ENV"),
			Port:      viper.GetString("APP_PORT"),
			Debug:     viper.GetBool("APP_DEBUG"),
			PublicURL: viper.GetString("APP_PUBLIC_URL"),
		},
		Database: DatabaseConfig{
			Host:         viper.GetString("DB_HOST"),
			Port:         viper.GetString("DB_PORT"),
			Name:         viper.GetString("DB_NAME"),
			User:         viper.GetString("DB_USER"),
			Password:     viper.GetString("DB_PASSWORD"),
			SSLMode:      viper.GetString("DB_SSL_MODE"),
			Timezone:     viper.GetString("DB_TIMEZONE"),
			MaxIdleConns: viper.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: viper.GetInt("DB_MAX_OPEN_CONNS"),
			AutoMigrate:  viper.GetBool("DB_AUTO_MIGRATE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		Mail: MailConfig{
			Providers:   splitList(viper.GetString("MAIL_PROVIDERS")),
			FromAddress: viper.GetString("MAIL_FROM_ADDRESS"),
			FromName:    viper.GetString("MAIL_FROM_NAME"),
			Timeout:     time.Duration(viper.GetInt("MAIL_TIMEOUT_SECONDS")) * time.Second,
			Graph: GraphConfig{
				TenantID:     viper.GetString("GRAPH_TENANT_ID"),
				ClientID:     viper.GetString("GRAPH_CLIENT_ID"),
				ClientSecret: viper.GetString("GRAPH_CLIENT_SECRET"),
				Sender:       viper.GetString("GRAPH_SENDER"),
				BaseURL:      viper.GetString("GRAPH_BASE_URL"),
			},
			AzureSMTP: AzureSMTPConfig{
				Host:         viper.GetString("AZURE_SMTP_HOST"),
				Port:         viper.GetInt("AZURE_SMTP_PORT"),
				Username:     viper.GetString("AZURE_SMTP_USERNAME"),
				TenantID:     viper.GetString("AZURE_TENANT_ID"),
				ClientID:     viper.GetString("AZURE_CLIENT_ID"),
				ClientSecret: viper.GetString("AZURE_CLIENT_SECRET"),
			},
			SMTP: SMTPConfig{
				Host:     viper.GetString("SMTP_HOST"),
				Port:     viper.GetInt("SMTP_PORT"),
				Username: viper.GetString("SMTP_USERNAME"),
				Password: viper.GetString("SMTP_PASSWORD"),
			},
		},
		Payments: PaymentsConfig{
			StripePaymentLink: viper.GetString("STRIPE_PAYMENT_LINK"),
		},
		Business: BusinessConfig{
			Name:    viper.GetString("BUSINESS_NAME"),
			Email:   viper.GetString("BUSINESS_EMAIL"),
			Phone:   viper.GetString("BUSINESS_PHONE"),
			Address: viper.GetString("BUSINESS_ADDRESS"),
		},
		EnvFileErr: envErr,
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// IsProduction reports whether the app runs in production
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
