package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// BillingConfig holds every tunable of the rent-cycle resolver. It is
// passed into the resolver explicitly; the billing package never reads
// globals.
type BillingConfig struct {
	DueDay           int           `mapstructure:"BILLING_DUE_DAY"`         // calendar day rent falls due
	HistoryLimit     int           `mapstructure:"BILLING_HISTORY_LIMIT"`   // payments fetched per booking
	MaxConcurrency   int           `mapstructure:"BILLING_MAX_CONCURRENCY"` // customer worker pool size
	RunTimeout       time.Duration `mapstructure:"BILLING_RUN_TIMEOUT"`     // budget for one full run
	JobMaxRetry      int           `mapstructure:"BILLING_JOB_MAX_RETRY"`   // outer retry if the whole run fails
	CronSpec         string        `mapstructure:"BILLING_CRON_SPEC"`       // when the daily run is enqueued
	SenderEmail      string        `mapstructure:"BILLING_SENDER_EMAIL"`    // From address on reminder mail
	SenderName       string        `mapstructure:"BILLING_SENDER_NAME"`     // From display name
	PropertyCacheTTL time.Duration `mapstructure:"BILLING_PROPERTY_CACHE_TTL"`
}

// Config holds all configuration values.
type Config struct {
	AppPort      string `mapstructure:"APP_PORT"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`
	Env          string `mapstructure:"ENV"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`
	AdminAPIKey  string `mapstructure:"ADMIN_API_KEY"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`

	// Redis configuration.
	RedisAddr           string `mapstructure:"REDIS_ADDR"`
	RedisPassword       string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB        int    `mapstructure:"REDIS_CACHE_DB"`
	RedisBillingQueueDB int    `mapstructure:"REDIS_BILLING_QUEUE_DB"`

	// SMTP configuration for reminder mail.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     string `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`

	// Payment gateway.
	StripeKey           string `mapstructure:"STRIPE_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	CheckoutSuccessURL  string `mapstructure:"CHECKOUT_SUCCESS_URL"`
	CheckoutCancelURL   string `mapstructure:"CHECKOUT_CANCEL_URL"`

	Billing BillingConfig `mapstructure:",squash"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "stayease")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_BILLING_QUEUE_DB", 3)
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", "1025")
	viper.SetDefault("BILLING_DUE_DAY", 7)
	viper.SetDefault("BILLING_HISTORY_LIMIT", 2)
	viper.SetDefault("BILLING_MAX_CONCURRENCY", 8)
	viper.SetDefault("BILLING_RUN_TIMEOUT", "10m")
	viper.SetDefault("BILLING_JOB_MAX_RETRY", 1)
	viper.SetDefault("BILLING_CRON_SPEC", "0 6 * * *")
	viper.SetDefault("BILLING_SENDER_EMAIL", "billing@stayease.in")
	viper.SetDefault("BILLING_SENDER_NAME", "StayEase Billing")
	viper.SetDefault("BILLING_PROPERTY_CACHE_TTL", "10m")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
