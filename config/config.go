package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	FrontendURL       string `mapstructure:"FRONTEND_URL"`

	// Redis configuration.
	RedisAddr    string `mapstructure:"REDIS_ADDR"`
	RedisPass    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB  int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB int    `mapstructure:"REDIS_QUEUE_DB"`

	// Stripe.
	StripeSecretKey      string `mapstructure:"STRIPE_SECRET_KEY"`
	StripePublishableKey string `mapstructure:"STRIPE_PUBLISHABLE_KEY"`
	StripeWebhookSecret  string `mapstructure:"STRIPE_WEBHOOK_SECRET"`

	// Razorpay.
	RazorpayKeyID         string `mapstructure:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret     string `mapstructure:"RAZORPAY_KEY_SECRET"`
	RazorpayWebhookSecret string `mapstructure:"RAZORPAY_WEBHOOK_SECRET"`

	// PayPal.
	PaypalClientID     string `mapstructure:"PAYPAL_CLIENT_ID"`
	PaypalClientSecret string `mapstructure:"PAYPAL_CLIENT_SECRET"`
	PaypalWebhookID    string `mapstructure:"PAYPAL_WEBHOOK_ID"`
	PaypalBaseURL      string `mapstructure:"PAYPAL_BASE_URL"`

	// Instamojo.
	InstamojoAPIKey    string `mapstructure:"INSTAMOJO_API_KEY"`
	InstamojoAuthToken string `mapstructure:"INSTAMOJO_AUTH_TOKEN"`
	InstamojoSalt      string `mapstructure:"INSTAMOJO_SALT"`
	InstamojoBaseURL   string `mapstructure:"INSTAMOJO_BASE_URL"`

	// SMTP email delivery.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     string `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`

	// OpenFDA drug label API.
	OpenFDABaseURL  string `mapstructure:"OPENFDA_BASE_URL"`
	OpenFDACacheTTL int    `mapstructure:"OPENFDA_CACHE_TTL_MIN"`

	// Currency conversion (doctor fees are stored in INR).
	ExchangeRateAPIKey string `mapstructure:"EXCHANGE_RATE_API_KEY"`
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
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "meddirect")
	viper.SetDefault("PAYPAL_BASE_URL", "https://api-m.sandbox.paypal.com")
	viper.SetDefault("INSTAMOJO_BASE_URL", "https://test.instamojo.com/api/1.1")
	viper.SetDefault("OPENFDA_BASE_URL", "https://api.fda.gov/drug/label.json")
	viper.SetDefault("OPENFDA_CACHE_TTL_MIN", 60)

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

// IsPlaceholderCredential reports whether a gateway credential is missing or
// still carries a template value. When every credential for a provider looks
// like this, the mock payment adapter is substituted.
func IsPlaceholderCredential(v string) bool {
	if v == "" {
		return true
	}
	lower := strings.ToLower(v)
	for _, marker := range []string{"your_", "changeme", "placeholder", "xxxx", "dummy"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
