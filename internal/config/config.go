package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server configuration
	Port     string
	Mode     string
	Hostname string

	// Database configuration
	DatabaseURL string

	// Redis configuration
	RedisURL string

	// PayPal API credentials
	PayPalUser      string
	PayPalPwd       string
	PayPalSignature string

	// PayPal endpoints
	PayPalAPIURL   string
	PayPalLoginURL string

	// Checkout behavior
	AllowAnonymousCheckout bool
	DefaultCurrency        string
	SaleDescription        string
	RateLimitMinutes       int

	// Brevo email configuration
	BrevoAPIKey         string
	BrevoFromEmail      string
	BrevoFromName       string
	MerchantNotifyEmail string

	// Merchant backend webhook configuration
	WebhookCallbackURL string
	WebhookSecret      string
}

var AppConfig *Config

func InitConfig() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		// Ignore error if .env file doesn't exist
	}

	AppConfig = &Config{
		Port:     getEnv("PORT", "8080"),
		Mode:     getEnv("GIN_MODE", "debug"),
		Hostname: getEnv("HOSTNAME", "http://localhost:8080"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		PayPalUser:      getEnv("PAYPAL_USER", ""),
		PayPalPwd:       getEnv("PAYPAL_PWD", ""),
		PayPalSignature: getEnv("PAYPAL_SIGNATURE", ""),

		PayPalAPIURL: getEnv("PAYPAL_API_URL", "https://api.paypal.com/nvp"),
		PayPalLoginURL: getEnv("PAYPAL_LOGIN_URL",
			"https://www.paypal.com/cgi-bin/webscr?cmd=_express-checkout&token="),

		AllowAnonymousCheckout: getEnvBool("ALLOW_ANONYMOUS_CHECKOUT", false),
		DefaultCurrency:        getEnv("DEFAULT_CURRENCY", "USD"),
		SaleDescription:        getEnv("SALE_DESCRIPTION", ""),
		RateLimitMinutes:       getEnvInt("RATE_LIMIT_MINUTES", 1),

		BrevoAPIKey:         getEnv("BREVO_API_KEY", ""),
		BrevoFromEmail:      getEnv("BREVO_FROM_EMAIL", ""),
		BrevoFromName:       getEnv("BREVO_FROM_NAME", "Checkout Service"),
		MerchantNotifyEmail: getEnv("MERCHANT_NOTIFY_EMAIL", ""),

		WebhookCallbackURL: getEnv("WEBHOOK_CALLBACK_URL", ""),
		WebhookSecret:      getEnv("WEBHOOK_SECRET", ""),
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
