package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DatabaseName      string        `mapstructure:"DATABASE_NAME"`
	Env               string        `mapstructure:"ENV"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	TokenTTL          time.Duration `mapstructure:"TOKEN_TTL"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AllowedOrigins    []string      `mapstructure:"ALLOWED_ORIGINS"`

	// Redis configuration.
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int           `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB     int           `mapstructure:"REDIS_AUTH_DB"`
	RedisReminderDB int           `mapstructure:"REDIS_REMINDER_DB"`
	WorkspaceTTL    time.Duration `mapstructure:"WORKSPACE_TTL"`

	// Gemini and Google Cloud.
	GeminiAPIKey             string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel              string        `mapstructure:"GEMINI_MODEL"`
	AITimeout                time.Duration `mapstructure:"AI_TIMEOUT"`
	GoogleServiceAccountFile string        `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`
	FirebaseProjectID        string        `mapstructure:"FIREBASE_PROJECT_ID"`

	// Payments.
	PaymentGateway       string `mapstructure:"PAYMENT_GATEWAY"`
	PaymentCurrency      string `mapstructure:"PAYMENT_CURRENCY"`
	FlutterwavePublicKey string `mapstructure:"FLUTTERWAVE_PUBLIC_KEY"`
	FlutterwaveSecretKey string `mapstructure:"FLUTTERWAVE_SECRET_KEY"`
	FlutterwaveBaseURL   string `mapstructure:"FLUTTERWAVE_BASE_URL"`
	StripeKey            string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret  string `mapstructure:"STRIPE_WEBHOOK_SECRET"`

	// File storage.
	StorageBackend      string `mapstructure:"STORAGE_BACKEND"`
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	GCSBucket           string `mapstructure:"GCS_BUCKET"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, continuing")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("ALLOWED_ORIGINS", []string{"*"})
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("TOKEN_TTL", 72*time.Hour)

	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "lexaid")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_REMINDER_DB", 2)
	viper.SetDefault("WORKSPACE_TTL", 24*time.Hour)

	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-pro")
	viper.SetDefault("AI_TIMEOUT", 90*time.Second)
	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	viper.SetDefault("FIREBASE_PROJECT_ID", "")

	viper.SetDefault("PAYMENT_GATEWAY", "flutterwave")
	viper.SetDefault("PAYMENT_CURRENCY", "USD")
	viper.SetDefault("FLUTTERWAVE_PUBLIC_KEY", "")
	viper.SetDefault("FLUTTERWAVE_SECRET_KEY", "")
	viper.SetDefault("FLUTTERWAVE_BASE_URL", "https://api.flutterwave.com/v3")
	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("STRIPE_WEBHOOK_SECRET", "")

	viper.SetDefault("STORAGE_BACKEND", "cloudinary")
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
	viper.SetDefault("GCS_BUCKET", "")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
