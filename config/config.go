package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort   string `mapstructure:"APP_PORT"`
	Env       string `mapstructure:"ENV"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	JWTSecret string `mapstructure:"JWT_SECRET"`

	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Base domain under which account subdomains are served in production,
	// e.g. "bookable.app" serves "acme.bookable.app".
	BaseDomain     string   `mapstructure:"BASE_DOMAIN"`
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// Rate limiting. Each surface gets its own cap and window (seconds).
	APIRateLimit         int `mapstructure:"API_RATE_LIMIT"`
	APIRateWindowSec     int `mapstructure:"API_RATE_WINDOW_SEC"`
	AuthRateLimit        int `mapstructure:"AUTH_RATE_LIMIT"`
	AuthRateWindowSec    int `mapstructure:"AUTH_RATE_WINDOW_SEC"`
	BookingRateLimit     int `mapstructure:"BOOKING_RATE_LIMIT"`
	BookingRateWindowSec int `mapstructure:"BOOKING_RATE_WINDOW_SEC"`

	// Redis configuration. When REDIS_ADDR is empty the rate limiter keeps
	// its counters in process memory.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisLimiterDB int    `mapstructure:"REDIS_LIMITER_DB"`
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
	viper.SetDefault("DATABASE_NAME", "bookable")
	viper.SetDefault("BASE_DOMAIN", "")
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("API_RATE_LIMIT", 300)
	viper.SetDefault("API_RATE_WINDOW_SEC", 60)
	viper.SetDefault("AUTH_RATE_LIMIT", 10)
	viper.SetDefault("AUTH_RATE_WINDOW_SEC", 60)
	viper.SetDefault("BOOKING_RATE_LIMIT", 30)
	viper.SetDefault("BOOKING_RATE_WINDOW_SEC", 60)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_LIMITER_DB", 0)

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
