package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Provider  ProviderConfig
	Report    ReportConfig
	MQTT      MQTTConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

type JWTConfig struct {
	Secret string
}

// ProviderConfig holds the GPS tracking provider transport settings.
type ProviderConfig struct {
	BaseURL     string
	UserAPIHash string
	Timeout     time.Duration
	ReportType  int
	Lang        string
}

// ReportConfig tunes mileage report generation.
type ReportConfig struct {
	ChunkSize        int
	ChunkConcurrency int
	MaxRangeDays     int
}

type MQTTConfig struct {
	Broker         string
	ClientID       string
	Username       string
	Password       string
	ThresholdTopic string
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASSWORD"),
			DBName:      viper.GetString("DB_NAME"),
			SSLMode:     viper.GetString("DB_SSLMODE"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		Provider: ProviderConfig{
			BaseURL:     viper.GetString("PROVIDER_BASE_URL"),
			UserAPIHash: viper.GetString("PROVIDER_USER_API_HASH"),
			Timeout:     time.Duration(viper.GetInt("PROVIDER_TIMEOUT_SECONDS")) * time.Second,
			ReportType:  viper.GetInt("PROVIDER_REPORT_TYPE"),
			Lang:        viper.GetString("PROVIDER_LANG"),
		},
		Report: ReportConfig{
			ChunkSize:        viper.GetInt("REPORT_CHUNK_SIZE"),
			ChunkConcurrency: viper.GetInt("REPORT_CHUNK_CONCURRENCY"),
			MaxRangeDays:     viper.GetInt("REPORT_MAX_RANGE_DAYS"),
		},
		MQTT: MQTTConfig{
			Broker:         viper.GetString("MQTT_BROKER"),
			ClientID:       viper.GetString("MQTT_CLIENT_ID"),
			Username:       viper.GetString("MQTT_USERNAME"),
			Password:       viper.GetString("MQTT_PASSWORD"),
			ThresholdTopic: viper.GetString("MQTT_THRESHOLD_TOPIC"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   viper.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_AUTO_MIGRATE", true)

	viper.SetDefault("PROVIDER_BASE_URL", "https://www.ecuatracker.com/api")
	viper.SetDefault("PROVIDER_TIMEOUT_SECONDS", 15)
	viper.SetDefault("PROVIDER_REPORT_TYPE", 1)
	viper.SetDefault("PROVIDER_LANG", "en")

	viper.SetDefault("REPORT_CHUNK_SIZE", 100)
	viper.SetDefault("REPORT_CHUNK_CONCURRENCY", 1)
	viper.SetDefault("REPORT_MAX_RANGE_DAYS", 31)

	viper.SetDefault("MQTT_CLIENT_ID", "fleet-mileage-monitor")
	viper.SetDefault("MQTT_THRESHOLD_TOPIC", "fleet/thresholds/updated")

	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 20)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 40)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
	viper.SetDefault("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"})
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Enabled reports whether an MQTT broker is configured.
func (c *MQTTConfig) Enabled() bool {
	return c.Broker != ""
}
