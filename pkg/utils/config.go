package utils

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Payment  PaymentConfig
	Kafka    KafkaConfig
	CORS     CORSConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	ShutdownTimeout int
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
	MongoURI string
	MongoDB  string
}

type AuthConfig struct {
	Secret      string
	Issuer      string
	Audience    string
	AdminEmails []string
}

type PaymentConfig struct {
	StripeSecretKey string
	Currency        string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// LoadConfig reads .env when present; process environment always wins.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	viper.SetDefault("APP_NAME", "healthhive")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "healthHiveDB")
	viper.SetDefault("AUTH_ADMIN_EMAILS", "")
	viper.SetDefault("PAYMENT_CURRENCY", "usd")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "marketplace_events")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            viper.GetString("APP_NAME"),
			Port:            viper.GetString("PORT"),
			Debug:           viper.GetBool("DEBUG"),
			LogPath:         viper.GetString("LOG_PATH"),
			ShutdownTimeout: viper.GetInt("SHUTDOWN_TIMEOUT_SECONDS"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(viper.GetString("DB_DRIVER")),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
			MongoURI: viper.GetString("MONGO_URI"),
			MongoDB:  viper.GetString("MONGO_DB"),
		},
		Auth: AuthConfig{
			Secret:      viper.GetString("AUTH_SECRET"),
			Issuer:      viper.GetString("AUTH_ISSUER"),
			Audience:    viper.GetString("AUTH_AUDIENCE"),
			AdminEmails: splitList(viper.GetString("AUTH_ADMIN_EMAILS")),
		},
		Payment: PaymentConfig{
			StripeSecretKey: viper.GetString("STRIPE_SECRET_KEY"),
			Currency:        strings.ToLower(viper.GetString("PAYMENT_CURRENCY")),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(viper.GetString("KAFKA_BROKERS")),
			Topic:   viper.GetString("KAFKA_TOPIC"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
