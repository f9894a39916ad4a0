package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SMTP holds the outbound mail relay settings. Delivery is only attempted
// when every field except Secure is present; a partially configured relay
// degrades to log-only mode.
type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
	Secure   bool
}

// Configured reports whether the relay has everything it needs to deliver.
func (s SMTP) Configured() bool {
	return s.Host != "" && s.Port > 0 && s.User != "" && s.Password != "" && s.From != "" && s.To != ""
}

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	DatabaseURL      string
	RedisURL         string
	JWTSecret        string
	OwnerOpenID      string
	ContactRateLimit int
	SMTP             SMTP
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Portfolio API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")
	v.SetDefault("contact.rate.limit", 12)

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		DatabaseURL:      v.GetString("database.url"),
		RedisURL:         v.GetString("redis.url"),
		JWTSecret:        v.GetString("jwt.secret"),
		OwnerOpenID:      v.GetString("owner.open.id"),
		ContactRateLimit: v.GetInt("contact.rate.limit"),
		SMTP: SMTP{
			Host:     v.GetString("smtp.host"),
			Port:     v.GetInt("smtp.port"),
			User:     v.GetString("smtp.user"),
			Password: v.GetString("smtp.password"),
			From:     v.GetString("email.from"),
			To:       v.GetString("email.to"),
			Secure:   v.GetBool("smtp.secure"),
		},
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.ContactRateLimit <= 0 {
		cfg.ContactRateLimit = 12
	}

	return cfg, nil
}
