package config

import (
	"log"
	"os"
	"strconv"
)

func New() Config {
	return Config{
		BasePath:     requireEnv("BASE_PATH"),
		Port:         requireEnvAsInt("SERVER_PORT"),
		Hostname:     requireEnv("HOSTNAME"),
		SecureCookie: requireEnvAsBool("SECURE_COOKIE"),
		Postgresql: Postgresql{
			Host:         requireEnv("DATABASE_HOST"),
			Port:         requireEnvAsInt("DATABASE_PORT"),
			Username:     requireEnv("DATABASE_USERNAME"),
			Password:     requireEnv("DATABASE_PASSWORD"),
			DatabaseName: requireEnv("DATABASE_NAME"),
		},
		Session: Session{
			SecretKey:         requireEnv("SESSION_SECRET_KEY"),
			ExpirationSeconds: requireEnvAsInt("SESSION_EXPIRATION_SECONDS"),
		},
		Admin: Admin{
			Username: requireEnv("ADMIN_USERNAME"),
			Password: requireEnv("ADMIN_PASSWORD"),
		},
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     optionalEnvAsInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		NotificationEmail: os.Getenv("NOTIFICATION_EMAIL"),
	}
}

type Config struct {
	BasePath string
	Port     int
	Hostname string
	// SecureCookie marks the session cookie https-only; turned off for plain
	// http local development.
	SecureCookie bool
	Postgresql   Postgresql
	Session      Session
	Admin        Admin
	// SMTP and NotificationEmail are optional; RSVP notification mails are
	// disabled when SMTP.Host is empty.
	SMTP              SMTP
	NotificationEmail string
}

type Postgresql struct {
	Host         string
	Port         int
	Username     string
	Password     string
	DatabaseName string
}

type Session struct {
	SecretKey         string
	ExpirationSeconds int
}

type Admin struct {
	Username string
	Password string
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
}

func requireEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("Can't find environment variable: %s\n", key)
	}
	return value
}

func requireEnvAsInt(key string) int {
	valueStr := requireEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("Can't parse value as integer: %s", err.Error())
	}
	return value
}

func requireEnvAsBool(key string) bool {
	valueStr := requireEnv(key)
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Fatalf("Can't parse value as boolean: %s", err.Error())
	}
	return value
}

func optionalEnvAsInt(key string, fallback int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("Can't parse value as integer: %s", err.Error())
	}
	return value
}
