package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Env          string
	AppSecret    string
	DatabaseURL  string
	JWTExpiry    time.Duration
	Port         string
	SiteName     string
	SiteUrl      string
	MailHost     string
	MailPort     string
	MailUsername string
	MailPassword string
	GreadsAPIKey string
}

// Load 加载配置，必填项缺失时直接退出
func Load() *Config {
	expiryHours, _ := strconv.Atoi(getEnv("JWT_EXPIRY_HOURS", "72"))

	return &Config{
		Env:          getEnv("APP_ENV", "development"),
		AppSecret:    mustEnv("APP_SECRET"),
		DatabaseURL:  mustEnv("DATABASE_URL"),
		JWTExpiry:    time.Duration(expiryHours) * time.Hour,
		Port:         getEnv("PORT", "5005"),
		SiteName:     getEnv("SITE_NAME", "Bookslum"),
		SiteUrl:      getEnv("SITE_URL", "http://localhost:5005"),
		MailHost:     getEnv("MAIL_HOST", "smtp.googlemail.com"),
		MailPort:     getEnv("MAIL_PORT", "587"),
		MailUsername: mustEnv("MAIL_USERNAME"),
		MailPassword: mustEnv("MAIL_PASSWORD"),
		GreadsAPIKey: mustEnv("GREADS_API_KEY"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("缺少必需的环境变量: %s", key)
	}
	return value
}
