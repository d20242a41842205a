package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type Config struct {
	Port           string
	GinMode        string
	DatabaseDSN    string
	AllowedOrigins []string

	// PaymentSimDelay is how long the demo payment simulator waits
	// before marking an order paid.
	PaymentSimDelay time.Duration
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func LoadConfig() Config {
	delaySeconds, err := strconv.Atoi(getEnv("PAYMENT_SIM_DELAY_SECONDS", "8"))
	if err != nil || delaySeconds <= 0 {
		delaySeconds = 8
	}

	origins := strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "root:root@tcp(127.0.0.1:3306)/brewhaven?charset=utf8mb4&parseTime=True&loc=Local"),
		AllowedOrigins:  origins,
		PaymentSimDelay: time.Duration(delaySeconds) * time.Second,
	}
}

func InitDB(cfg Config) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(cfg.DatabaseDSN), &gorm.Config{})
}
