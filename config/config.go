package config

import (
	"os"
)

type Config struct {
	ServerAddr     string
	MysqlDSN       string
	JWTSecret      string
	AmqpURL        string
	EventsExchange string
}

var Cfg *Config

func Load() {
	Cfg = &Config{
		ServerAddr:     ":" + getEnv("PORT", "8080"),
		MysqlDSN:       getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/bizlink?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:      getEnv("JWT_SECRET", "bizlink-secret-key-change-in-production"),
		AmqpURL:        getEnv("AMQP_URL", ""),
		EventsExchange: getEnv("EVENTS_EXCHANGE", "app.events"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
