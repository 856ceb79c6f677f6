package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	ServerAddr  string
	LogLevel    string

	DatabaseURL string

	RedisAddr     string
	RedisUsername string
	RedisPassword string
	RedisDB       int

	KafkaBrokers      []string
	KafkaSessionTopic string

	SecretKey    []byte
	JWTAlgorithm string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "account"),
		ServerAddr:  EnvDefault("SERVER_ADDR", ":8080"),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		RedisAddr:     EnvDefault("REDIS_ADDR", "localhost:6379"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       EnvIntDefault("REDIS_DB", 0),

		KafkaBrokers:      CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaSessionTopic: EnvDefault("KAFKA_SESSION_TOPIC", "sessions"),

		SecretKey:    []byte(os.Getenv("SECRET_KEY")),
		JWTAlgorithm: EnvDefault("JWT_ALGORITHM", "HS256"),
		AccessTTL:    time.Duration(EnvIntDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 15)) * time.Minute,
		RefreshTTL:   time.Duration(EnvIntDefault("REFRESH_TOKEN_EXPIRE_DAYS", 180)) * 24 * time.Hour,
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid integer value for %s: %q, using default: %d", key, v, def)
		return def
	}
	return n
}
