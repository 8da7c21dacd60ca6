package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	BaseURL     string
	DatabaseDSN string
	JWTSecret   string

	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string

	// Connection pool bounds; defaults mirror production sizing.
	DBMaxOpenConns   int
	DBMaxIdleConns   int
	DBConnMaxIdle    time.Duration
	DBConnectTimeout time.Duration
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file loaded:", err)
		}
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	return Config{
		ServerPort:  getEnv("SERVER_PORT", ":3000"),
		BaseURL:     getEnv("BASE_URL", "*"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		JWTSecret:   secret,

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    os.Getenv("KAFKA_TOPIC"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),

		DBMaxOpenConns:   getEnvInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:   getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxIdle:    getEnvDuration("DB_CONN_MAX_IDLE", 5*time.Minute),
		DBConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, value, fallback)
		return fallback
	}
	return d
}
