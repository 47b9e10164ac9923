package app

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/sripathisridhar/assignment11/internal/api/http"
	"github.com/sripathisridhar/assignment11/internal/infrastructure/click"
	"github.com/sripathisridhar/assignment11/internal/infrastructure/kafka"
	"github.com/sripathisridhar/assignment11/internal/infrastructure/mongo"
	"github.com/sripathisridhar/assignment11/internal/infrastructure/pg"
	"github.com/sripathisridhar/assignment11/internal/infrastructure/redis"
)

const AppName = "CALCULATIONS"

// Config — конфиг приложения. Заполняется через envconfig с префиксом CALCULATIONS.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// Storage выбирает репозиторий: postgres или mongo. Обе реализации
	// закрывают один и тот же порт, так что остальной код разницы не видит.
	Storage    string            `envconfig:"STORAGE" default:"postgres"`
	Server     http.ServerConfig `envconfig:"SERVER"`
	DB         pg.Config         `envconfig:"DB"`
	Mongo      mongo.Config      `envconfig:"MONGO"`
	Redis      redis.Config      `envconfig:"REDIS"`
	Kafka      kafka.Config      `envconfig:"KAFKA"`
	ClickHouse click.Config      `envconfig:"CLICKHOUSE"`
}

// LoadCfg загружает конфиг: подтягивает .env (godotenv), затем заполняет структуру из окружения (envconfig).
func LoadCfg() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: .env не найден, используем окружение: %v", err)
	}

	var cfg Config
	if err := envconfig.Process(AppName, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
