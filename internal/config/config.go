package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode  bool   `env:"TEST_MODE" envDefault:"false"`
	HTTPAddress string `env:"HTTP_ADDRESS" envDefault:"0.0.0.0:9090"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`
	RabbitmqURL   string `env:"RABBITMQ_URL,required"`

	RabbitmqDelayedExchange string `env:"RABBITMQ_DELAYED_EXCHANGE" envDefault:"somenotes-wakes"`
	RabbitmqWakeReadyQueue  string `env:"RABBITMQ_WAKE_READY_QUEUE" envDefault:"wake-ready"`
	RabbitmqWakeWaitQueue   string `env:"RABBITMQ_WAKE_WAIT_QUEUE" envDefault:"wake-wait"`

	ReconciliationPeriod time.Duration `env:"RECONCILIATION_PERIOD" envDefault:"5m"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	return config, nil
}
