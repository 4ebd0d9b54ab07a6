package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/nadeesha208/restosaas/pkg/logger"
	"github.com/spf13/viper"
)

func MustInit() {
	if err := godotenv.Load("./.env"); err != nil {
		panic("error while loading .env file: " + err.Error())
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/restosaas")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		panic("error while reading config file: " + err.Error())
	}
	setDefaults()
	SetupLogger()
}

func setDefaults() {
	viper.SetDefault("server.http.port", "8080")
	viper.SetDefault("postgres.migrations_path", "./migrations")
	viper.SetDefault("orders.cancel_window_seconds", 60)
	viper.SetDefault("rabbitmq.outbox.poll_interval_seconds", 10)
	viper.SetDefault("rabbitmq.outbox.batch_size", 100)
	viper.SetDefault("rabbitmq.outbox.max_retries", 5)
}

func SetupLogger() {
	handler := logger.NewHandler(nil)
	log := slog.New(handler)
	slog.SetDefault(log)
}
