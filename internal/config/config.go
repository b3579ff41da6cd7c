// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек сервиса
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	AMQPConnectionString    string `yaml:"amqp_connection_string"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	Quota                   `yaml:"quota"`
	Checkout                `yaml:"checkout"`
	PaymentProvider         `yaml:"payment_provider"`
	Refactorer              `yaml:"refactorer"`
	Upload                  `yaml:"upload"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"60s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"120s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// Quota структура с настройками бесплатного лимита загрузок
type Quota struct {
	FreeLimit int `yaml:"free_limit" env-default:"3"`
}

// Checkout структура с настройками платежных сессий
type Checkout struct {
	PriceID       string        `yaml:"price_id"`
	SuccessURL    string        `yaml:"success_url"`
	CancelURL     string        `yaml:"cancel_url"`
	WebhookSecret string        `yaml:"webhook_secret" env:"CHECKOUT_WEBHOOK_SECRET"`
	SessionTTL    time.Duration `yaml:"session_ttl" env-default:"24h"`
	SweepInterval time.Duration `yaml:"sweep_interval" env-default:"1h"`
}

// PaymentProvider структура для подключения к платежному провайдеру
type PaymentProvider struct {
	APIURLProvider string `yaml:"api_url"`
	SecretKey      string `yaml:"secret_key" env:"PAYMENT_PROVIDER_SECRET_KEY"`
}

// Refactorer структура для подключения к движку рефакторинга
type Refactorer struct {
	APIURLRefactorer  string        `yaml:"api_url"`
	APIKey            string        `yaml:"api_key" env:"REFACTORER_API_KEY"`
	Model             string        `yaml:"model" env-default:"gpt-3.5-turbo"`
	TimeoutRefactorer time.Duration `yaml:"timeout" env-default:"60s"`
	MemoSize          int           `yaml:"memo_size" env-default:"256"`
	MemoTTL           time.Duration `yaml:"memo_ttl" env-default:"1h"`
}

// Upload структура с ограничениями на загружаемые файлы
type Upload struct {
	MaxSizeBytes int64 `yaml:"max_size_bytes" env-default:"10485760"`
}

// MustLoad функция для загрузки конфига, путь берется из переменной окружения CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"AMQPConnectionString: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Quota:\n"+
			"  FreeLimit: %d\n"+
			"Checkout:\n"+
			"  PriceID: %s\n"+
			"  SuccessURL: %s\n"+
			"  CancelURL: %s\n"+
			"  SessionTTL: %s\n"+
			"  SweepInterval: %s\n"+
			"Refactorer:\n"+
			"  APIURL: %s\n"+
			"  Model: %s\n"+
			"  Timeout: %s\n"+
			"Upload:\n"+
			"  MaxSizeBytes: %d\n",
		c.Env,
		c.StorageConnectionString,
		c.AMQPConnectionString,
		c.AddressRedis,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.FreeLimit,
		c.PriceID,
		c.SuccessURL,
		c.CancelURL,
		c.SessionTTL,
		c.SweepInterval,
		c.APIURLRefactorer,
		c.Model,
		c.TimeoutRefactorer,
		c.MaxSizeBytes,
	)
}
