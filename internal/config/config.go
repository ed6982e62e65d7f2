package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string `yaml:"env" env:"ENV" env-default:"local"`
	AdminEmails string `yaml:"admin_emails" env:"ADMIN_EMAILS"`

	HTTPServer HTTPServer `yaml:"http_server"`
	DB         DB         `yaml:"db"`
	Cache      Cache      `yaml:"cache"`
	Storage    Storage    `yaml:"storage"`
	SMTP       SMTP       `yaml:"smtp"`
	Share      Share      `yaml:"share"`
	Signing    Signing    `yaml:"signing"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type DB struct {
	Addr     string `yaml:"addr" env:"DB_ADDR" env-default:"localhost"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-required:"true"`
	Password string `yaml:"password" env:"DB_PASSWORD" env-required:"true"`
	DB       string `yaml:"database" env:"DB_NAME" env-default:"signdesk"`
}

type Cache struct {
	Addr        string        `yaml:"addr" env:"CACHE_ADDR" env-default:"localhost:6379"`
	Password    string        `yaml:"password" env:"CACHE_PASSWORD"`
	DB          int           `yaml:"db" env:"CACHE_DB" env-default:"0"`
	SessionTTL  time.Duration `yaml:"session_ttl" env-default:"24h"`
	DocumentTTL time.Duration `yaml:"document_ttl" env-default:"10m"`
}

// Storage configures the S3-compatible object store. Originals and signed
// artifacts live in separate buckets.
type Storage struct {
	Endpoint        string        `yaml:"endpoint" env:"S3_ENDPOINT" env-required:"true"`
	Region          string        `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	AccessKeyID     string        `yaml:"access_key_id" env:"S3_ACCESS_KEY_ID" env-required:"true"`
	SecretAccessKey string        `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY" env-required:"true"`
	DocumentsBucket string        `yaml:"documents_bucket" env:"S3_DOCUMENTS_BUCKET" env-default:"documents"`
	SignedBucket    string        `yaml:"signed_bucket" env:"S3_SIGNED_BUCKET" env-default:"signed-documents"`
	URLTTL          time.Duration `yaml:"url_ttl" env-default:"1h"`
}

// SMTP is optional: with an empty host outbound mail is skipped with a
// warning instead of failing share operations.
type SMTP struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from" env:"SMTP_FROM" env-default:"noreply@signdesk.local"`
}

type Share struct {
	AppURL       string `yaml:"app_url" env:"APP_URL" env-default:"http://localhost:8080"`
	TokenTTLDays int    `yaml:"token_ttl_days" env-default:"30"`
}

type Signing struct {
	// FontPath is a TTF used for the annotation line under embedded
	// signatures; empty disables the annotation.
	FontPath string `yaml:"font_path" env:"SIGNING_FONT_PATH"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg Config

	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("cannot read config %s: %s", configPath, err)
		}

		return &cfg
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return &cfg
}
