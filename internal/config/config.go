package config

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "config/local.yaml"

type HTTPServer struct {
	Addr              string        `yaml:"address" env:"HTTP_ADDR" env-default:":3000"`
	ReadTimeout       time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"7s"`
	WriteTimeout      time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"20s"`
	IdleTimeout       time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"120s"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"HTTP_READ_HEADER_TIMEOUT" env-default:"2s"`
}

// Backend describes the REST API every storefront operation is forwarded to.
type Backend struct {
	BaseURL    string        `yaml:"BASE_URL" env:"BACKEND_BASE_URL" env-required:"true"`
	MediaURL   string        `yaml:"MEDIA_URL" env:"BACKEND_MEDIA_URL"`
	Timeout    time.Duration `yaml:"TIMEOUT" env:"BACKEND_TIMEOUT" env-default:"15s"`
	CSRFCookie string        `yaml:"CSRF_COOKIE" env:"BACKEND_CSRF_COOKIE" env-default:"csrftoken"`
	CSRFHeader string        `yaml:"CSRF_HEADER" env:"BACKEND_CSRF_HEADER" env-default:"X-CSRFToken"`
}

type Session struct {
	CookieName string        `yaml:"COOKIE_NAME" env:"SESSION_COOKIE_NAME" env-default:"sf_session"`
	Secret     string        `yaml:"SECRET" env:"SESSION_SECRET" env-required:"true"`
	TTL        time.Duration `yaml:"TTL" env:"SESSION_TTL" env-default:"24h"`
	Secure     bool          `yaml:"SECURE" env:"SESSION_SECURE" env-default:"false"`
	MaxNotices int           `yaml:"MAX_NOTICES" env:"SESSION_MAX_NOTICES" env-default:"20"`
}

type RedisConnect struct {
	Enabled  bool   `yaml:"ENABLED" env:"REDIS_ENABLED" env-default:"true"`
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:"default"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts    int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize     time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15s"`
	RequestsPerSec float64       `yaml:"REQUESTS_PER_SEC" env:"REQUESTS_PER_SEC" env-default:"10"`
	Burst          int           `yaml:"BURST" env:"BURST" env-default:"20"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"ALLOWED_ORIGINS" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:5173"`
}

type OtelConfig struct {
	Enabled          bool    `yaml:"ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"storefront-console"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4318"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"24h"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Backend      Backend      `yaml:"backend"`
	Session      Session      `yaml:"session"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	CORS         CORS         `yaml:"cors"`
	Otel         OtelConfig   `yaml:"otel"`
	Cache        CacheConfig  `yaml:"cache"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the yaml config file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			configPath = defaultConfigPath
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config: %s", err.Error())
	}

	return cfg
}

// LoadConfigFromPath reads the yaml file, applies env overrides and checks the result.
func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {

	base, err := url.Parse(c.Backend.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return fmt.Errorf("invalid backend base url %q", c.Backend.BaseURL)
	}

	c.Backend.BaseURL = strings.TrimRight(c.Backend.BaseURL, "/")

	if c.Backend.MediaURL == "" {
		c.Backend.MediaURL = c.Backend.BaseURL + "/media"
	}
	c.Backend.MediaURL = strings.TrimRight(c.Backend.MediaURL, "/")

	if len(c.Session.Secret) < 16 {
		return fmt.Errorf("session secret must be at least 16 characters")
	}

	if c.Session.MaxNotices < 1 {
		c.Session.MaxNotices = 1
	}

	return nil
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
