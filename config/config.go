package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	Search   SearchConfig   `yaml:"search"`
	Booking  BookingConfig  `yaml:"booking"`
	Payment  PaymentConfig  `yaml:"payment"`
}

type HTTPConfig struct {
	Address        string   `yaml:"address"`
	SwaggerFile    string   `yaml:"swagger_file"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RateLimit      float64  `yaml:"rate_limit"`
	RateBurst      int      `yaml:"rate_burst"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// StorageConfig selects the key-value backend: memory, redis or postgres.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	Seed   bool   `yaml:"seed"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type AuthConfig struct {
	// PasswordScheme is "aes" (reversible, static key) or "bcrypt".
	PasswordScheme string        `yaml:"password_scheme"`
	PasswordKey    string        `yaml:"password_key"`
	TokenSecret    string        `yaml:"token_secret"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	ExpiryTick     time.Duration `yaml:"expiry_tick"`
}

type SearchConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl"`
	Latency  time.Duration `yaml:"latency"`
	PriceMax int64         `yaml:"price_max"`
}

type BookingConfig struct {
	MaxPassengers int `yaml:"max_passengers"`
	DefaultSeats  int `yaml:"default_seats"`
}

type PaymentConfig struct {
	Latency time.Duration `yaml:"latency"`
}

func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv()
	cfg.fillDefaults()
	return cfg, nil
}

func Defaults() *Config {
	cfg := &Config{}
	cfg.fillDefaults()
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SKYFARE_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("SKYFARE_AUTH_SECRET"); v != "" {
		c.Auth.TokenSecret = v
	}
	if v := os.Getenv("SKYFARE_HTTP_ADDRESS"); v != "" {
		c.HTTP.Address = v
	}
}

func (c *Config) fillDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.RateLimit == 0 {
		c.HTTP.RateLimit = 100
	}
	if c.HTTP.RateBurst == 0 {
		c.HTTP.RateBurst = 200
	}
	if len(c.HTTP.AllowedOrigins) == 0 {
		c.HTTP.AllowedOrigins = []string{"*"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Auth.PasswordScheme == "" {
		c.Auth.PasswordScheme = "aes"
	}
	if c.Auth.PasswordKey == "" {
		c.Auth.PasswordKey = "secret-key"
	}
	if c.Auth.TokenSecret == "" {
		c.Auth.TokenSecret = "skyfare-dev-secret"
	}
	if c.Auth.IdleTimeout == 0 {
		c.Auth.IdleTimeout = 5 * time.Minute
	}
	if c.Auth.ExpiryTick == 0 {
		c.Auth.ExpiryTick = time.Second
	}
	if c.Search.CacheTTL == 0 {
		c.Search.CacheTTL = time.Hour
	}
	if c.Search.Latency == 0 {
		c.Search.Latency = 500 * time.Millisecond
	}
	if c.Search.PriceMax == 0 {
		c.Search.PriceMax = 20000
	}
	if c.Booking.MaxPassengers == 0 {
		c.Booking.MaxPassengers = 5
	}
	if c.Booking.DefaultSeats == 0 {
		c.Booking.DefaultSeats = 50
	}
	if c.Payment.Latency == 0 {
		c.Payment.Latency = time.Second
	}
}
