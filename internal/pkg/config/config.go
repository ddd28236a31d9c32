package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	CORS        CORSConfig
	Log         LogConfig
	JWT         JWTConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Reservation ReservationConfig
	Relay       RelayConfig
}

type ServerConfig struct {
	Port         string        `envconfig:"PORT" required:"true"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	// TrustedProxies lists the IPs or CIDRs whose X-Forwarded-For is
	// believed. Empty means the client IP is always the peer address.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-RateLimit-Limit,X-RateLimit-Remaining"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// JWTConfig holds the shared secret of the identity provider. Tokens are
// issued elsewhere; Duration only applies to locally generated dev tokens.
type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Issuer   string `envconfig:"JWT_ISSUER" default:""`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type RedisConfig struct {
	Addr             string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password         string        `envconfig:"REDIS_PASSWORD" default:""`
	DB               int           `envconfig:"REDIS_DB" default:"0"`
	TrackingCacheTTL time.Duration `envconfig:"TRACKING_CACHE_TTL" default:"30s"`
	RateLimitEnabled bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	RateLimitCount   int64         `envconfig:"RATE_LIMIT_REQUESTS" default:"60"`
	RateLimitWindow  time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

type KafkaConfig struct {
	Brokers     []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	TopicPrefix string   `envconfig:"KAFKA_TOPIC_PREFIX" default:"kiloshare."`
	ClientID    string   `envconfig:"KAFKA_CLIENT_ID" default:"kilo-share"`
}

type ReservationConfig struct {
	TransitionPolicy        string `envconfig:"STATUS_TRANSITION_POLICY" default:"linear"`
	TrackingCodeMaxAttempts int    `envconfig:"TRACKING_CODE_MAX_ATTEMPTS" default:"5"`
}

type RelayConfig struct {
	Schedule  string `envconfig:"RELAY_SCHEDULE" default:"*/5 * * * * *"`
	BatchSize int    `envconfig:"RELAY_BATCH_SIZE" default:"100"`
	// MaxAttempts failed publishes park an event for good.
	MaxAttempts int `envconfig:"RELAY_MAX_ATTEMPTS" default:"10"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already present in the environment win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate catches combinations envconfig cannot express with tags.
func (c Config) Validate() error {
	var problems []error
	if _, err := time.ParseDuration(c.JWT.Duration); err != nil {
		problems = append(problems, fmt.Errorf("JWT_DURATION: %w", err))
	}
	if c.Reservation.TrackingCodeMaxAttempts < 1 {
		problems = append(problems, errors.New("TRACKING_CODE_MAX_ATTEMPTS must be at least 1"))
	}
	if c.Relay.BatchSize < 1 {
		problems = append(problems, errors.New("RELAY_BATCH_SIZE must be at least 1"))
	}
	if c.Relay.MaxAttempts < 1 {
		problems = append(problems, errors.New("RELAY_MAX_ATTEMPTS must be at least 1"))
	}
	if c.Redis.RateLimitEnabled && (c.Redis.RateLimitCount < 1 || c.Redis.RateLimitWindow <= 0) {
		problems = append(problems, errors.New("rate limit needs a positive RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW"))
	}
	if c.CORS.AllowCredentials && slices.Contains(c.CORS.AllowOrigins, "*") {
		problems = append(problems, errors.New("CORS_ALLOW_ORIGINS cannot be * when credentials are allowed"))
	}
	return errors.Join(problems...)
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:         "8889", // Test port
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret-key-for-kilo-share",
			Duration: "1h",
		},
		Redis: RedisConfig{
			Addr:             "localhost:6379",
			TrackingCacheTTL: 30 * time.Second,
			RateLimitEnabled: false,
			RateLimitCount:   60,
			RateLimitWindow:  time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers:     []string{"localhost:9092"},
			TopicPrefix: "kiloshare.test.",
			ClientID:    "kilo-share-test",
		},
		Reservation: ReservationConfig{
			TransitionPolicy:        "linear",
			TrackingCodeMaxAttempts: 5,
		},
		Relay: RelayConfig{
			Schedule:    "*/5 * * * * *",
			BatchSize:   100,
			MaxAttempts: 10,
		},
	}
}
