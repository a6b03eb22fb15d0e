package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type PostgreSQLConfig struct {
	DBHost     string
	DBName     string
	DBPort     string
	DBUsername string
	DBPassword string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type TracingConfig struct {
	CollectorHost string
}

type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type CredentialConfig struct {
	Iterations int
	KeyLength  int
}

type ReminderConfig struct {
	Window   time.Duration
	Interval time.Duration
}

type Config struct {
	ServicePort      string
	MetricsPort      string
	Environment      string
	PublicURL        string
	PostgreSQLConfig PostgreSQLConfig
	SessionConfig    SessionConfig
	KafkaConfig      KafkaConfig
	TracingConfig    TracingConfig
	SMTPConfig       SMTPConfig
	S3Config         S3Config
	CredentialConfig CredentialConfig
	ReminderConfig   ReminderConfig
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: getEnv("SERVICE_PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
		Environment: getEnv("ENVIRONMENT", "development"),
		PublicURL:   getEnv("PUBLIC_URL", "https://app.example.com"),
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     os.Getenv("DB_HOST"),
			DBName:     os.Getenv("DB_NAME"),
			DBPort:     os.Getenv("DB_PORT"),
			DBUsername: os.Getenv("DB_USERNAME"),
			DBPassword: os.Getenv("DB_PASSWORD"),
		},
		SessionConfig: SessionConfig{
			Secret:     os.Getenv("SESSION_SECRET"),
			TTL:        getDuration("SESSION_TTL", 24*time.Hour),
			CookieName: getEnv("SESSION_COOKIE", "session"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress:   os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:     os.Getenv("BROKER_TOPIC"),
			BrokerPartition: getInt("BROKER_PARTITION", 0),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		SMTPConfig: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			Sender:   os.Getenv("MAIL_SENDER"),
		},
		S3Config: S3Config{
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    os.Getenv("S3_REGION"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		},
		CredentialConfig: CredentialConfig{
			Iterations: getInt("CREDENTIAL_ITERATIONS", 4096),
			KeyLength:  getInt("CREDENTIAL_KEY_LENGTH", 64),
		},
		ReminderConfig: ReminderConfig{
			Window:   getDuration("REMINDER_WINDOW", 7*24*time.Hour),
			Interval: getDuration("REMINDER_INTERVAL", time.Hour),
		},
	}

	return &conf
}

var ErrMissingSessionSecret = errors.New("SESSION_SECRET must be set")

// Validate rejects configurations the service cannot run safely with.
func (c *Config) Validate() error {
	if c.SessionConfig.Secret == "" {
		return ErrMissingSessionSecret
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Err(err).Str("component", "CreateNewConfig").Str("key", key).Msg("invalid integer, using default")
		return fallback
	}

	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Err(err).Str("component", "CreateNewConfig").Str("key", key).Msg("invalid duration, using default")
		return fallback
	}

	return d
}
