package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	LogLevel          string
	OrderNumberPrefix string
	JWTSecret         string

	KafkaBrokers          []string
	KafkaOrderEventsTopic string

	OutboxRelaySchedule  string
	OutboxRelayBatchSize int
	LowStockSchedule     string

	ShutdownTimeout time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "storefront")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ORDER_NUMBER_PREFIX", "NCS")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_ORDER_EVENTS_TOPIC", "order-events")
	v.SetDefault("OUTBOX_RELAY_SCHEDULE", "*/5 * * * * *")
	v.SetDefault("OUTBOX_RELAY_BATCH_SIZE", 100)
	v.SetDefault("LOW_STOCK_SCHEDULE", "0 0 * * * *")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

// LoadConfig reads the configuration from the environment. envFile is loaded
// first when it exists; variables already set in the environment win.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		HTTPPort:              v.GetString("HTTP_PORT"),
		DBHost:                v.GetString("DB_HOST"),
		DBPort:                v.GetString("DB_PORT"),
		DBUser:                v.GetString("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBName:                v.GetString("DB_NAME"),
		DBSslMode:             v.GetString("DB_SSLMODE"),
		LogLevel:              v.GetString("LOG_LEVEL"),
		OrderNumberPrefix:     v.GetString("ORDER_NUMBER_PREFIX"),
		JWTSecret:             v.GetString("JWT_SECRET"),
		KafkaBrokers:          splitList(v.GetString("KAFKA_BROKERS")),
		KafkaOrderEventsTopic: v.GetString("KAFKA_ORDER_EVENTS_TOPIC"),
		OutboxRelaySchedule:   v.GetString("OUTBOX_RELAY_SCHEDULE"),
		OutboxRelayBatchSize:  v.GetInt("OUTBOX_RELAY_BATCH_SIZE"),
		LowStockSchedule:      v.GetString("LOW_STOCK_SCHEDULE"),
		ShutdownTimeout:       v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the service cannot start without.
func (c Config) Validate() error {
	var problems []error
	if c.JWTSecret == "" {
		problems = append(problems, errors.New("JWT_SECRET is required"))
	}
	if c.HTTPPort == "" {
		problems = append(problems, errors.New("HTTP_PORT is required"))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaOrderEventsTopic == "" {
		problems = append(problems, errors.New("KAFKA_ORDER_EVENTS_TOPIC is required when KAFKA_BROKERS is set"))
	}
	if c.ShutdownTimeout <= 0 {
		problems = append(problems, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	return errors.Join(problems...)
}

// DSN is the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// NewLogger creates the JSON logger shared by all components.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		lvl.Set(slog.LevelDebug)
	case "warn":
		lvl.Set(slog.LevelWarn)
	case "error":
		lvl.Set(slog.LevelError)
	default:
		lvl.Set(slog.LevelInfo)
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
