package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Telemetry TelemetryConfig
	Probe     ProbeConfig
	Logger    LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type TelemetryConfig struct {
	Enabled        bool
	Endpoint       string
	Insecure       bool
	SampleRatio    float64
	ServiceName    string
	ServiceVersion string
}

type ProbeConfig struct {
	BcryptCost int
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 3000)
	v.SetDefault("MYSQL_HOST", "127.0.0.1")
	v.SetDefault("MYSQL_PORT", 3306)
	v.SetDefault("MYSQL_USER", "user")
	v.SetDefault("MYSQL_PASSWORD", "password")
	v.SetDefault("MYSQL_DATABASE", "mydb")
	v.SetDefault("MYSQL_MAX_OPEN_CONNS", 10)
	v.SetDefault("MYSQL_MAX_IDLE_CONNS", 2)
	v.SetDefault("MYSQL_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("OTEL_ENABLED", true)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", true)
	v.SetDefault("OTEL_SAMPLE_RATIO", 1.0)
	v.SetDefault("SERVICE_NAME", "trace-sample-service")
	v.SetDefault("SERVICE_VERSION", "0.1.0")
	v.SetDefault("BCRYPT_COST", 4)
	v.SetDefault("LOGGER_LEVEL", "warn")
	v.SetDefault("LOGGER_FORMAT", "text")

	// Env
	v.AutomaticEnv()

	lifetime, err := time.ParseDuration(v.GetString("MYSQL_CONN_MAX_LIFETIME"))
	if err != nil {
		lifetime = 5 * time.Minute
	}

	ratio := v.GetFloat64("OTEL_SAMPLE_RATIO")
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("MYSQL_HOST"),
			Port:            v.GetInt("MYSQL_PORT"),
			User:            v.GetString("MYSQL_USER"),
			Password:        v.GetString("MYSQL_PASSWORD"),
			Name:            v.GetString("MYSQL_DATABASE"),
			MaxOpenConns:    v.GetInt("MYSQL_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("MYSQL_MAX_IDLE_CONNS"),
			ConnMaxLifetime: lifetime,
		},
		Telemetry: TelemetryConfig{
			Enabled:        v.GetBool("OTEL_ENABLED"),
			Endpoint:       v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			Insecure:       v.GetBool("OTEL_EXPORTER_OTLP_INSECURE"),
			SampleRatio:    ratio,
			ServiceName:    v.GetString("SERVICE_NAME"),
			ServiceVersion: v.GetString("SERVICE_VERSION"),
		},
		Probe: ProbeConfig{
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}
