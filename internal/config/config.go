package config

import (
	"time"

	"github.com/shareit-hub/service-shareit/pkg/config"
)

// ServiceConfig holds all configuration for the ShareIt server.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	DBConfig    config.DatabaseConfig
	KafkaConfig config.KafkaConfig
	RedisConfig config.RedisConfig
}

// Load reads server configuration from SHAREIT_SERVER_* variables.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("SHAREIT_SERVER")
	if err != nil {
		return nil, err
	}

	return &ServiceConfig{
		Port:        config.GetServicePort(v, "SERVICE_PORT", "9090"),
		AppEnv:      config.GetAppEnv(v),
		DBConfig:    config.LoadDatabaseConfig(v, "DB_NAME"),
		KafkaConfig: config.LoadKafkaConfig(v),
		RedisConfig: config.LoadRedisConfig(v),
	}, nil
}

// BreakerConfig tunes the circuit breaker in front of the server.
type BreakerConfig struct {
	MaxConsecutiveFailures uint32
	OpenTimeout            time.Duration
}

// GatewayConfig holds all configuration for the validating gateway.
type GatewayConfig struct {
	Port            string
	AppEnv          string
	ServerURL       string
	UpstreamTimeout time.Duration
	Breaker         BreakerConfig
}

// LoadGateway reads gateway configuration from SHAREIT_GATEWAY_* variables.
func LoadGateway() (*GatewayConfig, error) {
	v, err := config.Load("SHAREIT_GATEWAY")
	if err != nil {
		return nil, err
	}
	v.SetDefault("SERVER_URL", "http://localhost:9090")
	v.SetDefault("UPSTREAM_TIMEOUT", "10s")
	v.SetDefault("BREAKER_MAX_FAILURES", 2)
	v.SetDefault("BREAKER_OPEN_TIMEOUT", "10s")

	return &GatewayConfig{
		Port:            config.GetServicePort(v, "SERVICE_PORT", "8080"),
		AppEnv:          config.GetAppEnv(v),
		ServerURL:       v.GetString("SERVER_URL"),
		UpstreamTimeout: v.GetDuration("UPSTREAM_TIMEOUT"),
		Breaker: BreakerConfig{
			MaxConsecutiveFailures: v.GetUint32("BREAKER_MAX_FAILURES"),
			OpenTimeout:            v.GetDuration("BREAKER_OPEN_TIMEOUT"),
		},
	}, nil
}
