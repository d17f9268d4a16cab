package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ServerDefaults(t *testing.T) {
	t.Setenv("SHAREIT_SERVER_KAFKA_BROKERS", "kafka:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, "shareit", cfg.DBConfig.DBName)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaConfig.Brokers)
	assert.Empty(t, cfg.RedisConfig.URL)
}

func TestLoadGateway(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadGateway()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Port)
		assert.Equal(t, "http://localhost:9090", cfg.ServerURL)
		assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
		assert.Equal(t, uint32(2), cfg.Breaker.MaxConsecutiveFailures)
	})

	t.Run("unprefixed server url", func(t *testing.T) {
		t.Setenv("SERVER_URL", "http://server:9090")

		cfg, err := LoadGateway()
		require.NoError(t, err)
		assert.Equal(t, "http://server:9090", cfg.ServerURL)
	})

	t.Run("prefixed overrides", func(t *testing.T) {
		t.Setenv("SHAREIT_GATEWAY_SERVER_URL", "http://other:9090")
		t.Setenv("SHAREIT_GATEWAY_UPSTREAM_TIMEOUT", "3s")

		cfg, err := LoadGateway()
		require.NoError(t, err)
		assert.Equal(t, "http://other:9090", cfg.ServerURL)
		assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	})
}
