package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_PrefixedOverridesFallback(t *testing.T) {
	t.Setenv("DB_HOST", "plain-host")
	t.Setenv("TESTSVC_DB_HOST", "prefixed-host")
	t.Setenv("DB_PORT", "6543")

	v, err := Load("TESTSVC")
	require.NoError(t, err)

	db := LoadDatabaseConfig(v, "DB_NAME")
	assert.Equal(t, "prefixed-host", db.Host)
	assert.Equal(t, "6543", db.Port)
	assert.Equal(t, "shareit", db.DBName)
}

func TestLoad_UnprefixedFallbacksBeatDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("REDIS_TTL", "30s")

	v, err := Load("TESTSVC")
	require.NoError(t, err)

	assert.Equal(t, "production", GetAppEnv(v))
	db := LoadDatabaseConfig(v, "DB_NAME")
	assert.Equal(t, "db.internal", db.Host)
	assert.Equal(t, "s3cret", db.Password)
	assert.Equal(t, "shareit", db.User)
	assert.Equal(t, 30*time.Second, LoadRedisConfig(v).TTL)
}

func TestLoad_DefaultsWithoutEnvironment(t *testing.T) {
	for _, key := range []string{"APP_ENV", "DB_HOST", "DB_PORT", "DB_SSLMODE"} {
		t.Setenv(key, "")
	}

	v, err := Load("TESTSVC")
	require.NoError(t, err)

	assert.Equal(t, "development", GetAppEnv(v))
	db := LoadDatabaseConfig(v, "DB_NAME")
	assert.Equal(t, "localhost", db.Host)
	assert.Equal(t, "5432", db.Port)
	assert.Equal(t, "disable", db.SSLMode)
}

func TestLoadKafkaConfig_SplitsBrokers(t *testing.T) {
	t.Setenv("TESTSVC_KAFKA_BROKERS", "a:9092, b:9092,,")

	v, err := Load("TESTSVC")
	require.NoError(t, err)

	assert.Equal(t, []string{"a:9092", "b:9092"}, LoadKafkaConfig(v).Brokers)
}

func TestGetServicePort_AddsColon(t *testing.T) {
	t.Setenv("TESTSVC_SERVICE_PORT", "9090")

	v, err := Load("TESTSVC")
	require.NoError(t, err)

	assert.Equal(t, ":9090", GetServicePort(v, "SERVICE_PORT", "8080"))
	assert.Equal(t, ":8080", GetServicePort(v, "MISSING_PORT", "8080"))
}

func TestLoadRedisConfig_DefaultTTL(t *testing.T) {
	v, err := Load("TESTSVC")
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, LoadRedisConfig(v).TTL)
}
