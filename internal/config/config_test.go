package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvConfigDefaults(t *testing.T) {
	require.NoError(t, LoadEnvConfig())

	assert.Equal(t, "5000", DefaultEnvConfig.APP_PORT)
	assert.Equal(t, "http://localhost:9200", DefaultEnvConfig.ES_URL)
	assert.Equal(t, "employees", DefaultEnvConfig.ES_INDEX)
	assert.Equal(t, "employee_emails", DefaultEnvConfig.ES_EMAIL_INDEX)
	assert.Equal(t, int64(5*1024*1024), DefaultEnvConfig.UPLOAD_MAX_SIZE)
	assert.Equal(t, 24*time.Hour, DefaultEnvConfig.TOKEN_TTL)
}

func TestLoadEnvConfigOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("ES_URL", "http://es:9200")
	t.Setenv("UPLOAD_MAX_SIZE", "1048576")
	t.Setenv("TOKEN_TTL", "45m")

	require.NoError(t, LoadEnvConfig())

	assert.Equal(t, "8080", DefaultEnvConfig.APP_PORT)
	assert.Equal(t, "http://es:9200", DefaultEnvConfig.ES_URL)
	assert.Equal(t, int64(1048576), DefaultEnvConfig.UPLOAD_MAX_SIZE)
	assert.Equal(t, 45*time.Minute, DefaultEnvConfig.TOKEN_TTL)
}

func TestGetEnvDurationFallbacks(t *testing.T) {
	t.Setenv("SOME_TTL", "90")
	assert.Equal(t, 90*time.Second, getEnvDuration("SOME_TTL", time.Hour), "bare integers are seconds")

	t.Setenv("SOME_TTL", "bogus")
	assert.Equal(t, time.Hour, getEnvDuration("SOME_TTL", time.Hour))
}
