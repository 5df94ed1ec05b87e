package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", env.App.Addr)
	assert.Equal(t, 3306, env.Database.Port)
	assert.Equal(t, 10*time.Minute, env.Database.ConnMaxLifetime)
	assert.True(t, env.Payments.SingleSuccess)
	assert.NotEmpty(t, env.CORS.AllowedOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("DATABASE_NAME", "tours_test")
	t.Setenv("PAYMENTS_SINGLE_SUCCESS", "false")
	t.Setenv("AUTH_JWT_SECRET", "abc")

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", env.App.Addr)
	assert.Equal(t, "tours_test", env.Database.Name)
	assert.False(t, env.Payments.SingleSuccess)
	assert.Equal(t, "abc", env.Auth.JWTSecret)
}

func TestDSN(t *testing.T) {
	dsn := DatabaseConfig{Host: "db", Port: 3307, User: "app", Password: "pw", Name: "tours"}.DSN()
	assert.Contains(t, dsn, "app:pw@tcp(db:3307)/tours?")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}
