package config_test

import (
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/hestia/internal/config"

	"github.com/stretchr/testify/assert"
)

const testConfigFile = `
env: development
postgres:
  host: fileHost
  port: "6543"
  user: fileUser
  password: filePass
  db_name: fileDB
  max_conns: 4
http:
  port: 9000
  shutdown_timeout: 3s
monitoring:
  port: 9001
migrations:
  dir: /opt/hestia/migrations
`

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("HESTIA_ENV", "local")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")
	t.Setenv("HESTIA_HTTP_PORT", "8000")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "testHost", cfg.Postgres.Host)
	assert.Equal(t, "12345", cfg.Postgres.Port)
	assert.Equal(t, "admin", cfg.Postgres.User)
	assert.Equal(t, "adminpass", cfg.Postgres.Password)
	assert.Equal(t, "testName", cfg.Postgres.Dbname)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
	assert.Equal(t, 8000, cfg.HTTP.Port)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, 8081, cfg.Monitoring.Port)
	assert.Equal(t, "migrations", cfg.Migrations.Dir)
}

func Test_MustLoadFromFile(t *testing.T) {
	defer filet.CleanUp(t)

	file := filet.TmpFile(t, "", testConfigFile)
	t.Setenv("CONFIG_PATH", file.Name())
	t.Setenv("DB_PASSWORD", "envPass")

	cfg := config.MustLoad()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "fileHost", cfg.Postgres.Host)
	assert.Equal(t, "6543", cfg.Postgres.Port)
	assert.Equal(t, "fileUser", cfg.Postgres.User)
	assert.Equal(t, "envPass", cfg.Postgres.Password, "environment must override the file")
	assert.Equal(t, "fileDB", cfg.Postgres.Dbname)
	assert.Equal(t, int32(4), cfg.Postgres.MaxConns)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, 60*time.Second, cfg.HTTP.IdleTimeout)
	assert.Equal(t, 9001, cfg.Monitoring.Port)
	assert.Equal(t, "/opt/hestia/migrations", cfg.Migrations.Dir)
}

func TestMustLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/definitely/not/here.yaml")

	assert.PanicsWithValue(t, "config file does not exist: /definitely/not/here.yaml", func() {
		config.MustLoad()
	})
}

func TestMustLoad_DurationError(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("HESTIA_SHUTDOWN_TIMEOUT", "error_value")

	assert.PanicsWithValue(t, "failed to parse http.shutdown_timeout from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_InvalidPort(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("HESTIA_MONITORING_PORT", "0")

	assert.Panics(t, func() {
		config.MustLoad()
	})
}
