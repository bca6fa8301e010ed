package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string           `yaml:"env"`        // Env is the current environment: local, development, production.
	Postgres   PostgresConfig   `yaml:"postgres"`   // Postgres holds the database configuration
	HTTP       HTTPConfig       `yaml:"http"`       // HTTP holds the API and UI server configuration
	Monitoring MonitoringConfig `yaml:"monitoring"` // Monitoring holds the metrics and health server configuration
	Migrations MigrationsConfig `yaml:"migrations"` // Migrations holds the goose migrations configuration
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`      // Host is the database server address.
	Port     string `yaml:"port"`      // Port is the database server port.
	User     string `yaml:"user"`      // User is the database user.
	Password string `yaml:"password"`  // Password is the database user's password.
	Dbname   string `yaml:"db_name"`   // Dbname is the name of the database.
	SSLMode  string `yaml:"sslmode"`   // SSLMode is passed to the driver as is.
	MaxConns int32  `yaml:"max_conns"` // MaxConns caps the size of the connection pool.
}

// HTTPConfig struct holds the configuration of the public HTTP server.
type HTTPConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type MonitoringConfig struct {
	Port int `yaml:"port"`
}

type MigrationsConfig struct {
	Dir string `yaml:"dir"`
}

const (
	defaultEnv             = "local"
	defaultPostgresPort    = "5432"
	defaultSSLMode         = "disable"
	defaultMaxConns        = 10
	defaultHTTPPort        = 5000
	defaultMonitoringPort  = 8081
	defaultReadTimeout     = "15s"
	defaultWriteTimeout    = "15s"
	defaultIdleTimeout     = "60s"
	defaultShutdownTimeout = "10s"
	defaultMigrationsDir   = "migrations"
)

// envBindings maps configuration keys to the environment variables that override them.
var envBindings = map[string]string{
	"env":                   "HESTIA_ENV",
	"postgres.host":         "DB_HOST",
	"postgres.port":         "DB_PORT",
	"postgres.user":         "DB_USERNAME",
	"postgres.password":     "DB_PASSWORD",
	"postgres.db_name":      "DB_NAME",
	"postgres.sslmode":      "DB_SSLMODE",
	"postgres.max_conns":    "DB_MAX_CONNS",
	"http.port":             "HESTIA_HTTP_PORT",
	"http.read_timeout":     "HESTIA_READ_TIMEOUT",
	"http.write_timeout":    "HESTIA_WRITE_TIMEOUT",
	"http.idle_timeout":     "HESTIA_IDLE_TIMEOUT",
	"http.shutdown_timeout": "HESTIA_SHUTDOWN_TIMEOUT",
	"monitoring.port":       "HESTIA_MONITORING_PORT",
	"migrations.dir":        "HESTIA_MIGRATIONS_DIR",
}

// MustLoad loads the configuration from an optional YAML file pointed to by CONFIG_PATH
// and from environment variables, which take precedence over the file.
// It panics if the configuration cannot be read or contains invalid values.
func MustLoad() *Config {
	vpr := viper.New()

	for key, env := range envBindings {
		if err := vpr.BindEnv(key, env); err != nil {
			panic("failed to bind environment variable " + env + ": " + err.Error())
		}
	}

	vpr.SetDefault("env", defaultEnv)
	vpr.SetDefault("postgres.port", defaultPostgresPort)
	vpr.SetDefault("postgres.sslmode", defaultSSLMode)
	vpr.SetDefault("postgres.max_conns", defaultMaxConns)
	vpr.SetDefault("http.port", defaultHTTPPort)
	vpr.SetDefault("http.read_timeout", defaultReadTimeout)
	vpr.SetDefault("http.write_timeout", defaultWriteTimeout)
	vpr.SetDefault("http.idle_timeout", defaultIdleTimeout)
	vpr.SetDefault("http.shutdown_timeout", defaultShutdownTimeout)
	vpr.SetDefault("monitoring.port", defaultMonitoringPort)
	vpr.SetDefault("migrations.dir", defaultMigrationsDir)

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		// check if file exists
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			panic("config file does not exist: " + configPath)
		}

		vpr.SetConfigFile(configPath)
		vpr.SetConfigType("yaml")
		if err := vpr.ReadInConfig(); err != nil {
			panic("config error: " + err.Error())
		}
	}

	cfg := &Config{
		Env: vpr.GetString("env"),
		Postgres: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Dbname:   vpr.GetString("postgres.db_name"),
			SSLMode:  vpr.GetString("postgres.sslmode"),
			MaxConns: vpr.GetInt32("postgres.max_conns"),
		},
		HTTP: HTTPConfig{
			Port:            vpr.GetInt("http.port"),
			ReadTimeout:     mustParseDuration(vpr, "http.read_timeout"),
			WriteTimeout:    mustParseDuration(vpr, "http.write_timeout"),
			IdleTimeout:     mustParseDuration(vpr, "http.idle_timeout"),
			ShutdownTimeout: mustParseDuration(vpr, "http.shutdown_timeout"),
		},
		Monitoring: MonitoringConfig{
			Port: vpr.GetInt("monitoring.port"),
		},
		Migrations: MigrationsConfig{
			Dir: vpr.GetString("migrations.dir"),
		},
	}

	if cfg.HTTP.Port <= 0 || cfg.Monitoring.Port <= 0 {
		panic("http and monitoring ports must be positive numbers")
	}
	if cfg.Postgres.MaxConns <= 0 {
		panic("postgres max_conns must be a positive number")
	}

	return cfg
}

// mustParseDuration reads key as a duration string, e.g. "15s".
func mustParseDuration(vpr *viper.Viper, key string) time.Duration {
	raw := vpr.GetString(key)

	duration, err := time.ParseDuration(raw)
	if err != nil {
		panic("failed to parse " + key + " from configuration")
	}

	return duration
}
