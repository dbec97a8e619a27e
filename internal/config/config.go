package config

import (
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Env      string         // Env is the current environment: local, development, production.
	Postgres PostgresConfig // Postgres holds the database configuration.
	HTTP     HTTPConfig     // HTTP holds the API server configuration.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Dbname   string // Dbname is the name of the database.
}

// HTTPConfig struct holds the listen address of the API server.
type HTTPConfig struct {
	Host string // Host is the bind address.
	Port string // Port is the bind port.
}

// MustLoad loads the configuration from environment variables, optionally layered
// over a YAML file pointed to by CONFIG_PATH. It panics if the configuration is unusable.
func MustLoad() *Config {
	viper.Reset()

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			panic("config file does not exist: " + configPath)
		}

		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			panic("config error: " + err.Error())
		}
	}

	mustBindEnv("env", "APP_ENV")
	mustBindEnv("postgres.host", "POSTGRES_HOST")
	mustBindEnv("postgres.port", "POSTGRES_PORT")
	mustBindEnv("postgres.user", "POSTGRES_USER")
	mustBindEnv("postgres.password", "POSTGRES_PASSWORD")
	mustBindEnv("postgres.db_name", "POSTGRES_DB")
	mustBindEnv("http.host", "APP_HOST")
	mustBindEnv("http.port", "APP_PORT")

	viper.SetDefault("env", "local")
	viper.SetDefault("postgres.host", "postgres")
	viper.SetDefault("postgres.port", "5432")
	viper.SetDefault("postgres.user", "appuser")
	viper.SetDefault("postgres.db_name", "appdb")
	viper.SetDefault("http.host", "0.0.0.0")
	viper.SetDefault("http.port", "8000")

	if viper.GetString("postgres.password") == "" {
		panic("postgres password is empty: set POSTGRES_PASSWORD")
	}

	return &Config{
		Env: viper.GetString("env"),
		Postgres: PostgresConfig{
			Host:     viper.GetString("postgres.host"),
			Port:     viper.GetString("postgres.port"),
			User:     viper.GetString("postgres.user"),
			Password: viper.GetString("postgres.password"),
			Dbname:   viper.GetString("postgres.db_name"),
		},
		HTTP: HTTPConfig{
			Host: viper.GetString("http.host"),
			Port: viper.GetString("http.port"),
		},
	}
}

func mustBindEnv(key, envName string) {
	if err := viper.BindEnv(key, envName); err != nil {
		panic("failed to bind env variable " + envName + ": " + err.Error())
	}
}
