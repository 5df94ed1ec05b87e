package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Env struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Payments PaymentsConfig `mapstructure:"payments"`
}

type AppConfig struct {
	Addr     string `mapstructure:"addr"`
	GinMode  string `mapstructure:"gin_mode"`
	LogLevel string `mapstructure:"log_level"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// PaymentsConfig toggles the at-most-one successful payment per booking guard.
type PaymentsConfig struct {
	SingleSuccess bool `mapstructure:"single_success"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.addr", ":8080")
	v.SetDefault("app.gin_mode", "")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "tours_travels")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime", 10*time.Minute)
	v.SetDefault("database.conn_max_idle_time", 5*time.Minute)

	v.SetDefault("auth.jwt_secret", "super-secret-key-change-me")

	v.SetDefault("cors.allowed_origins", []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	})

	v.SetDefault("payments.single_success", true)
}

// LoadEnv reads defaults, then an optional config.yaml, then environment
// variables (APP_ADDR, DATABASE_HOST, AUTH_JWT_SECRET, ...).
func LoadEnv() (Env, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Env{}, err
		}
	}

	var env Env
	if err := v.Unmarshal(&env); err != nil {
		return Env{}, err
	}
	env.App.Addr = strings.TrimSpace(env.App.Addr)
	env.App.GinMode = strings.TrimSpace(env.App.GinMode)
	return env, nil
}
