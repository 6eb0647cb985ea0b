package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const DefaultSQLitePath = "barcos.db"

type Config struct {
	ServiceHost   string
	ServicePort   int
	Repository    string // memory | sql | redis
	SQLDriver     string // sqlite | postgres
	SQLitePath    string
	RedisEndpoint string
	RedisPassword string
	JwtKey        string
	LogLevel      string
	LogFormat     string // text | json
}

func NewConfig() (*Config, error) {
	var err error
	configName := "config"
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	v.SetDefault("ServiceHost", "0.0.0.0")
	v.SetDefault("ServicePort", 8080)
	v.SetDefault("Repository", "memory")
	v.SetDefault("SQLDriver", "sqlite")
	v.SetDefault("SQLitePath", DefaultSQLitePath)
	v.SetDefault("RedisEndpoint", "localhost:6379")
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogFormat", "text")

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		logrus.Warn("config file not found, using defaults")
	}

	// Чтение .env
	err = godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using defaults")
	}

	v.BindEnv("Repository", "PORT_REPOSITORY")
	v.BindEnv("SQLDriver", "SQL_DRIVER")
	v.BindEnv("SQLitePath", "SQLITE_PATH")
	v.BindEnv("RedisEndpoint", "REDIS_ENDPOINT")
	v.BindEnv("RedisPassword", "REDIS_PASSWORD")
	v.BindEnv("JwtKey", "JWT_KEY")
	v.BindEnv("LogLevel", "LOG_LEVEL")

	cfg := &Config{}
	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}
	cfg.Repository = strings.ToLower(cfg.Repository)
	cfg.SQLDriver = strings.ToLower(cfg.SQLDriver)

	logrus.Info("config parsed")
	return cfg, nil
}

// SetupLogging applies the configured level and format to the standard logrus logger.
func SetupLogging(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
