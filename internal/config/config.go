package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	LogLevel    string

	// Catalog sources. Either path may be empty, in which case the
	// built-in default catalog (or the single remaining source) is used.
	CatalogPath string
	ThemePath   string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
}

// Load reads configuration from an optional atelier.yml file, the
// environment (ATELIER_ prefix), and a local .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("atelier")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/atelier")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ATELIER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.name", "atelier")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("catalog.path", "config/commission-config.json")
	v.SetDefault("catalog.theme_path", "config/theme-config.json")
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "atelier")
	v.SetDefault("database.user", "atelier")
	v.SetDefault("database.password", "")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle_conn", 2)
	v.SetDefault("database.max_open_conn", 10)
	v.SetDefault("database.conn_max_lifetime", 0)
	v.SetDefault("database.conn_max_idle_time", 0)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
		// no config file, env and defaults apply
	}

	return Config{
		AppName:           v.GetString("app.name"),
		AppVersion:        v.GetString("app.version"),
		Environment:       v.GetString("app.environment"),
		HTTPAddr:          v.GetString("http.addr"),
		LogLevel:          v.GetString("log.level"),
		CatalogPath:       strings.TrimSpace(v.GetString("catalog.path")),
		ThemePath:         strings.TrimSpace(v.GetString("catalog.theme_path")),
		DBType:            v.GetString("database.type"),
		DBHost:            v.GetString("database.host"),
		DBPort:            v.GetString("database.port"),
		DBName:            v.GetString("database.name"),
		DBUser:            v.GetString("database.user"),
		DBPassword:        v.GetString("database.password"),
		DBSSLMode:         v.GetString("database.sslmode"),
		DBMaxIdleConn:     v.GetInt("database.max_idle_conn"),
		DBMaxOpenConn:     v.GetInt("database.max_open_conn"),
		DBConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
		DBConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
	}, nil
}

// Module wires application configuration.
var Module = fx.Module("config",
	fx.Provide(Load),
)
