package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds runtime configuration.
type Config struct {
	HTTP         HTTPConfig
	Database     DatabaseConfig
	Backup       BackupConfig
	Dictionaries DictionariesConfig
	Locale       LocaleConfig
}

// HTTPConfig holds server settings.
type HTTPConfig struct {
	Port int
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// BackupConfig holds the periodic backup settings. An empty path disables
// the backup loop.
type BackupConfig struct {
	Path            string
	IntervalMinutes int `mapstructure:"interval_minutes"`
}

// DictionariesConfig points at an optional JSON override for the built-in
// classification tables.
type DictionariesConfig struct {
	Path string
}

// LocaleConfig holds the timezone "today" is computed in.
type LocaleConfig struct {
	Timezone string
}

// loadConfig reads configuration from an optional config file and the
// environment. Env var overrides use prefix GRANAZAP_ (GRANAZAP_HTTP_PORT,
// GRANAZAP_DATABASE_PATH, ...).
func loadConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("http.port", 8080)
	v.SetDefault("database.path", "granazap.db")
	v.SetDefault("backup.path", "")
	v.SetDefault("backup.interval_minutes", 60)
	v.SetDefault("dictionaries.path", "")
	v.SetDefault("locale.timezone", "America/Sao_Paulo")

	v.SetConfigName("granazap")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/granazap")

	v.SetEnvPrefix("GRANAZAP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
