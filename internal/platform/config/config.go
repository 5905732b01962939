package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database driver selectors.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the run's locations and names. The defaults reproduce the
// canonical quarterly report run; tests and other deployments override them
// through the environment or a .env file.
type Config struct {
	SourceURL     string `validate:"required,url"`
	RatesCSVPath  string `validate:"required"`
	OutputCSVPath string `validate:"required"`
	DBDriver      string `validate:"required,oneof=sqlite postgres"`
	SQLitePath    string `validate:"required_if=DBDriver sqlite"`
	DatabaseURL   string `validate:"required_if=DBDriver postgres"`
	TableName     string `validate:"required"`
	AuditLogPath  string `validate:"required"`
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("SOURCE_URL", "https://web.archive.org/web/20230908091635/https://en.wikipedia.org/wiki/List_of_largest_banks")
	viper.SetDefault("RATES_CSV_PATH", "exchange_rate.csv")
	viper.SetDefault("OUTPUT_CSV_PATH", "Largest_banks_data.csv")
	viper.SetDefault("DB_DRIVER", DriverSQLite)
	viper.SetDefault("SQLITE_PATH", "Banks.db")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("TABLE_NAME", "Largest_banks")
	viper.SetDefault("AUDIT_LOG_PATH", "code_log.txt")

	viper.AutomaticEnv()

	cfg := &Config{
		SourceURL:     viper.GetString("SOURCE_URL"),
		RatesCSVPath:  viper.GetString("RATES_CSV_PATH"),
		OutputCSVPath: viper.GetString("OUTPUT_CSV_PATH"),
		DBDriver:      viper.GetString("DB_DRIVER"),
		SQLitePath:    viper.GetString("SQLITE_PATH"),
		DatabaseURL:   viper.GetString("PGSQL_URL"),
		TableName:     viper.GetString("TABLE_NAME"),
		AuditLogPath:  viper.GetString("AUDIT_LOG_PATH"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
