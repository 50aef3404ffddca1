/**
 * @description
 * This file is responsible for managing the configuration of the
 * trip-status-service. It uses the Viper library to read settings from
 * environment variables or a .env file, making the application
 * environment-agnostic.
 *
 * @dependencies
 * - github.com/spf13/viper: For configuration management.
 *
 * @notes
 * - Configuration is loaded into a `Config` struct for type-safe access
 *   throughout the application.
 * - The Caspio credentials are the only secrets this service holds; the
 *   inbound API itself is unauthenticated.
 */
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerPort         string `mapstructure:"SERVER_PORT"`
	ServiceVersion     string `mapstructure:"SERVICE_VERSION"`
	CaspioAccountID    string `mapstructure:"CASPIO_ACCOUNT_ID"`
	CaspioClientID     string `mapstructure:"CASPIO_CLIENT_ID"`
	CaspioClientSecret string `mapstructure:"CASPIO_CLIENT_SECRET"`
	CustomerTable      string `mapstructure:"CASPIO_CUSTOMER_TABLE"`
	PackageTable       string `mapstructure:"CASPIO_PACKAGE_TABLE"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (config Config, err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVICE_VERSION", "dev")
	viper.SetDefault("CASPIO_CUSTOMER_TABLE", "tbl_customers")
	viper.SetDefault("CASPIO_PACKAGE_TABLE", "tbl_packages")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind env vars explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("SERVICE_VERSION")
	_ = viper.BindEnv("CASPIO_ACCOUNT_ID")
	_ = viper.BindEnv("CASPIO_CLIENT_ID")
	_ = viper.BindEnv("CASPIO_CLIENT_SECRET")
	_ = viper.BindEnv("CASPIO_CUSTOMER_TABLE")
	_ = viper.BindEnv("CASPIO_PACKAGE_TABLE")

	// The config file is optional; environment variables alone are fine in
	// containerized deployments.
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err = viper.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}

	if config.CaspioAccountID == "" || config.CaspioClientID == "" || config.CaspioClientSecret == "" {
		return Config{}, fmt.Errorf("CASPIO_ACCOUNT_ID, CASPIO_CLIENT_ID and CASPIO_CLIENT_SECRET are required")
	}

	return config, nil
}
