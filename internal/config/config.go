// Package config builds the process-wide settings store from viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Section names as they appear in appsettings files.
const (
	ApplicationSection = "ApplicationSettings"
	DatabaseSection    = "DatabaseSettings"
)

var (
	applicationKeys = []string{"ApplicationName", "Version", "MaxItemsPerPage", "EnableDetailedErrors"}
	databaseKeys    = []string{"ConnectionString", "CommandTimeout", "EnableRetryOnFailure"}
)

// ServerSettings configures the HTTP process itself.
type ServerSettings struct {
	Port        string
	Catalog     string
	RabbitMQURL string
}

// NewViper returns a viper instance wired for appsettings files and
// environment overrides. Section keys map to env vars with "__" as the
// separator, e.g. APPLICATIONSETTINGS__VERSION.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("PRODUCT_CATALOG", "hardware")
	v.SetDefault("RABBITMQ_URL", "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("appsettings")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	bindSection(v, ApplicationSection, applicationKeys)
	bindSection(v, DatabaseSection, databaseKeys)
	return v
}

func bindSection(v *viper.Viper, section string, keys []string) {
	for _, key := range keys {
		// BindEnv only fails without arguments.
		_ = v.BindEnv(section + "." + key)
	}
}

// ReadConfigFile reads the configured file into v. A missing file is not an
// error; anything else is returned so the caller can decide how loud to be.
func ReadConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read configuration file: %w", err)
	}
	return nil
}

// LoadServer reads the server settings from v.
func LoadServer(v *viper.Viper) ServerSettings {
	return ServerSettings{
		Port:        v.GetString("APP_PORT"),
		Catalog:     v.GetString("PRODUCT_CATALOG"),
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
	}
}

// decodeSection copies the section's leaf keys that are set into a scratch
// viper and unmarshals them into out. found is false when no key of the
// section is set anywhere.
func decodeSection(v *viper.Viper, section string, keys []string, out any) (found bool, err error) {
	scratch := viper.New()
	for _, key := range keys {
		path := section + "." + key
		if v.IsSet(path) {
			scratch.Set(key, v.Get(path))
			found = true
		}
	}
	if !found {
		return false, nil
	}
	if err := scratch.Unmarshal(out); err != nil {
		return true, fmt.Errorf("failed to decode %s: %w", section, err)
	}
	return true, nil
}
