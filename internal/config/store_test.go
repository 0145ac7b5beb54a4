package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productapi/internal/config"
	"productapi/internal/models"
)

func viperFromJSON(t *testing.T, body string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("json")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(body)))
	return v
}

func TestLoad_ReadsBothSections(t *testing.T) {
	v := viperFromJSON(t, `{
		"ApplicationSettings": {
			"ApplicationName": "Catalog",
			"Version": "2.3.1",
			"MaxItemsPerPage": 25,
			"EnableDetailedErrors": true
		},
		"DatabaseSettings": {
			"ConnectionString": "Server=db;Database=products",
			"CommandTimeout": 30,
			"EnableRetryOnFailure": true
		}
	}`)

	store := config.Load(v)

	assert.Equal(t, models.ApplicationSettings{
		ApplicationName:      "Catalog",
		Version:              "2.3.1",
		MaxItemsPerPage:      25,
		EnableDetailedErrors: true,
	}, store.Application())
	assert.Equal(t, models.DatabaseSettings{
		ConnectionString:     "Server=db;Database=products",
		CommandTimeout:       30,
		EnableRetryOnFailure: true,
	}, store.Database())
	assert.Equal(t, "Catalog v2.3.1", store.ApplicationInfo())
}

func TestLoad_MissingSectionsKeepAsymmetricFallback(t *testing.T) {
	store := config.Load(viper.New())

	assert.Equal(t, config.DefaultApplicationSettings(), store.Application())
	assert.Equal(t, models.DatabaseSettings{}, store.Database())
	assert.Equal(t, "CodingTestApi v1.0.0", store.ApplicationInfo())
}

func TestLoad_MalformedApplicationSectionFallsBack(t *testing.T) {
	v := viperFromJSON(t, `{
		"ApplicationSettings": {"ApplicationName": "Broken", "MaxItemsPerPage": "lots"},
		"DatabaseSettings": {"CommandTimeout": 15}
	}`)

	store := config.Load(v)

	assert.Equal(t, config.DefaultApplicationSettings(), store.Application())
	assert.Equal(t, 15, store.Database().CommandTimeout)
}

func TestLoad_MalformedDatabaseSectionIsEmpty(t *testing.T) {
	v := viperFromJSON(t, `{"DatabaseSettings": {"CommandTimeout": "soon", "EnableRetryOnFailure": true}}`)

	store := config.Load(v)

	assert.Equal(t, models.DatabaseSettings{}, store.Database())
}

func TestLoad_PartialApplicationSectionIsNotMergedWithDefaults(t *testing.T) {
	v := viperFromJSON(t, `{"ApplicationSettings": {"ApplicationName": "OnlyName"}}`)

	app := config.Load(v).Application()

	assert.Equal(t, "OnlyName", app.ApplicationName)
	assert.Empty(t, app.Version)
	assert.Zero(t, app.MaxItemsPerPage)
}

func TestStore_AllSettings(t *testing.T) {
	store := config.NewStore(
		models.ApplicationSettings{ApplicationName: "Catalog", Version: "1.2.0", MaxItemsPerPage: 10, EnableDetailedErrors: true},
		models.DatabaseSettings{ConnectionString: "secret", CommandTimeout: 45, EnableRetryOnFailure: false},
	)

	assert.Equal(t, map[string]string{
		"ApplicationName":      "Catalog",
		"Version":              "1.2.0",
		"MaxItemsPerPage":      "10",
		"EnableDetailedErrors": "true",
		"DatabaseTimeout":      "45",
		"DatabaseRetryEnabled": "false",
	}, store.AllSettings())
}

func TestNewViper_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "appsettings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ApplicationSettings": {"ApplicationName": "FromFile", "Version": "1.0.0"}}`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APPLICATIONSETTINGS__VERSION", "9.9.9")
	t.Setenv("DATABASESETTINGS__COMMANDTIMEOUT", "60")

	v := config.NewViper()
	require.NoError(t, config.ReadConfigFile(v))
	store := config.Load(v)

	assert.Equal(t, "FromFile", store.Application().ApplicationName)
	assert.Equal(t, "9.9.9", store.Application().Version)
	assert.Equal(t, 60, store.Database().CommandTimeout)
}

func TestReadConfigFile_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "appsettings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ApplicationSettings": `), 0o600))
	t.Setenv("CONFIG_FILE", path)

	v := config.NewViper()
	err := config.ReadConfigFile(v)
	require.Error(t, err)

	store := config.Load(v)
	assert.Equal(t, config.DefaultApplicationSettings(), store.Application())
	assert.Equal(t, models.DatabaseSettings{}, store.Database())
}

func TestLoadServer_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.json"))

	server := config.LoadServer(config.NewViper())

	assert.Equal(t, ":8080", server.Port)
	assert.Equal(t, "hardware", server.Catalog)
	assert.Empty(t, server.RabbitMQURL)
}

func TestLoadServer_Environment(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("PRODUCT_CATALOG", "software")

	server := config.LoadServer(config.NewViper())

	assert.Equal(t, ":9090", server.Port)
	assert.Equal(t, "software", server.Catalog)
}
