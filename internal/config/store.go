package config

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/viper"

	"productapi/internal/models"
)

// Store is the read-only settings holder shared by every request.
type Store struct {
	app models.ApplicationSettings
	db  models.DatabaseSettings
}

// DefaultApplicationSettings is used when the application section is
// missing or cannot be decoded.
func DefaultApplicationSettings() models.ApplicationSettings {
	return models.ApplicationSettings{
		ApplicationName:      "CodingTestApi",
		Version:              "1.0.0",
		MaxItemsPerPage:      50,
		EnableDetailedErrors: false,
	}
}

// NewStore wraps already decoded settings.
func NewStore(app models.ApplicationSettings, db models.DatabaseSettings) *Store {
	return &Store{app: app, db: db}
}

// Load decodes both sections from v. The application section falls back to
// DefaultApplicationSettings; the database section has no fallback and stays
// zero-valued.
func Load(v *viper.Viper) *Store {
	app := models.ApplicationSettings{}
	found, err := decodeSection(v, ApplicationSection, applicationKeys, &app)
	switch {
	case err != nil:
		log.Warnf("Using default application settings: %v", err)
		app = DefaultApplicationSettings()
	case !found:
		log.Infof("No %s section configured, using defaults", ApplicationSection)
		app = DefaultApplicationSettings()
	}

	db := models.DatabaseSettings{}
	if _, err := decodeSection(v, DatabaseSection, databaseKeys, &db); err != nil {
		log.Warnf("Ignoring database settings: %v", err)
		db = models.DatabaseSettings{}
	}

	return NewStore(app, db)
}

// Application returns a copy of the application settings.
func (s *Store) Application() models.ApplicationSettings {
	return s.app
}

// Database returns a copy of the database settings.
func (s *Store) Database() models.DatabaseSettings {
	return s.db
}

// ApplicationInfo renders "{name} v{version}".
func (s *Store) ApplicationInfo() string {
	log.Info("Getting application information")
	return fmt.Sprintf("%s v%s", s.app.ApplicationName, s.app.Version)
}

// AllSettings flattens both sections into string values.
func (s *Store) AllSettings() map[string]string {
	log.Info("Getting all configuration settings")
	return map[string]string{
		"ApplicationName":      s.app.ApplicationName,
		"Version":              s.app.Version,
		"MaxItemsPerPage":      strconv.Itoa(s.app.MaxItemsPerPage),
		"EnableDetailedErrors": strconv.FormatBool(s.app.EnableDetailedErrors),
		"DatabaseTimeout":      strconv.Itoa(s.db.CommandTimeout),
		"DatabaseRetryEnabled": strconv.FormatBool(s.db.EnableRetryOnFailure),
	}
}
