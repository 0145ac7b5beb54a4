package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// SettingsReader is the read-only view of the settings store.
type SettingsReader interface {
	ApplicationInfo() string
	AllSettings() map[string]string
}

// ConfigurationHandler exposes the loaded settings.
type ConfigurationHandler struct {
	settings SettingsReader
}

// NewConfigurationHandler creates a ConfigurationHandler.
func NewConfigurationHandler(settings SettingsReader) *ConfigurationHandler {
	return &ConfigurationHandler{settings: settings}
}

// RegisterRoutes registers the configuration routes on router.
func (h *ConfigurationHandler) RegisterRoutes(router fiber.Router) {
	configRoutes := router.Group("/configuration")
	configRoutes.Get("/info", h.HandleGetInfo)
	configRoutes.Get("/settings", h.HandleGetSettings)
}

// HandleGetInfo returns {"applicationInfo": "<name> v<version>"}.
func (h *ConfigurationHandler) HandleGetInfo(c *fiber.Ctx) error {
	log.Info("Getting application info")
	return c.JSON(fiber.Map{
		"applicationInfo": h.settings.ApplicationInfo(),
	})
}

// HandleGetSettings returns the flattened settings map.
func (h *ConfigurationHandler) HandleGetSettings(c *fiber.Ctx) error {
	log.Info("Getting all settings")
	return c.JSON(h.settings.AllSettings())
}
