package models

// ApplicationSettings holds process-wide application options.
type ApplicationSettings struct {
	ApplicationName string `mapstructure:"ApplicationName" json:"applicationName"`
	Version         string `mapstructure:"Version" json:"version"`
	// MaxItemsPerPage is informational; nothing paginates with it.
	MaxItemsPerPage      int  `mapstructure:"MaxItemsPerPage" json:"maxItemsPerPage"`
	EnableDetailedErrors bool `mapstructure:"EnableDetailedErrors" json:"enableDetailedErrors"`
}

// DatabaseSettings holds the database section. No component opens a
// connection with it.
type DatabaseSettings struct {
	ConnectionString     string `mapstructure:"ConnectionString" json:"connectionString"`
	CommandTimeout       int    `mapstructure:"CommandTimeout" json:"commandTimeout"`
	EnableRetryOnFailure bool   `mapstructure:"EnableRetryOnFailure" json:"enableRetryOnFailure"`
}
