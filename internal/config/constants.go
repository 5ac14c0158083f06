package config

// Default paths
const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./bookcollection.db"

	// DefaultMediaDir is where uploaded cover images are stored
	DefaultMediaDir = "./media"
)
