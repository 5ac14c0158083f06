package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Media
		CoverCleanup
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string // silent, error, warn or info
	}
	Media struct {
		Dir               string
		CoverFetchTimeout time.Duration
	}
	CoverCleanup struct {
		Enabled  bool
		Schedule string // Cron format: "30 3 * * *" = daily at 03:30
	}
)

// loadDotEnv reads variables from the given .env files into the process
// environment. Variables that are already set win.
func loadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err == nil {
		log.Printf("Loaded environment from %v", files)
	}
}

func NewConfig() *Config {
	loadDotEnv(".env")

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("media_dir", DefaultMediaDir)
	v.SetDefault("cover_fetch_timeout", "30s")
	v.SetDefault("cover_cleanup_enabled", false)
	v.SetDefault("cover_cleanup_schedule", "30 3 * * *") // Daily at 03:30

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Media: Media{
			Dir:               v.GetString("MEDIA_DIR"),
			CoverFetchTimeout: v.GetDuration("COVER_FETCH_TIMEOUT"),
		},
		CoverCleanup: CoverCleanup{
			Enabled:  v.GetBool("COVER_CLEANUP_ENABLED"),
			Schedule: v.GetString("COVER_CLEANUP_SCHEDULE"),
		},
	}
}
