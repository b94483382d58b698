package commands

import (
	"os"
	"path/filepath"

	"github.com/traindesk/traindesk/internal/api"
	"github.com/traindesk/traindesk/internal/backoffice"
	"github.com/traindesk/traindesk/internal/core/config"
	"github.com/traindesk/traindesk/internal/core/credentials"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// API is the authenticated gateway client
	API *api.Client

	// Service orchestrates the entity collections
	Service *backoffice.Service

	// Creds is the persisted session store
	Creds credentials.Store
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "traindesk", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "traindesk")
}
