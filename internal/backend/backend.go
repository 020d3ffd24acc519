package backend

import (
	"fmt"

	"spenddiary/internal/config"
	"spenddiary/internal/store"
)

// BackendType selects the persistence layer for diary and budget data.
type BackendType string

const (
	FileBackend   BackendType = "file"
	SQLiteBackend BackendType = "sqlite"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Config holds what the factory needs to build a backend.
type Config struct {
	Type BackendType

	// File backend
	DiaryPath   string
	BudgetsPath string

	// SQLite backend
	SQLiteDBPath string
}

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:         backendType,
		DiaryPath:    appConfig.DiaryPath,
		BudgetsPath:  appConfig.BudgetsPath,
		SQLiteDBPath: appConfig.SQLiteDBPath,
	}, nil
}

// Validate checks that the chosen backend has the paths it needs.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case FileBackend:
		if c.DiaryPath == "" {
			return fmt.Errorf("diary path is required for file backend")
		}
		if c.BudgetsPath == "" {
			return fmt.Errorf("budgets path is required for file backend")
		}
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	}

	return nil
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result bundles the stores a backend provides with its cleanup function.
type Result struct {
	Diary   store.DiaryStore
	Budgets store.BudgetStore
	Cleanup CleanupFunc
}
