package backend

import (
	"context"
	"fmt"
	"log/slog"

	"spenddiary/internal/store/file"
	"spenddiary/internal/store/sqlite"
)

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case FileBackend:
		return f.createFileBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createFileBackend(config Config) (*Result, error) {
	diary := file.NewDiaryStore(config.DiaryPath)
	budgets := file.NewBudgetStore(config.BudgetsPath)

	f.logger.Info("initialized file backend",
		"diary_path", config.DiaryPath,
		"budgets_path", config.BudgetsPath)

	return &Result{
		Diary:   diary,
		Budgets: budgets,
		Cleanup: nil, // plain files, nothing to release
	}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	repo, err := sqlite.NewRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &Result{
		Diary:   repo.Diary(),
		Budgets: repo.Budgets(),
		Cleanup: repo.Close,
	}, nil
}
