package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/romtools/romtrace/pkg/config"
	"github.com/romtools/romtrace/pkg/logging"
	"github.com/romtools/romtrace/pkg/models"
)

// validateMatchArgs validates the match command positionals
func validateMatchArgs(archivePath, repoPath string) error {
	info, err := os.Stat(archivePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("archive path does not exist: %s", archivePath)
	}
	if err != nil {
		return fmt.Errorf("failed to access archive path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("archive path is not a directory: %s", archivePath)
	}

	if _, err := os.Stat(repoPath); os.IsNotExist(err) {
		return fmt.Errorf("repository path does not exist: %s", repoPath)
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) {
	if matchFlags.Diff {
		cfg.Match.DiffMode = true
	}

	if matchFlags.Parallel > 0 {
		cfg.Performance.MaxWorkers = matchFlags.Parallel
	} else if cfg.Performance.MaxWorkers == 0 {
		cfg.Performance.MaxWorkers = 4
	}

	if len(matchFlags.Exclude) > 0 {
		cfg.Exclude = matchFlags.Exclude
	}

	if matchFlags.Output != "" {
		cfg.Output.Format = matchFlags.Output
	}

	if matchFlags.Progress {
		cfg.Output.Progress = true
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	// Enable progress in verbose mode
	if globalFlags.Verbose {
		cfg.Output.Progress = true
	}
}

// createMatchOperation creates a match operation from configuration
func createMatchOperation(cfg *config.Config, archivePath, repoPath string) (*models.MatchOperation, error) {
	operation := &models.MatchOperation{
		ID:              uuid.New().String(),
		ArchivePath:     archivePath,
		RepoPath:        repoPath,
		DiffMode:        cfg.Match.DiffMode,
		CopyFiles:       matchFlags.CopyFiles,
		MergeScript:     matchFlags.MergeScript,
		ExportDir:       matchFlags.ExportDir,
		ExcludePatterns: cfg.Exclude,
		MaxWorkers:      cfg.Performance.MaxWorkers,
		CreatedAt:       time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}

// createLogger creates a logger based on configuration
func createLogger(logFile, logFormat, logLevel string) (logging.Logger, error) {
	// If no log file specified, return null logger
	if logFile == "" {
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch logFormat {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	config := logging.FileLoggerConfig{
		Path:       logFile,
		Format:     format,
		Level:      logging.ParseLevel(logLevel),
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	}

	return logging.NewFileLogger(config)
}
