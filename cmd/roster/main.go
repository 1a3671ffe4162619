// Roster engine batch entry point: reads a configuration document and an
// unavailability spreadsheet from the executable's directory, solves the
// month's roster, and writes a versioned xlsx report alongside them.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/paiban/roster/pkg/errors"
	"github.com/paiban/roster/pkg/logger"

	"github.com/paiban/roster/internal/runner"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const (
	configFileName         = "config2.json"
	unavailabilityFileName = "indisponibilita_dipendenti.xlsx"
)

func main() {
	logger.Init(logger.Config{
		Level:  os.Getenv("APP_LOG_LEVEL"),
		Format: "console",
	})

	fmt.Printf("Roster engine v%s\n", Version)
	fmt.Printf("Build: %s (%s)\n", BuildTime, GitCommit)

	dir, err := executableDir()
	if err != nil {
		logger.Fatal().Err(err).Msg("could not resolve executable directory")
	}

	opts := runner.Options{
		ConfigPath:         filepath.Join(dir, configFileName),
		UnavailabilityPath: filepath.Join(dir, unavailabilityFileName),
		ReportDir:          dir,
	}

	outcome, err := runner.Run(context.Background(), opts)
	if err != nil {
		code := apperrors.GetCode(err)
		if code == apperrors.CodeConfigNotFound || code == apperrors.CodeConfigInvalid {
			logger.Fatal().Err(err).Msg("fatal configuration error, aborting run")
		}
		logger.Error().Err(err).Msg("roster run did not complete")
		os.Exit(0)
	}

	logger.Info().
		Str("status", outcome.SolveStatus).
		Str("report", outcome.ReportPath).
		Msg("roster run complete")
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}
