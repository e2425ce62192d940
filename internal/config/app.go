package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const defaultLogFile = "minesweep.log"

// LoadDotenv reads variables from the given .env files (".env" when none
// are passed) without overriding the real environment. Missing files are
// not an error.
func LoadDotenv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if _, err := os.Stat(name); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("unable to load %s: %w", name, err)
		}
	}
	return nil
}

func LogFile() string {
	logFile, ok := os.LookupEnv("MINESWEEP_LOG_FILE")
	if !ok || logFile == "" {
		return defaultLogFile
	}
	return logFile
}

func LogLevel() (logrus.Level, error) {
	level, ok := os.LookupEnv("MINESWEEP_LOG_LEVEL")
	if !ok {
		if Development() {
			return logrus.DebugLevel, nil
		}
		return logrus.InfoLevel, nil
	}
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid MINESWEEP_LOG_LEVEL: %w", err)
	}
	return l, nil
}

// Seed returns MINESWEEP_SEED, or 0 when unset.
func Seed() (uint64, error) {
	seedStr, ok := os.LookupEnv("MINESWEEP_SEED")
	if !ok {
		return 0, nil
	}
	seed, err := strconv.ParseUint(seedStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unable to convert MINESWEEP_SEED to uint: %w", err)
	}
	return seed, nil
}

func TelemetryEnabled() bool {
	endpoint, ok := os.LookupEnv("OTEL_EXPORTER_OTLP_ENDPOINT")
	return ok && endpoint != ""
}
