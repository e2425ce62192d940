package config

import "os"

// Development is on when MINESWEEP_DEVELOPMENT (or the legacy DEVELOPMENT)
// is set to anything but "0".
func Development() bool {
	for _, key := range []string{"MINESWEEP_DEVELOPMENT", "DEVELOPMENT"} {
		if development, ok := os.LookupEnv(key); ok {
			return development != "0"
		}
	}
	return false
}
