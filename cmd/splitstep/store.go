package main

import (
	"fmt"
	"os"

	"splitstep/internal/output"
)

// openExistingStore opens a database for reading without creating a new
// empty one by accident.
func openExistingStore(path string) (*output.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("run database %s: %w", path, err)
	}
	return output.OpenStore(path)
}
