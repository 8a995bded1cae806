package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the skill_matcher binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "skill_matcher"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/skill_matcher ./cmd/skill_matcher'", binaryPath)
	}

	return binaryPath
}
