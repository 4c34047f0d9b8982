package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/lox/solverview/internal/session"
	"github.com/lox/solverview/internal/tree"
)

// loadSession reads and parses a solver tree file into a fresh store.
func loadSession(filename string, validate bool, logger zerolog.Logger) (*session.Session, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading tree: %w", err)
	}

	store := session.NewStore(logger, session.WithParseOptions(tree.WithSchemaValidation(validate)))
	sess, err := store.Load(filepath.Base(filename), data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filename, err)
	}
	return sess, nil
}
