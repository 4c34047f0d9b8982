package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/solverview/internal/session"
	"github.com/lox/solverview/internal/tree"
	"github.com/lox/solverview/internal/treetest"
)

func loadSample(t *testing.T) *session.Session {
	t.Helper()
	store := session.NewStore(zerolog.Nop())
	sess, err := store.Load("sample.json", []byte(treetest.Sample))
	require.NoError(t, err)
	return sess
}

func TestSlug(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", "root"},
		{"/", "root"},
		{"/childrens/CHECK", "childrens_check"},
		{"/childrens/BET 5", "childrens_bet-5"},
		{"childrens/CHECK/dealcards/Qh", "childrens_check_dealcards_qh"},
		{"/childrens/RAISE 2.5x", "childrens_raise-2-5x"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, slug(tt.path))
		})
	}
}

func TestSlugsAreUnique(t *testing.T) {
	got := slugs([]string{"/childrens/CHECK", "childrens/CHECK/", "", "/"})
	assert.Equal(t, []string{"childrens_check", "childrens_check-2", "root", "root-2"}, got)
}

func TestExportSession(t *testing.T) {
	sess := loadSample(t)
	dir := filepath.Join(t.TempDir(), "out")

	files, err := exportSession(context.Background(), sess, dir,
		[]string{"", "/childrens/CHECK", "/childrens/BET 5"}, zerolog.Nop())
	require.NoError(t, err)

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	assert.Equal(t, []string{"game.json", "tree.json", "root.json", "childrens_check.json", "childrens_bet-5.json"}, names)

	data, err := os.ReadFile(filepath.Join(dir, "game.json"))
	require.NoError(t, err)
	var game map[string]any
	require.NoError(t, json.Unmarshal(data, &game))
	assert.Equal(t, float64(treetest.SampleDecisionPoints), game["decision_points"])

	data, err = os.ReadFile(filepath.Join(dir, "root.json"))
	require.NoError(t, err)
	var bundle map[string]any
	require.NoError(t, json.Unmarshal(data, &bundle))
	assert.Equal(t, "", bundle["path"])
	assert.Equal(t, true, bundle["strategy"].(map[string]any)["has_strategy"])
	assert.Len(t, bundle["hand_matrix"].(map[string]any)["cells"], 169)

	data, err = os.ReadFile(filepath.Join(dir, "childrens_bet-5.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &bundle))
	assert.Equal(t, map[string]any{"has_strategy": false}, bundle["hand_matrix"])
}

func TestExportSessionDefaultsToRoot(t *testing.T) {
	sess := loadSample(t)
	dir := t.TempDir()

	files, err := exportSession(context.Background(), sess, dir, nil, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, files, 3)
	assert.FileExists(t, filepath.Join(dir, "root.json"))
}

func TestExportSessionBadPath(t *testing.T) {
	sess := loadSample(t)
	dir := filepath.Join(t.TempDir(), "out")

	_, err := exportSession(context.Background(), sess, dir, []string{"/childrens/FOLD"}, zerolog.Nop())
	require.ErrorIs(t, err, tree.ErrNodeNotFound)
	assert.NoDirExists(t, dir)
}
