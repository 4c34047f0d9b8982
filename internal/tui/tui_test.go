package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/solverview/internal/session"
	"github.com/lox/solverview/internal/treetest"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests
	store := session.NewStore(zerolog.Nop())
	sess, err := store.Load("sample.json", []byte(treetest.Sample))
	require.NoError(t, err)
	return NewModel(sess, logger)
}

func press(m *Model, keys ...tea.KeyMsg) {
	for _, k := range keys {
		m.Update(k)
	}
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyBack  = tea.KeyMsg{Type: tea.KeyBackspace}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func labels(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label
	}
	return out
}

func TestModelNavigation(t *testing.T) {
	t.Run("starts at the root", func(t *testing.T) {
		m := newTestModel(t)
		assert.Equal(t, "", m.Path())
		assert.Equal(t, []string{"CHECK", "BET 5"}, labels(m.Entries()))
		assert.Equal(t, "/childrens/CHECK", m.Entries()[0].Path)
		assert.Equal(t, 0, m.Cursor())
	})

	t.Run("descends and returns to the previous cursor", func(t *testing.T) {
		m := newTestModel(t)
		press(m, keyDown, keyEnter)
		assert.Equal(t, "/childrens/BET 5", m.Path())
		assert.Empty(t, m.Entries())

		press(m, keyBack)
		assert.Equal(t, "", m.Path())
		assert.Equal(t, 1, m.Cursor())
	})

	t.Run("cursor stays in range", func(t *testing.T) {
		m := newTestModel(t)
		press(m, keyUp)
		assert.Equal(t, 0, m.Cursor())
		press(m, keyDown, keyDown, keyDown)
		assert.Equal(t, 1, m.Cursor())
		press(m, runes("g"))
		assert.Equal(t, 0, m.Cursor())
	})

	t.Run("deal cards are listed with suit symbols", func(t *testing.T) {
		m := newTestModel(t)
		press(m, keyEnter, keyEnter)
		assert.Equal(t, "/childrens/CHECK/childrens/CHECK", m.Path())
		assert.Equal(t, []string{"2♣", "Q♥"}, labels(m.Entries()))
		assert.Equal(t, "/childrens/CHECK/childrens/CHECK/dealcards/Qh", m.Entries()[1].Path)
	})

	t.Run("actions without a child are marked missing", func(t *testing.T) {
		m := newTestModel(t)
		press(m, keyEnter, keyEnter, keyDown, keyEnter)
		require.Equal(t, "/childrens/CHECK/childrens/CHECK/dealcards/Qh", m.Path())
		require.Len(t, m.Entries(), 1)
		assert.True(t, m.Entries()[0].Missing)

		press(m, keyEnter)
		assert.Equal(t, "/childrens/CHECK/childrens/CHECK/dealcards/Qh", m.Path())
		assert.Contains(t, m.Status(), "No child node for CHECK")
	})

	t.Run("backspace at the root is a no-op", func(t *testing.T) {
		m := newTestModel(t)
		press(m, keyBack)
		assert.Equal(t, "", m.Path())
	})
}

func TestModelViews(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, ViewNode, m.CurrentView())

	press(m, keyTab)
	assert.Equal(t, ViewStrategy, m.CurrentView())

	press(m, runes("3"))
	assert.Equal(t, ViewMatrix, m.CurrentView())

	press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, ViewStrategy, m.CurrentView())

	press(m, keyTab, keyTab, keyTab)
	assert.Equal(t, ViewNode, m.CurrentView())
	assert.Equal(t, "EV", ViewEV.String())
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	press(m, keyEnter)
	out := m.View()
	assert.Contains(t, out, "solverview")
	assert.Contains(t, out, "/childrens/CHECK")
	assert.Contains(t, out, "action_node")

	_, cmd := m.Update(runes("q"))
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestRenderMatrix(t *testing.T) {
	store := session.NewStore(zerolog.Nop())
	sess, err := store.Load("sample.json", []byte(treetest.Sample))
	require.NoError(t, err)

	hm, err := sess.HandMatrix("")
	require.NoError(t, err)
	out := RenderMatrix(nil, hm)
	assert.Contains(t, out, "AKo")
	assert.Contains(t, out, "22")
	assert.Contains(t, out, "BET 5")

	empty, err := sess.HandMatrix("/childrens/BET 5")
	require.NoError(t, err)
	assert.Contains(t, RenderMatrix(nil, empty), "No strategy data")
}
