package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/solverview/internal/session"
)

// Run starts the browser on the alternate screen and blocks until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, sess *session.Session, logger *log.Logger) error {
	model := NewModel(sess, logger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	logger.Info("Starting browser", "session", sess.ID, "file", sess.Filename)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
