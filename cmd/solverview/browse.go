package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"

	"github.com/lox/solverview/cmd/solverview/shared"
	"github.com/lox/solverview/internal/tui"
)

// BrowseCmd opens the interactive tree browser
type BrowseCmd struct {
	File     string `kong:"arg,type='existingfile',help='Solver tree JSON file'"`
	LogFile  string `kong:"type='path',help='Write browser logs to this file'"`
	NoSchema bool   `kong:"help='Skip JSON schema validation'"`
}

func (c *BrowseCmd) Run() error {
	// the screen belongs to the browser, so logs go to a file or nowhere
	var sink io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		sink = f
	}

	logger := log.NewWithOptions(sink, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
	})
	zlog := zerolog.New(sink).With().Timestamp().Logger()

	sess, err := loadSession(c.File, !c.NoSchema, zlog)
	if err != nil {
		return err
	}

	ctx := shared.SetupSignalHandler(zlog)
	return tui.Run(ctx, sess, logger)
}
