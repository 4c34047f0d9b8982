package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/solverview/cmd/solverview/shared"
	"github.com/lox/solverview/internal/fileutil"
	"github.com/lox/solverview/internal/report"
	"github.com/lox/solverview/internal/session"
	"github.com/lox/solverview/internal/tree"
)

// ExportCmd writes JSON reports to a directory
type ExportCmd struct {
	File     string   `kong:"arg,type='existingfile',help='Solver tree JSON file'"`
	Out      string   `kong:"required,type='path',help='Output directory'"`
	Path     []string `kong:"help='Node paths to export (repeatable, default the root)'"`
	NoSchema bool     `kong:"help='Skip JSON schema validation'"`
	Debug    bool     `kong:"help='Enable debug logging'"`
}

// Bundle holds every report for one node.
type Bundle struct {
	Path       string              `json:"path"`
	Node       report.NodeInfo     `json:"node"`
	Strategy   report.StrategyInfo `json:"strategy"`
	HandMatrix report.HandMatrix   `json:"hand_matrix"`
	EVAnalysis report.EVAnalysis   `json:"ev_analysis"`
}

func (c *ExportCmd) Run() error {
	logger := shared.SetupLogger(shared.DebugLevel(c.Debug), false)
	sess, err := loadSession(c.File, !c.NoSchema, logger)
	if err != nil {
		return err
	}

	ctx := shared.SetupSignalHandler(logger)
	files, err := exportSession(ctx, sess, c.Out, c.Path, logger)
	if err != nil {
		return err
	}
	logger.Info().Str("dir", c.Out).Int("files", len(files)).Msg("Export complete")
	return nil
}

// exportSession writes game.json, tree.json and one bundle per path into
// dir, returning the files written. Bundles are built concurrently.
func exportSession(ctx context.Context, sess *session.Session, dir string, paths []string, logger zerolog.Logger) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{""}
	}

	// resolve up front so a bad path writes nothing
	for _, p := range paths {
		if _, err := sess.Resolve(p); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	files := []string{
		filepath.Join(dir, "game.json"),
		filepath.Join(dir, "tree.json"),
	}
	if err := fileutil.WriteJSON(files[0], sess.GameInfo()); err != nil {
		return nil, err
	}
	if err := fileutil.WriteJSON(files[1], sess.TreeStructure()); err != nil {
		return nil, err
	}

	names := slugs(paths)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range paths {
		filename := filepath.Join(dir, names[i]+".json")
		files = append(files, filename)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			bundle, err := buildBundle(sess, p)
			if err != nil {
				return err
			}
			logger.Debug().Str("path", p).Str("file", filename).Msg("Writing bundle")
			return fileutil.WriteJSON(filename, bundle)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func buildBundle(sess *session.Session, path string) (Bundle, error) {
	b := Bundle{Path: path}
	var err error
	if b.Node, err = sess.NodeInfo(path); err != nil {
		return b, err
	}
	if b.Strategy, err = sess.StrategyInfo(path); err != nil {
		return b, err
	}
	if b.HandMatrix, err = sess.HandMatrix(path); err != nil {
		return b, err
	}
	if b.EVAnalysis, err = sess.EVAnalysis(path); err != nil {
		return b, err
	}
	return b, nil
}

// slug turns a tree path into a file name: "/childrens/BET 5" becomes
// "childrens_bet-5" and the root becomes "root".
func slug(path string) string {
	segments := tree.SplitPath(path)
	if len(segments) == 0 {
		return "root"
	}
	for i, seg := range segments {
		segments[i] = strings.Trim(strings.Map(func(r rune) rune {
			switch {
			case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
				return unicode.ToLower(r)
			default:
				return '-'
			}
		}, seg), "-")
	}
	return strings.Join(segments, "_")
}

// slugs returns a unique slug per path, suffixing repeats with a counter.
func slugs(paths []string) []string {
	seen := make(map[string]int, len(paths))
	out := make([]string, len(paths))
	for i, p := range paths {
		s := slug(p)
		seen[s]++
		if n := seen[s]; n > 1 {
			s = fmt.Sprintf("%s-%d", s, n)
		}
		out[i] = s
	}
	return out
}
