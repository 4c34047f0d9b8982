package session

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/lox/solverview/internal/report"
	"github.com/lox/solverview/internal/tree"
)

// Session is one uploaded tree and its path cache. The tree never changes
// after load, so cached resolutions never go stale.
type Session struct {
	ID        string
	Filename  string
	CreatedAt time.Time

	tree         *tree.Tree
	lastAccessed atomic.Int64

	mu    sync.RWMutex
	cache map[string]tree.NodeID
	group singleflight.Group
}

func newSession(id, filename string, t *tree.Tree, now time.Time) *Session {
	s := &Session{
		ID:        id,
		Filename:  filename,
		CreatedAt: now,
		tree:      t,
		cache:     make(map[string]tree.NodeID),
	}
	s.touch(now)
	return s
}

func (s *Session) touch(now time.Time) {
	s.lastAccessed.Store(now.UnixNano())
}

// LastAccessed returns when the session was last fetched from its store.
func (s *Session) LastAccessed() time.Time {
	return time.Unix(0, s.lastAccessed.Load()).UTC()
}

// Summary returns the session's listing metadata.
func (s *Session) Summary() Summary {
	return Summary{
		ID:           s.ID,
		Filename:     s.Filename,
		CreatedAt:    s.CreatedAt,
		LastAccessed: s.LastAccessed(),
		Nodes:        s.tree.Len(),
	}
}

// Tree returns the session's game tree.
func (s *Session) Tree() *tree.Tree {
	return s.tree
}

// Resolve resolves path, memoising the result by the verbatim path string.
// Concurrent lookups of the same cold path resolve once. Failures are not
// cached.
func (s *Session) Resolve(path string) (tree.NodeID, error) {
	s.mu.RLock()
	id, ok := s.cache[path]
	s.mu.RUnlock()
	if ok {
		return id, nil
	}

	v, err, _ := s.group.Do(path, func() (any, error) {
		id, err := tree.Resolve(s.tree, path)
		if err != nil {
			return id, err
		}
		s.mu.Lock()
		s.cache[path] = id
		s.mu.Unlock()
		return id, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(tree.NodeID), nil
}

// CachedPaths returns the number of memoised paths.
func (s *Session) CachedPaths() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

// GameInfo summarises the whole tree.
func (s *Session) GameInfo() report.GameInfo {
	return report.DescribeGame(s.tree)
}

// TreeStructure returns the navigation outline.
func (s *Session) TreeStructure() report.OutlineEntry {
	return report.Outline(s.tree)
}

// NodeInfo describes the node at path.
func (s *Session) NodeInfo(path string) (report.NodeInfo, error) {
	id, err := s.Resolve(path)
	if err != nil {
		return report.NodeInfo{}, err
	}
	return report.DescribeNode(s.tree, id, path), nil
}

// StrategyInfo summarises the strategy at path.
func (s *Session) StrategyInfo(path string) (report.StrategyInfo, error) {
	id, err := s.Resolve(path)
	if err != nil {
		return report.StrategyInfo{}, err
	}
	return report.DescribeStrategy(s.tree, id), nil
}

// HandMatrix builds the hand matrix at path.
func (s *Session) HandMatrix(path string) (report.HandMatrix, error) {
	id, err := s.Resolve(path)
	if err != nil {
		return report.HandMatrix{}, err
	}
	return report.Matrix(s.tree, id), nil
}

// EVAnalysis builds the EV tips at path.
func (s *Session) EVAnalysis(path string) (report.EVAnalysis, error) {
	id, err := s.Resolve(path)
	if err != nil {
		return report.EVAnalysis{}, err
	}
	return report.AnalyzeEV(s.tree, id), nil
}

// HandDetails breaks down a hand class at path.
func (s *Session) HandDetails(path, hand string) (report.HandDetails, error) {
	id, err := s.Resolve(path)
	if err != nil {
		return report.HandDetails{}, err
	}
	return report.DescribeHand(s.tree, id, hand)
}
