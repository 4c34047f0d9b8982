// Package session keeps parsed solver trees in memory, one per upload, and
// answers view requests against them.
package session

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/solverview/internal/sessionid"
	"github.com/lox/solverview/internal/tree"
)

// ErrSessionNotFound is returned for IDs that were never issued or have
// been deleted.
var ErrSessionNotFound = errors.New("session not found")

// Summary holds lightweight metadata for listing sessions.
type Summary struct {
	ID           string    `json:"session_id"`
	Filename     string    `json:"filename"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessed time.Time `json:"last_accessed"`
	Nodes        int       `json:"nodes"`
}

// Store tracks live sessions. Sessions stay until deleted.
type Store struct {
	logger    zerolog.Logger
	clock     quartz.Clock
	ids       *sessionid.Generator
	parseOpts []tree.Option

	mu       sync.RWMutex
	sessions map[string]*Session
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the clock used for session timestamps.
func WithClock(clock quartz.Clock) StoreOption {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithIDGenerator sets the session ID generator.
func WithIDGenerator(g *sessionid.Generator) StoreOption {
	return func(s *Store) {
		s.ids = g
	}
}

// WithParseOptions sets the options every upload is parsed with.
func WithParseOptions(opts ...tree.Option) StoreOption {
	return func(s *Store) {
		s.parseOpts = opts
	}
}

// NewStore constructs an empty store.
func NewStore(logger zerolog.Logger, opts ...StoreOption) *Store {
	s := &Store{
		logger:   logger.With().Str("component", "session_store").Logger(),
		clock:    quartz.NewReal(),
		ids:      sessionid.NewGenerator(nil),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load parses data as a game tree and registers a new session for it. Parse
// failures are returned as *tree.ParseError and register nothing.
func (s *Store) Load(filename string, data []byte) (*Session, error) {
	start := s.clock.Now()
	t, err := tree.Parse(data, s.parseOpts...)
	if err != nil {
		s.logger.Warn().Err(err).Str("filename", filename).Int("bytes", len(data)).Msg("Rejected game tree")
		return nil, err
	}

	id, err := s.ids.Generate()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	sess := newSession(id, filename, t, now)

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.logger.Info().
		Str("session_id", id).
		Str("filename", filename).
		Int("bytes", len(data)).
		Int("nodes", t.Len()).
		Dur("parse_time", now.Sub(start)).
		Msg("Loaded game tree")
	return sess, nil
}

// Get returns a live session and marks it accessed.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.touch(s.clock.Now())
	return sess, nil
}

// Delete removes a session. Deleting an absent session returns
// ErrSessionNotFound.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.logger.Info().Str("session_id", id).Msg("Deleted session")
	return nil
}

// List returns a snapshot of live sessions, oldest first.
func (s *Store) List() []Summary {
	s.mu.RLock()
	summaries := make([]Summary, 0, len(s.sessions))
	for _, sess := range s.sessions {
		summaries = append(summaries, sess.Summary())
	}
	s.mu.RUnlock()

	slices.SortFunc(summaries, func(a, b Summary) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return summaries
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
