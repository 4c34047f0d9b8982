package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/lox/solverview/internal/hands"
	"github.com/lox/solverview/internal/session"
	"github.com/lox/solverview/internal/tree"
)

// ErrUnknownOp is returned for websocket requests naming no known view.
var ErrUnknownOp = errors.New("unknown op")

// query computes one view of a session.
func query(sess *session.Session, op Op, path, hand string) (any, error) {
	switch op {
	case OpGame:
		return sess.GameInfo(), nil
	case OpTree:
		return sess.TreeStructure(), nil
	case OpNode:
		return sess.NodeInfo(path)
	case OpStrategy:
		return sess.StrategyInfo(path)
	case OpHandMatrix:
		return sess.HandMatrix(path)
	case OpEVAnalysis:
		return sess.EVAnalysis(path)
	case OpHandDetails:
		return sess.HandDetails(path, hand)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
}

// statusFor maps an error to the HTTP status reported for it.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, tree.ErrNodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, hands.ErrInvalidHandFormat), errors.Is(err, ErrUnknownOp):
		return http.StatusBadRequest
	case errors.Is(err, tree.ErrParse):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage is the client-facing text for an error.
func errorMessage(err error) string {
	if errors.Is(err, session.ErrSessionNotFound) {
		return "Session not found"
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) // Ignore write errors, the client has gone
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), ErrorResponse{Error: errorMessage(err)})
}
