package server

import (
	"encoding/json"

	"github.com/lox/solverview/internal/report"
)

// Op names a view that can be requested over the websocket channel.
type Op string

const (
	OpGame        Op = "game"
	OpTree        Op = "tree"
	OpNode        Op = "node"
	OpStrategy    Op = "strategy"
	OpHandMatrix  Op = "hand_matrix"
	OpEVAnalysis  Op = "ev_analysis"
	OpHandDetails Op = "hand_details"
)

// Request is a client message on the websocket channel. ID is echoed back
// so clients can match replies.
type Request struct {
	ID   string `json:"id"`
	Op   Op     `json:"op"`
	Path string `json:"path,omitempty"`
	Hand string `json:"hand,omitempty"`
}

// Response answers one Request with either Data or Error.
type Response struct {
	ID     string          `json:"id"`
	Op     Op              `json:"op"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
	Status int             `json:"status,omitempty"`
}

// ErrorResponse is the body of every failed HTTP request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UploadResponse is the body of a successful upload.
type UploadResponse struct {
	SessionID string          `json:"session_id"`
	Filename  string          `json:"filename"`
	GameInfo  report.GameInfo `json:"game_info"`
}

// StatusResponse acknowledges a request with no other result.
type StatusResponse struct {
	Status string `json:"status"`
}
