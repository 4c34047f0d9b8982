package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lox/solverview/internal/session"
	"github.com/lox/solverview/internal/treetest"
)

// testLogger creates a logger that discards output for tests
func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard).Level(zerolog.Disabled)
}

func newTestServer(t *testing.T, cfg *Config) (*Server, *session.Store) {
	t.Helper()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	store := session.NewStore(testLogger())
	return NewServer(store, cfg, testLogger()), store
}

// uploadRequest builds a multipart upload of content under filename.
func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// uploadSample uploads the sample tree and returns its session ID.
func uploadSample(t *testing.T, h http.Handler) string {
	t.Helper()
	w := serve(h, uploadRequest(t, "flop.json", []byte(treetest.Sample)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[UploadResponse](t, w).SessionID
}
