package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/solverview/internal/report"
	"github.com/lox/solverview/internal/session"
	"github.com/lox/solverview/internal/sessionid"
	"github.com/lox/solverview/internal/treetest"
)

func TestServerHealth(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t, nil)

	w := serve(srv.Handler(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestUpload(t *testing.T) {
	t.Parallel()

	t.Run("valid tree", func(t *testing.T) {
		srv, store := newTestServer(t, nil)
		w := serve(srv.Handler(), uploadRequest(t, "../flop tree.json", []byte(treetest.Sample)))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[UploadResponse](t, w)
		assert.NoError(t, sessionid.Validate(resp.SessionID))
		assert.Equal(t, "flop_tree.json", resp.Filename)
		assert.Equal(t, report.OutOfPosition, resp.GameInfo.Position)
		assert.Equal(t, treetest.SampleDecisionPoints, resp.GameInfo.DecisionPoints)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("no file part", func(t *testing.T) {
		srv, _ := newTestServer(t, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("file=x"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		w := serve(srv.Handler(), req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No file part", decode[ErrorResponse](t, w).Error)
	})

	t.Run("empty filename", func(t *testing.T) {
		srv, store := newTestServer(t, nil)
		w := serve(srv.Handler(), uploadRequest(t, "", []byte(treetest.Sample)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, store.Len())
	})

	t.Run("invalid tree", func(t *testing.T) {
		srv, store := newTestServer(t, nil)
		w := serve(srv.Handler(), uploadRequest(t, "broken.json", []byte(`{"childrens": [1, 2]}`)))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, decode[ErrorResponse](t, w).Error, "invalid game tree")
		assert.Zero(t, store.Len())
	})

	t.Run("too large", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Server.MaxUploadMB = 1
		srv, store := newTestServer(t, cfg)

		big := bytes.Repeat([]byte(" "), 2<<20)
		w := serve(srv.Handler(), uploadRequest(t, "big.json", big))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Zero(t, store.Len())
	})
}

func TestViews(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t, nil)
	h := srv.Handler()
	id := uploadSample(t, h)

	get := func(route string, params url.Values) *httptest.ResponseRecorder {
		target := route + "/" + id
		if params != nil {
			target += "?" + params.Encode()
		}
		return serve(h, httptest.NewRequest(http.MethodGet, target, nil))
	}

	t.Run("tree", func(t *testing.T) {
		w := get("/api/tree", nil)
		require.Equal(t, http.StatusOK, w.Code)
		outline := decode[report.OutlineEntry](t, w)
		assert.Len(t, outline.Children, 2)
	})

	t.Run("game", func(t *testing.T) {
		w := get("/api/game", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "A♥ K♦ 7♠", decode[report.GameInfo](t, w).Board)
	})

	t.Run("node", func(t *testing.T) {
		w := get("/api/node", url.Values{"path": {"/childrens/CHECK/childrens/CHECK"}})
		require.Equal(t, http.StatusOK, w.Code)
		m := decode[map[string]any](t, w)
		assert.Equal(t, "chance_node", m["node_type"])
		assert.NotContains(t, m, "player")
	})

	t.Run("node without path is the root", func(t *testing.T) {
		w := get("/api/node", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "", decode[report.NodeInfo](t, w).Path)
	})

	t.Run("strategy", func(t *testing.T) {
		w := get("/api/strategy", url.Values{"path": {""}})
		require.Equal(t, http.StatusOK, w.Code)
		info := decode[report.StrategyInfo](t, w)
		require.True(t, info.HasStrategy)
		assert.Equal(t, 5, info.HandComposition.Total)
	})

	t.Run("strategy missing", func(t *testing.T) {
		w := get("/api/strategy", url.Values{"path": {"/childrens/BET 5"}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"has_strategy": false}`, w.Body.String())
	})

	t.Run("hand matrix", func(t *testing.T) {
		w := get("/api/hand_matrix", nil)
		require.Equal(t, http.StatusOK, w.Code)
		m := decode[report.HandMatrix](t, w)
		require.True(t, m.HasStrategy)
		assert.Equal(t, "BET 5", m.At(1, 0).Action)
	})

	t.Run("ev analysis", func(t *testing.T) {
		w := get("/api/ev_analysis", nil)
		require.Equal(t, http.StatusOK, w.Code)
		ev := decode[report.EVAnalysis](t, w)
		assert.Equal(t, "Most frequent action: CHECK (58.0%)", ev.Tips[0])
	})

	t.Run("hand details", func(t *testing.T) {
		w := get("/api/hand_details", url.Values{"hand": {"AA"}})
		require.Equal(t, http.StatusOK, w.Code)
		d := decode[report.HandDetails](t, w)
		assert.Equal(t, 6, d.ExpectedCombos)
		assert.Equal(t, 1, d.ActualCombos)
		assert.False(t, d.Complete)
	})

	t.Run("invalid hand", func(t *testing.T) {
		w := get("/api/hand_details", url.Values{"hand": {"AKx"}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode[ErrorResponse](t, w).Error, "invalid hand format")
	})

	t.Run("node not found", func(t *testing.T) {
		for _, route := range []string{"/api/node", "/api/strategy", "/api/hand_matrix", "/api/ev_analysis", "/api/hand_details"} {
			w := get(route, url.Values{"path": {"/childrens/RAISE"}, "hand": {"AA"}})
			assert.Equal(t, http.StatusNotFound, w.Code, route)
			assert.Contains(t, decode[ErrorResponse](t, w).Error, "node not found", route)
		}
	})
}

func TestUnknownSession(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t, nil)
	h := srv.Handler()

	for _, route := range []string{"/api/tree/nope", "/api/node/nope", "/api/hand_matrix/nope", "/api/ws/nope"} {
		w := serve(h, httptest.NewRequest(http.MethodGet, route, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, route)
		assert.Equal(t, "Session not found", decode[ErrorResponse](t, w).Error, route)
	}
}

func TestDeleteSession(t *testing.T) {
	t.Parallel()
	srv, store := newTestServer(t, nil)
	h := srv.Handler()
	id := uploadSample(t, h)

	w := serve(h, httptest.NewRequest(http.MethodDelete, "/api/session/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", decode[StatusResponse](t, w).Status)
	assert.Zero(t, store.Len())

	w = serve(h, httptest.NewRequest(http.MethodDelete, "/api/session/"+id, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(h, httptest.NewRequest(http.MethodGet, "/api/node/"+id, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSessions(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t, nil)
	h := srv.Handler()

	w := serve(h, httptest.NewRequest(http.MethodGet, "/api/sessions", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]session.Summary](t, w))

	id := uploadSample(t, h)
	w = serve(h, httptest.NewRequest(http.MethodGet, "/api/sessions", nil))
	list := decode[[]session.Summary](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, "flop.json", list[0].Filename)
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t, nil)

	w := serve(srv.Handler(), httptest.NewRequest(http.MethodGet, "/api/upload", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCORS(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.Server.AllowedOrigins = []string{"https://viewer.example"}
	srv, _ := newTestServer(t, cfg)
	h := srv.Handler()

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/upload", nil)
		req.Header.Set("Origin", "https://viewer.example")
		w := serve(h, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://viewer.example", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disallowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
		req.Header.Set("Origin", "https://elsewhere.example")
		w := serve(h, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no origin", func(t *testing.T) {
		w := serve(h, httptest.NewRequest(http.MethodGet, "/api/sessions", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestCleanFilename(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"flop.json", "flop.json"},
		{"my tree.json", "my_tree.json"},
		{"../../etc/passwd", "passwd"},
		{`C:\trees\turn.json`, "turn.json"},
		{".hidden", "hidden"},
		{"", ""},
		{"/", ""},
		{"ünïcode.json", "ncode.json"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanFilename(tt.in), tt.in)
	}
}
