package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/matrix-runner/internal/config"
	"github.com/vovakirdan/matrix-runner/internal/games/runner"
	"github.com/vovakirdan/matrix-runner/internal/storage"
)

// message is one decoded server frame.
type message struct {
	env  InEnvelope
	snap *runner.Snapshot
}

func startTestServer(t *testing.T, cfg ServerConfig, store *storage.Store) (*Server, string) {
	t.Helper()
	s := NewServer(cfg, config.DefaultRunnerConfig(), store, log.New(io.Discard))
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return s, srv.URL
}

func dialWS(t *testing.T, base string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(base, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	kind, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	if kind == websocket.BinaryMessage {
		var snap runner.Snapshot
		require.NoError(t, msgpack.Unmarshal(raw, &snap))
		return message{snap: &snap}
	}
	var env InEnvelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return message{env: env}
}

// readUntil reads frames until match returns true or too many arrive.
func readUntil(t *testing.T, conn *websocket.Conn, match func(message) bool) message {
	t.Helper()
	for i := 0; i < 2000; i++ {
		m := readMessage(t, conn)
		if match(m) {
			return m
		}
	}
	t.Fatal("expected message never arrived")
	return message{}
}

func phaseIs(want string) func(message) bool {
	return func(m message) bool {
		if m.env.T != MsgPhase {
			return false
		}
		var pm PhaseMsg
		return json.Unmarshal(m.env.D, &pm) == nil && pm.Phase == want
	}
}

func send(t *testing.T, conn *websocket.Conn, raw string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(raw)))
}

func TestServerSessionFlow(t *testing.T) {
	_, base := startTestServer(t, DefaultServerConfig(), nil)
	conn := dialWS(t, base)

	welcome := readMessage(t, conn)
	require.Equal(t, MsgWelcome, welcome.env.T)
	var w WelcomeMsg
	require.NoError(t, json.Unmarshal(welcome.env.D, &w))
	assert.Equal(t, 800.0, w.Width)
	assert.Equal(t, 60, w.FPS)

	send(t, conn, `{"t":"start"}`)
	readUntil(t, conn, phaseIs("running"))
	m := readUntil(t, conn, func(m message) bool { return m.snap != nil })
	assert.Equal(t, 800.0, m.snap.Width)

	send(t, conn, `{"t":"exit"}`)
	readUntil(t, conn, phaseIs("idle"))
}

func TestServerRejectsUnknownMessages(t *testing.T) {
	_, base := startTestServer(t, DefaultServerConfig(), nil)
	conn := dialWS(t, base)
	readMessage(t, conn) // welcome

	send(t, conn, `{"t":"jump"}`)
	m := readUntil(t, conn, func(m message) bool { return m.env.T == MsgError })
	var em ErrorMsg
	require.NoError(t, json.Unmarshal(m.env.D, &em))
	assert.Contains(t, em.Msg, "jump")

	send(t, conn, `not json`)
	m = readUntil(t, conn, func(m message) bool { return m.env.T == MsgError })
	require.NoError(t, json.Unmarshal(m.env.D, &em))
	assert.Equal(t, "malformed message", em.Msg)
}

func TestServerRateLimit(t *testing.T) {
	_, base := startTestServer(t, DefaultServerConfig(), nil)
	conn := dialWS(t, base)
	readMessage(t, conn)

	for i := 0; i <= maxMessagesPerSec; i++ {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"t":"tap"}`)); err != nil {
			break
		}
	}

	// The server drops the connection; reads fail before the deadline.
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			var ne interface{ Timeout() bool }
			if errors.As(err, &ne) {
				assert.False(t, ne.Timeout(), "connection was not closed")
			}
			return
		}
	}
}

func TestServerConnectionLimit(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.MaxConnections = 1
	s, base := startTestServer(t, cfg, nil)

	dialWS(t, base)
	require.Eventually(t, func() bool { return s.Active() == 1 }, 2*time.Second, 10*time.Millisecond)

	wsURL := "ws" + strings.TrimPrefix(base, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestServerHealthz(t *testing.T) {
	_, base := startTestServer(t, DefaultServerConfig(), nil)

	resp, err := http.Get(base + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok 0\n", string(body))
}

func TestServerRejectsForeignOrigin(t *testing.T) {
	_, base := startTestServer(t, DefaultServerConfig(), nil)

	wsURL := "ws" + strings.TrimPrefix(base, "http") + "/ws"
	hdr := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, hdr)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestServerPersistsRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, base := startTestServer(t, DefaultServerConfig(), store)
	conn := dialWS(t, base)
	readMessage(t, conn)

	// Without input the first obstacle ends the run.
	send(t, conn, `{"t":"start"}`)
	readUntil(t, conn, phaseIs("crashed"))

	runs, err := store.TopRuns(string(config.DifficultyNormal), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, string(config.DifficultyNormal), runs[0].Mode)
}
