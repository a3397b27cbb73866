package agent

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"reversi/game"
	"reversi/searcher"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func postFindMove(t *testing.T, url, body string) (*http.Response, findMoveResponse) {
	t.Helper()
	resp, err := http.Post(url+"/findmove", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out findMoveResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestServer(t *testing.T) {
	srv := httptest.NewServer(NewServer(searcher.WithMaxDepth(4)).Handler())
	defer srv.Close()

	t.Run("ping", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/ping")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("find move", func(t *testing.T) {
		b := game.NewBoard()
		body := fmt.Sprintf(`{"player":"%#x","opponent":"%#x","budget_ms":100}`, b.Player, b.Opponent)
		resp, out := postFindMove(t, srv.URL, body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		move, err := game.ParseMove(out.Move)
		require.NoError(t, err)
		require.Contains(t, b.Moves(true), move)
		require.Positive(t, out.Nodes)
	})

	t.Run("pass", func(t *testing.T) {
		body := fmt.Sprintf(`{"player":"%#x","opponent":"%#x"}`, uint64(game.Pos(1, 0)), uint64(game.Pos(0, 0)))
		resp, out := postFindMove(t, srv.URL, body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "PASS", out.Move)
	})

	t.Run("bad requests", func(t *testing.T) {
		for _, body := range []string{
			`not json`,
			`{"player":"0xzz","opponent":"0x0"}`,
			`{"player":"0x1","opponent":"0x3"}`,
		} {
			resp, _ := postFindMove(t, srv.URL, body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		}
	})
}

func TestServerProgressStream(t *testing.T) {
	srv := httptest.NewServer(NewServer(searcher.WithMaxDepth(3)).Handler())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() wsMessage {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var msg wsMessage
		require.NoError(t, conn.ReadJSON(&msg))
		return msg
	}
	require.Equal(t, "hello", read().Type)

	b := game.NewBoard()
	body := fmt.Sprintf(`{"player":"%#x","opponent":"%#x","budget_ms":500}`, b.Player, b.Opponent)
	resp, out := postFindMove(t, srv.URL, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	progress := 0
	for {
		msg := read()
		if msg.Type == "decision" {
			var decision decisionPayload
			require.NoError(t, json.Unmarshal(msg.Payload, &decision))
			require.Equal(t, out.Move, decision.Move)
			break
		}
		require.Equal(t, "progress", msg.Type)
		var p progressPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &p))
		require.GreaterOrEqual(t, p.Depth, 1)
		progress++
	}
	// four root moves, three depths each
	require.Equal(t, 12, progress)
}
