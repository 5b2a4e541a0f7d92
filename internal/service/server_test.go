package service

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/handscribe/internal/history"
)

const batchJSON = `{
  "4175113892": {
    "key": "4175113892",
    "currency": "USD",
    "blinds": {"small": 2.5, "big": 5},
    "numSeats": 2,
    "name": "IGNC",
    "table": "25045659",
    "rounds": [{"round": "PREFLOP", "time": 1632318796000}],
    "seats": [
      {
        "index": 1, "account": "hero", "stack": 97.5, "potContributions": 2.5,
        "isDealer": true, "isSmallBlind": true,
        "actions": [
          {"type": "POST_BLIND", "amount": 2.5, "time": 1632318796000},
          {"type": "FOLD", "amount": 0, "time": 1632318798000}
        ]
      },
      {
        "index": 2, "account": "villain", "stack": 95,
        "isBigBlind": true, "mucked": true, "winnings": 2.5,
        "actions": [{"type": "POST_BLIND", "amount": 5, "time": 1632318796000}]
      }
    ]
  }
}`

func testServer() *Server {
	logger := log.New(io.Discard)
	return NewServer(":0", history.NewRenderer(logger), logger)
}

func TestHandleRender(t *testing.T) {
	ts := httptest.NewServer(testServer().Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/render", "application/json", strings.NewReader(batchJSON))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	require.Contains(t, text, "PokerStars Hand #4175113892: Hold'em No Limit (2.5/5 USD) - 2021/09/22 13:53:16 UTC")
	require.Contains(t, text, "hero: folds")
	require.Contains(t, text, "Total pot $2.5 | No Rake")
}

func TestHandleRenderRejectsBadJSON(t *testing.T) {
	ts := httptest.NewServer(testServer().Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/render", "application/json", strings.NewReader("{nope"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleRenderRejectsGet(t *testing.T) {
	ts := httptest.NewServer(testServer().Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/render")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHandleHealth(t *testing.T) {
	ts := httptest.NewServer(testServer().Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, "ok\n", string(body))
}
