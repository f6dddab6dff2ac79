package bridge

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

func TestStatusFeed(t *testing.T) {
	feed := NewStatusFeed()
	feed.Broadcast(&HatStatus{Seq: 1})
	srv := httptest.NewServer(feed.Handler())
	defer srv.Close()

	conn, err := websocket.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), "", srv.URL)
	require.NoError(t, err)
	defer conn.Close()

	var got HatStatus
	require.NoError(t, websocket.JSON.Receive(conn, &got))
	require.Equal(t, uint64(1), got.Seq)

	require.Eventually(t, func() bool { return feed.Clients() == 1 }, time.Second, time.Millisecond)
	feed.Broadcast(&HatStatus{Joystick: true, JoyX: 50, Seq: 2})
	require.NoError(t, websocket.JSON.Receive(conn, &got))
	require.Equal(t, HatStatus{Joystick: true, JoyX: 50, Seq: 2}, got)

	conn.Close()
	require.Eventually(t, func() bool { return feed.Clients() == 0 }, time.Second, time.Millisecond)
}
