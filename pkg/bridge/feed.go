package bridge

import (
	"net/http"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"
)

// StatusFeed streams HatStatus as JSON to WebSocket clients.
type StatusFeed struct {
	lock    sync.Mutex
	clients map[*websocket.Conn]chan *HatStatus
	last    *HatStatus
}

// feedBacklog is the number of statuses buffered per client. A client
// that falls further behind misses statuses.
const feedBacklog = 8

// NewStatusFeed creates a StatusFeed.
func NewStatusFeed() *StatusFeed {
	return &StatusFeed{clients: make(map[*websocket.Conn]chan *HatStatus)}
}

// Handler returns the http.Handler accepting WebSocket clients.
func (f *StatusFeed) Handler() http.Handler {
	return websocket.Handler(f.serve)
}

// Clients returns the number of connected clients.
func (f *StatusFeed) Clients() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.clients)
}

// Broadcast sends the status to every client.
func (f *StatusFeed) Broadcast(s *HatStatus) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.last = s
	for _, ch := range f.clients {
		select {
		case ch <- s:
		default:
		}
	}
}

func (f *StatusFeed) serve(conn *websocket.Conn) {
	ch := make(chan *HatStatus, feedBacklog)
	f.lock.Lock()
	f.clients[conn] = ch
	if f.last != nil {
		ch <- f.last
	}
	f.lock.Unlock()
	glog.V(1).Infof("feed client %s connected", conn.Request().RemoteAddr)

	defer func() {
		f.lock.Lock()
		delete(f.clients, conn)
		f.lock.Unlock()
		conn.Close()
		glog.V(1).Infof("feed client %s disconnected", conn.Request().RemoteAddr)
	}()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		var discard []byte
		for websocket.Message.Receive(conn, &discard) == nil {
		}
	}()
	for {
		select {
		case s := <-ch:
			if err := websocket.JSON.Send(conn, s); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
