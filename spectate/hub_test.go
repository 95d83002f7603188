package spectate

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/milk9111/bossfight/event"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) event.Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var e event.Event
	if err := json.Unmarshal(payload, &e); err != nil {
		t.Fatalf("decode %s: %v", payload, err)
	}
	return e
}

func waitSpectators(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Spectators() != n {
		if time.Now().After(deadline) {
			t.Fatalf("spectators = %d, want %d", h.Spectators(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubSendsBacklogThenLiveEvents(t *testing.T) {
	hub := NewHub(HubConfig{Backlog: 2})
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)
	t.Cleanup(hub.Close)

	hub.Publish(event.Event{Type: event.TypeStateEntered, Tick: 1, Actor: event.ActorBoss, State: "Idle"})
	hub.Publish(event.Event{Type: event.TypeStateEntered, Tick: 2, Actor: event.ActorBoss, State: "Chase"})
	hub.Publish(event.Event{Type: event.TypeStateEntered, Tick: 3, Actor: event.ActorBoss, State: "ChooseAttack"})

	conn := dial(t, srv)
	waitSpectators(t, hub, 1)

	if e := readEvent(t, conn); e.Tick != 2 || e.State != "Chase" {
		t.Fatalf("first backlog event = %+v", e)
	}
	if e := readEvent(t, conn); e.Tick != 3 {
		t.Fatalf("second backlog event = %+v", e)
	}

	hub.Publish(event.Event{Type: event.TypeDamaged, Tick: 4, Actor: event.ActorPlayer, Amount: 20, Health: 80})
	e := readEvent(t, conn)
	if e.Type != event.TypeDamaged || e.Amount != 20 || e.Health != 80 {
		t.Fatalf("live event = %+v", e)
	}
}

func TestHubFansOutAndForgetsClosedClients(t *testing.T) {
	hub := NewHub(HubConfig{})
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)
	t.Cleanup(hub.Close)

	a := dial(t, srv)
	b := dial(t, srv)
	waitSpectators(t, hub, 2)

	hub.Publish(event.Event{Type: event.TypeDied, Tick: 9, Actor: event.ActorBoss})
	for _, conn := range []*websocket.Conn{a, b} {
		if e := readEvent(t, conn); e.Type != event.TypeDied {
			t.Fatalf("event = %+v", e)
		}
	}

	a.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	a.Close()
	waitSpectators(t, hub, 1)
}

func TestHubCloseDisconnects(t *testing.T) {
	hub := NewHub(DefaultHubConfig())
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	conn := dial(t, srv)
	waitSpectators(t, hub, 1)
	hub.Close()
	hub.Publish(event.Event{Type: event.TypeDied})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("expected a normal close, got %v", err)
	}
	if hub.Spectators() != 0 {
		t.Fatalf("spectators remain after Close")
	}
}
