package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"SalesDashboard/app/services"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func dial(t *testing.T) (*Hub, *websocket.Conn) {
	t.Helper()

	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(hub)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		conn.Close()
		cancel()
		srv.Close()
	})
	return hub, conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var m Message
	if err := conn.ReadJSON(&m); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestConnectedGreeting(t *testing.T) {
	hub, conn := dial(t)

	m := read(t, conn)
	if m.Type != TypeConnected || m.ClientID == "" {
		t.Fatalf("greeting = %+v", m)
	}
	if hub.ClientCount() != 1 {
		t.Errorf("clients = %d", hub.ClientCount())
	}

	clients := hub.Clients()
	if len(clients) != 1 || clients[0].ID != m.ClientID || clients[0].ConnectedAt.IsZero() {
		t.Errorf("clients = %+v", clients)
	}
}

func TestNotifyBroadcastsOutcomeAndChange(t *testing.T) {
	hub, conn := dial(t)
	read(t, conn)

	hub.Notify(services.Success("employee", services.ActionCreated, 3, "Employee added successfully"))

	m := read(t, conn)
	if m.Type != TypeNotification {
		t.Fatalf("type = %s", m.Type)
	}
	var o services.Outcome
	if err := json.Unmarshal(m.Data, &o); err != nil {
		t.Fatal(err)
	}
	if o.Type != services.OutcomeSuccess || o.Message != "Employee added successfully" {
		t.Errorf("outcome = %+v", o)
	}

	m = read(t, conn)
	if m.Type != TypeCollectionChanged {
		t.Fatalf("type = %s", m.Type)
	}
	var change CollectionChange
	if err := json.Unmarshal(m.Data, &change); err != nil {
		t.Fatal(err)
	}
	if change != (CollectionChange{Entity: "employee", ID: 3, Action: "created"}) {
		t.Errorf("change = %+v", change)
	}
}

func TestErrorOutcomeHasNoChange(t *testing.T) {
	hub, conn := dial(t)
	read(t, conn)

	hub.Notify(services.Outcome{Type: services.OutcomeError, Message: "Sale is required", Entity: "reconciliation"})
	hub.Notify(services.Outcome{Type: services.OutcomeSuccess, Message: "second"})

	first := read(t, conn)
	second := read(t, conn)
	if first.Type != TypeNotification || second.Type != TypeNotification {
		t.Errorf("an error outcome must not announce a change: %s, %s", first.Type, second.Type)
	}
}

func TestHeartbeatReply(t *testing.T) {
	_, conn := dial(t)
	greeting := read(t, conn)

	if err := conn.WriteJSON(Message{Type: TypeHeartbeat}); err != nil {
		t.Fatal(err)
	}
	m := read(t, conn)
	if m.Type != TypeHeartbeat || m.ClientID != greeting.ClientID {
		t.Errorf("reply = %+v", m)
	}
}

func TestBroadcastWithoutLoopDoesNotBlock(t *testing.T) {
	hub := NewHub(zap.NewNop())
	done := make(chan struct{})
	go func() {
		for i := 0; i < sendBuffer+10; i++ {
			hub.Notify(services.Outcome{Type: services.OutcomeError, Message: "x"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Notify blocked with no hub loop running")
	}
}
