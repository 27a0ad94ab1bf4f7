package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	gorillawebsocket "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestHub() *Hub {
	return NewHub(zerolog.Nop())
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := newTestHub()
	client := NewClient(SessionTopic("s1"), nil)

	hub.Register(client)
	if hub.ClientCount() != 1 || hub.TopicCount(SessionTopic("s1")) != 1 {
		t.Fatalf("expected 1 client on s1, got %d/%d", hub.ClientCount(), hub.TopicCount(SessionTopic("s1")))
	}

	hub.Unregister(client)
	if hub.ClientCount() != 0 {
		t.Fatalf("expected 0 clients, got %d", hub.ClientCount())
	}
	if _, ok := <-client.Send; ok {
		t.Error("expected send channel to be closed")
	}

	// A second unregister must not panic on the closed channel.
	hub.Unregister(client)
}

func TestHub_PublishOnlyReachesSession(t *testing.T) {
	hub := newTestHub()
	mine := NewClient(SessionTopic("s1"), nil)
	other := NewClient(SessionTopic("s2"), nil)
	hub.Register(mine)
	hub.Register(other)

	hub.Publish("s1", "triage.state", map[string]string{"state": "submitting"})

	select {
	case raw := <-mine.Send:
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if ev.Type != "triage.state" || ev.Topic != "session:s1" {
			t.Errorf("unexpected event: %+v", ev)
		}
		if !strings.Contains(string(ev.Data), "submitting") {
			t.Errorf("expected payload in data, got %s", ev.Data)
		}
	default:
		t.Fatal("expected event for s1")
	}

	select {
	case <-other.Send:
		t.Error("s2 must not receive s1 events")
	default:
	}
}

func TestHub_FullQueueDropsEvent(t *testing.T) {
	hub := newTestHub()
	client := &Client{ID: "slow", Topic: SessionTopic("s1"), Send: make(chan []byte, 1)}
	hub.Register(client)

	hub.Publish("s1", "a", nil)
	hub.Publish("s1", "b", nil)

	if len(client.Send) != 1 {
		t.Errorf("expected 1 queued event, got %d", len(client.Send))
	}
}

func TestHub_CloseSession(t *testing.T) {
	hub := newTestHub()
	a := NewClient(SessionTopic("s1"), nil)
	b := NewClient(SessionTopic("s1"), nil)
	hub.Register(a)
	hub.Register(b)

	hub.CloseSession("s1")
	if hub.TopicCount(SessionTopic("s1")) != 0 {
		t.Error("expected topic to be emptied")
	}
	for _, c := range []*Client{a, b} {
		if _, ok := <-c.Send; ok {
			t.Error("expected send channel to be closed")
		}
		hub.Unregister(c)
	}
}

func TestHub_ConcurrentPublish(t *testing.T) {
	hub := newTestHub()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c := NewClient(SessionTopic("s1"), nil)
			hub.Register(c)
			hub.Unregister(c)
		}()
		go func() {
			defer wg.Done()
			hub.Publish("s1", "vitals.logged", 1)
		}()
	}
	wg.Wait()
	if hub.ClientCount() != 0 {
		t.Errorf("expected 0 clients, got %d", hub.ClientCount())
	}
}

func TestHandler_RejectsUnknownSession(t *testing.T) {
	hub := newTestHub()
	h := NewHandler(hub, func(context.Context, string) bool { return false }, nil)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/ws?session=nope", nil)
	rec := httptest.NewRecorder()
	err := h.HandleConnect(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestHandler_FullUpgrade(t *testing.T) {
	hub := newTestHub()
	h := NewHandler(hub, func(_ context.Context, id string) bool { return id == "s1" }, nil)
	e := echo.New()
	h.RegisterRoutes(e)

	server := httptest.NewServer(e)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?session=s1"
	conn, resp, err := gorillawebsocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}

	deadline := time.Now().Add(time.Second)
	for hub.TopicCount(SessionTopic("s1")) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	hub.Publish("s1", "alert.raised", map[string]string{"id": "a1"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Type != "alert.raised" {
		t.Errorf("expected alert.raised, got %s", got.Type)
	}
}
