package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func httpHandler(hub *ReloadHub) http.Handler {
	return http.HandlerFunc(hub.HandleWebSocket)
}

func dialReload(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *ReloadHub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", hub.ClientCount(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestReloadBroadcast(t *testing.T) {
	hub := NewReloadHub()
	ts := httptest.NewServer(httpHandler(hub))
	defer ts.Close()
	defer hub.Close()

	conn := dialReload(t, ts)
	waitForClients(t, hub, 1)

	hub.NotifyReload()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var ev ReloadEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != ReloadKindFull {
		t.Errorf("kind = %q, want %q", ev.Kind, ReloadKindFull)
	}
}

func TestReloadCSSAndErrorEvents(t *testing.T) {
	hub := NewReloadHub()
	ts := httptest.NewServer(httpHandler(hub))
	defer ts.Close()
	defer hub.Close()

	conn := dialReload(t, ts)
	waitForClients(t, hub, 1)

	hub.NotifyCSS("app.css")
	hub.NotifyError("syntax error in app/main.go")
	hub.ClearError()

	want := []ReloadEvent{
		{Kind: ReloadKindCSS, File: "app.css"},
		{Kind: ReloadKindError, Detail: "syntax error in app/main.go"},
		{Kind: ReloadKindClear},
	}
	for i, w := range want {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatal(err)
		}
		var ev ReloadEvent
		json.Unmarshal(data, &ev)
		if ev != w {
			t.Errorf("event %d = %+v, want %+v", i, ev, w)
		}
	}
}

func TestReloadClientCountTracksDisconnects(t *testing.T) {
	hub := NewReloadHub()
	ts := httptest.NewServer(httpHandler(hub))
	defer ts.Close()
	defer hub.Close()

	a := dialReload(t, ts)
	dialReload(t, ts)
	waitForClients(t, hub, 2)

	a.Close()
	waitForClients(t, hub, 1)
}

func TestReloadCloseDropsAllClients(t *testing.T) {
	hub := NewReloadHub()
	ts := httptest.NewServer(httpHandler(hub))
	defer ts.Close()

	dialReload(t, ts)
	dialReload(t, ts)
	waitForClients(t, hub, 2)

	hub.Close()
	if hub.ClientCount() != 0 {
		t.Errorf("client count = %d after close", hub.ClientCount())
	}
}

func TestReloadClientScriptTargetsReloadPath(t *testing.T) {
	if !strings.Contains(ReloadClientScript, ReloadPath) {
		t.Error("client script must connect to the reload endpoint")
	}
	if !strings.Contains(ReloadClientScript, "location.reload()") {
		t.Error("client script must reload the page on a reload event")
	}
}

func TestInjectReloadScript(t *testing.T) {
	page := []byte("<html><body>app</body></html>")
	out := string(injectReloadScript(page))
	if !strings.Contains(out, ReloadClientScript) {
		t.Fatal("script not injected")
	}
	if !strings.HasSuffix(out, "</body></html>") {
		t.Errorf("script must land before the closing body tag, got %q", out[len(out)-40:])
	}

	// A shell without a body tag still gets the script appended.
	out = string(injectReloadScript([]byte("<html>bare</html>")))
	if !strings.HasSuffix(out, ReloadClientScript) {
		t.Error("script must be appended when no body tag exists")
	}
}
