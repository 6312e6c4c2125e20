package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ReloadPath is the websocket endpoint browsers connect to for
// live-reload notifications.
const ReloadPath = "/_loom/reload"

// writeWait bounds how long a broadcast waits on one slow client.
const writeWait = 5 * time.Second

// Event kinds understood by the reload client.
const (
	ReloadKindFull  = "reload"
	ReloadKindCSS   = "css"
	ReloadKindError = "error"
	ReloadKindClear = "clear"
)

// ReloadEvent is one live-reload notification on the wire. Kind selects
// the client behavior; File and Detail carry kind-specific payload.
type ReloadEvent struct {
	Kind   string `json:"type"`
	File   string `json:"file,omitempty"`
	Detail string `json:"error,omitempty"`
}

// ReloadHub fans live-reload events out to every connected browser tab.
// Connections register through the websocket handler and are dropped on
// their first failed write, so a dead tab never wedges the rest.
type ReloadHub struct {
	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool

	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewReloadHub creates an empty hub.
func NewReloadHub() *ReloadHub {
	return &ReloadHub{
		conns:  make(map[*websocket.Conn]struct{}),
		logger: slog.Default().With("component", "reload"),
		upgrader: websocket.Upgrader{
			// Dev-only endpoint; origin checks would break LAN testing.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// HandleWebSocket upgrades the request and parks the connection until
// the browser goes away. The client never sends meaningful data; the
// read loop exists to notice the disconnect.
func (h *ReloadHub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Debug("reload upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.conns[conn] = struct{}{}
	total := len(h.conns)
	h.mu.Unlock()
	h.logger.Debug("reload client connected", "clients", total)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(conn)
}

// NotifyReload tells every tab to do a full page reload.
func (h *ReloadHub) NotifyReload() {
	h.send(ReloadEvent{Kind: ReloadKindFull})
}

// NotifyCSS tells every tab to refresh its stylesheets in place,
// keeping application state alive.
func (h *ReloadHub) NotifyCSS(file string) {
	h.send(ReloadEvent{Kind: ReloadKindCSS, File: file})
}

// NotifyError shows detail on the error overlay in every tab.
func (h *ReloadHub) NotifyError(detail string) {
	h.send(ReloadEvent{Kind: ReloadKindError, Detail: detail})
}

// ClearError dismisses the error overlay in every tab.
func (h *ReloadHub) ClearError() {
	h.send(ReloadEvent{Kind: ReloadKindClear})
}

// ClientCount returns the number of connected tabs.
func (h *ReloadHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close disconnects every tab and rejects future registrations.
func (h *ReloadHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for conn := range h.conns {
		conn.Close()
		delete(h.conns, conn)
	}
}

func (h *ReloadHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

func (h *ReloadHub) send(ev ReloadEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}

	h.mu.Lock()
	targets := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		targets = append(targets, conn)
	}
	h.mu.Unlock()

	for _, conn := range targets {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Debug("reload client dropped", "error", err)
			h.drop(conn)
		}
	}
}

// ReloadClientScript is the browser half of the reload protocol,
// injected into index.html when hot reload is on. It reconnects with
// exponential backoff, swaps stylesheets in place on css events, and
// renders build errors as a full-screen overlay.
const ReloadClientScript = `<script>
(function () {
  'use strict';
  var delay = 1000;

  function connect() {
    var scheme = location.protocol === 'https:' ? 'wss:' : 'ws:';
    var sock = new WebSocket(scheme + '//' + location.host + '` + ReloadPath + `');

    sock.onopen = function () {
      delay = 1000;
      dismiss();
    };

    sock.onmessage = function (raw) {
      var ev;
      try { ev = JSON.parse(raw.data); } catch (e) { return; }
      if (ev.type === 'reload') location.reload();
      else if (ev.type === 'css') refreshStyles();
      else if (ev.type === 'error') overlay(ev.error);
      else if (ev.type === 'clear') dismiss();
    };

    sock.onclose = function () {
      setTimeout(connect, delay);
      delay = Math.min(delay * 2, 30000);
    };
    sock.onerror = function () { sock.close(); };
  }

  function refreshStyles() {
    document.querySelectorAll('link[rel="stylesheet"]').forEach(function (link) {
      var url = new URL(link.href);
      url.searchParams.set('v', Date.now());
      link.href = url.toString();
    });
  }

  function overlay(detail) {
    dismiss();
    var box = document.createElement('div');
    box.id = 'loom-overlay';
    box.style.cssText = 'position:fixed;inset:0;z-index:99999;background:rgba(10,10,10,.92);' +
      'color:#eee;font:14px/1.5 monospace;padding:32px;overflow:auto;white-space:pre-wrap;';
    box.textContent = 'Build error\n\n' + detail + '\n\nFix the error and save to reload.';
    document.body.appendChild(box);
  }

  function dismiss() {
    var box = document.getElementById('loom-overlay');
    if (box) box.remove();
  }

  if (document.readyState === 'loading') {
    document.addEventListener('DOMContentLoaded', connect);
  } else {
    connect();
  }
})();
</script>`
