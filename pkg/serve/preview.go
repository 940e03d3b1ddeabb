package serve

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/element"
)

// MessageType is the type of a preview message.
type MessageType string

const (
	MessageReload MessageType = "reload"
	MessageError  MessageType = "error"
)

// Message is sent to browsers over the preview WebSocket.
type Message struct {
	Type  MessageType `json:"type"`
	Error string      `json:"error,omitempty"`
}

// Preview serves the current document and notifies connected browsers
// when it changes.
type Preview struct {
	mu      sync.RWMutex
	current element.Element

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]bool
	writeMu   sync.Mutex

	upgrader websocket.Upgrader
	handler  *handler
	logger   *slog.Logger
}

// NewPreview creates a preview serving initial. Options apply to the
// document handler.
func NewPreview(initial element.Element, opts ...Option) *Preview {
	p := &Preview{
		current: initial,
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	p.handler = &handler{source: p.Current, opts: buildOptions(opts)}
	p.logger = p.handler.opts.Logger
	return p
}

// Current returns the document being served.
func (p *Preview) Current() element.Element {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Update replaces the document and tells every browser to reload.
func (p *Preview) Update(el element.Element) {
	p.mu.Lock()
	p.current = el
	p.mu.Unlock()

	p.broadcast(Message{Type: MessageReload})
}

// NotifyError sends an error message to every browser.
func (p *Preview) NotifyError(msg string) {
	p.broadcast(Message{Type: MessageError, Error: msg})
}

// ServeHTTP renders the current document.
func (p *Preview) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.handler.ServeHTTP(w, r)
}

// HandleWebSocket upgrades the connection and keeps it registered until
// the browser disconnects.
func (p *Preview) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := p.upgrader.Upgrade(w, r, nil)
	if err != nil {
		p.logger.WarnContext(r.Context(), "preview upgrade failed",
			"error", errors.New("E011").Wrap(err).FormatCompact())
		return
	}

	p.clientsMu.Lock()
	p.clients[conn] = true
	p.setClientGauge()
	p.clientsMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	p.remove(conn)
}

// ClientCount returns the number of connected browsers.
func (p *Preview) ClientCount() int {
	p.clientsMu.Lock()
	defer p.clientsMu.Unlock()
	return len(p.clients)
}

// Close closes all client connections.
func (p *Preview) Close() {
	p.clientsMu.Lock()
	defer p.clientsMu.Unlock()

	for client := range p.clients {
		client.Close()
		delete(p.clients, client)
	}
	p.setClientGauge()
}

func (p *Preview) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	p.clientsMu.Lock()
	clients := make([]*websocket.Conn, 0, len(p.clients))
	for client := range p.clients {
		clients = append(clients, client)
	}
	p.clientsMu.Unlock()

	// gorilla/websocket allows one concurrent writer per connection.
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			p.remove(client)
		}
	}
}

func (p *Preview) remove(conn *websocket.Conn) {
	p.clientsMu.Lock()
	if p.clients[conn] {
		delete(p.clients, conn)
		p.setClientGauge()
	}
	p.clientsMu.Unlock()
	conn.Close()
}

// setClientGauge must be called with clientsMu held.
func (p *Preview) setClientGauge() {
	p.handler.opts.Metrics.setPreviewClients(len(p.clients))
}

// PreviewScript returns a script element that connects to the preview
// WebSocket at path and reloads the page when told to.
func PreviewScript(path string) element.Element {
	return element.Textf(previewScript, path)
}

const previewScript = `<script>
(function() {
    var delay = 1000;
    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + %q);
        ws.onopen = function() { delay = 1000; };
        ws.onmessage = function(e) {
            var msg;
            try { msg = JSON.parse(e.data); } catch (err) { return; }
            if (msg.type === 'reload') { location.reload(); }
            if (msg.type === 'error') { console.error('[markup]', msg.error); }
        };
        ws.onclose = function() {
            setTimeout(function() { delay = Math.min(delay * 2, 30000); connect(); }, delay);
        };
    }
    connect();
})();
</script>`
