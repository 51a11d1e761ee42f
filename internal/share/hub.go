package share

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"artboard/internal/state"
)

// BoardPath is where the hub accepts viewers.
const BoardPath = "/board"

const (
	writeWait  = 5 * time.Second
	sendBuffer = 256
)

// URL builds the share link for host:port.
func URL(host string, port int) string {
	return fmt.Sprintf("ws://%s:%d%s", host, port, BoardPath)
}

type entry struct {
	op   state.Op
	data []byte
	open bool // a point of the stroke still being drawn
}

type peer struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub mirrors board ops to connected viewers. New viewers first receive
// the log of ops since the last clear, in publish order, plus the latest
// background change. Finished strokes sit in the log as one add_stroke op.
type Hub struct {
	peers    map[*peer]bool
	log      []entry
	mu       sync.Mutex
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		peers: make(map[*peer]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Publish records op and sends it to every viewer. A viewer whose buffer
// is full is dropped rather than stalling the UI thread.
func (h *Hub) Publish(op state.Op) {
	data, err := json.Marshal(op)
	if err != nil {
		log.Printf("[SHARE] Error encoding %s op: %v", op.Type, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	switch op.Type {
	case state.OpClear:
		h.log = h.keep(state.OpBackground)
	case state.OpBackground:
		h.log = append(h.drop(state.OpBackground), entry{op: op, data: data})
	case state.OpStrokePoint:
		h.log = append(h.log, entry{op: op, data: data, open: true})
	case state.OpStrokeEnd:
		h.closeStroke(op)
	default:
		h.log = append(h.log, entry{op: op, data: data})
	}
	for p := range h.peers {
		select {
		case p.send <- data:
		default:
			log.Printf("[SHARE] Dropping slow viewer %s", p.conn.RemoteAddr())
			h.removeLocked(p)
		}
	}
}

// closeStroke folds the open stroke points into a single add_stroke entry.
func (h *Hub) closeStroke(end state.Op) {
	var st state.Stroke
	out := h.log[:0]
	for _, e := range h.log {
		if !e.open {
			out = append(out, e)
			continue
		}
		if len(st.Points) == 0 && e.op.Pen != nil {
			st.Width, st.Color = e.op.Pen.Width, e.op.Pen.Color
		}
		st.Points = append(st.Points, *e.op.Point)
	}
	h.log = out
	if len(st.Points) == 0 {
		return
	}

	merged := state.Op{Type: state.OpAddStroke, Stroke: &st, Lamport: end.Lamport, Site: end.Site}
	data, err := json.Marshal(merged)
	if err != nil {
		log.Printf("[SHARE] Error encoding merged stroke: %v", err)
		return
	}
	h.log = append(h.log, entry{op: merged, data: data})
}

func (h *Hub) keep(t state.OpType) []entry {
	var out []entry
	for _, e := range h.log {
		if e.op.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (h *Hub) drop(t state.OpType) []entry {
	out := h.log[:0]
	for _, e := range h.log {
		if e.op.Type != t {
			out = append(out, e)
		}
	}
	return out
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

func (h *Hub) removeLocked(p *peer) {
	if _, ok := h.peers[p]; ok {
		delete(h.peers, p)
		close(p.send)
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[SHARE] Upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	p := &peer{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	backlog := make([][]byte, 0, len(h.log))
	for _, e := range h.log {
		backlog = append(backlog, e.data)
	}
	h.peers[p] = true
	h.mu.Unlock()
	log.Printf("[SHARE] Viewer connected: %s (%d ops replayed)", conn.RemoteAddr(), len(backlog))

	go h.writePump(p, backlog)
	h.readPump(p)
}

// readPump only watches for the viewer going away; viewers never send ops.
func (h *Hub) readPump(p *peer) {
	defer func() {
		h.mu.Lock()
		h.removeLocked(p)
		h.mu.Unlock()
		p.conn.Close()
		log.Printf("[SHARE] Viewer disconnected: %s", p.conn.RemoteAddr())
	}()
	for {
		if _, _, err := p.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(p *peer, backlog [][]byte) {
	defer p.conn.Close()
	for _, data := range backlog {
		if !write(p.conn, data) {
			return
		}
	}
	for data := range p.send {
		if !write(p.conn, data) {
			return
		}
	}
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	p.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func write(conn *websocket.Conn, data []byte) bool {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("[SHARE] Error sending to %s: %v", conn.RemoteAddr(), err)
		return false
	}
	return true
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for p := range h.peers {
		h.removeLocked(p)
	}
}
