package flowhub

import (
	"encoding/json"

	"github.com/gorilla/websocket"
)

// Hub fans pipeline run progress out to websocket watchers. Watchers are
// read-only; the pipeline is the only writer.
type Hub struct {
	watchers  map[*Watcher]bool
	broadcast chan []byte
	join      chan *Watcher
	leave     chan *Watcher
}

func New() *Hub {
	return &Hub{
		watchers:  make(map[*Watcher]bool),
		broadcast: make(chan []byte),
		join:      make(chan *Watcher),
		leave:     make(chan *Watcher),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case watcher := <-h.join:
			h.watchers[watcher] = true
		case watcher := <-h.leave:
			if _, ok := h.watchers[watcher]; ok {
				delete(h.watchers, watcher)
				close(watcher.Receive)
			}
		case msg := <-h.broadcast:
			for watcher := range h.watchers {
				select {
				case watcher.Receive <- msg:
				default:
					// A watcher that can't keep up gets dropped rather than
					// stalling the run.
					close(watcher.Receive)
					delete(h.watchers, watcher)
				}
			}
		}
	}
}

// Join registers a connection as a watcher and starts its read and write
// pumps.
func (h *Hub) Join(conn *websocket.Conn) *Watcher {
	watcher := newWatcher(h, conn)
	h.join <- watcher

	go watcher.WriteEvents()
	go watcher.ReadEvents()

	return watcher
}

// Broadcast marshals v and sends it to every connected watcher. Unmarshalable
// values are dropped silently; progress messages are best-effort.
func (h *Hub) Broadcast(v any) {
	msg, err := json.Marshal(v)
	if err != nil {
		return
	}
	h.broadcast <- msg
}
