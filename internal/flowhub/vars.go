package flowhub

import "time"

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 1 * time.Minute

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Watchers only listen, so
	// anything beyond a control frame is suspect.
	maxMessageSize = 512
)

var newline = []byte{'\n'}
