package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/golang/glog"
	"github.com/gorilla/websocket"

	"patchrt"
)

// bridgeFrame is the JSON message shape accepted over the websocket
// control connection, one object per text message: {symbol, atoms,
// timestamp}.
type bridgeFrame struct {
	Symbol    string     `json:"symbol"`
	Atoms     []jsonAtom `json:"atoms"`
	Timestamp float64    `json:"timestamp"`
}

var bridgeUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// bridgeSendMu serializes SendToReceiver calls from concurrent
// connections onto the Context's single-producer external queue.
var bridgeSendMu sync.Mutex

// runBridge listens for websocket connections at addr and forwards each
// decoded frame into ctx.SendToReceiver, one read loop per connection.
// It blocks; callers run it in its own goroutine.
func runBridge(ctx *patchrt.Context, addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handleBridgeConn(ctx, w, r)
	})
	glog.Infof("[bridge]listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		glog.Errorf("[bridge]listen error: %s", err)
	}
}

func handleBridgeConn(ctx *patchrt.Context, w http.ResponseWriter, r *http.Request) {
	ws, err := bridgeUpgrader.Upgrade(w, r, nil)
	if err != nil {
		glog.Warningf("[bridge]upgrade error: %s", err)
		return
	}
	defer ws.Close()

	for {
		messageType, message, err := ws.ReadMessage()
		if err != nil {
			glog.V(2).Infof("[bridge]connection closed: %s", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		var frame bridgeFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			glog.Warningf("[bridge]bad frame: %s", err)
			continue
		}
		atoms := make([]patchrt.Atom, len(frame.Atoms))
		for i, a := range frame.Atoms {
			atoms[i] = toAtom(a)
		}
		bridgeSendMu.Lock()
		ctx.SendToReceiver(frame.Symbol, patchrt.NewMessage(frame.Timestamp, atoms...))
		bridgeSendMu.Unlock()
		glog.V(2).Infof("[bridge]%s <- %d atoms", frame.Symbol, len(atoms))
	}
}
