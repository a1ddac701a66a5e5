// Package nodetest provides an in-process fake node serving the REST routes
// and the websocket push channel the SDK uses. It records every request and
// subscription and lets tests push arbitrary messages.
package nodetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// Request is one recorded REST call.
type Request struct {
	Method string
	Path   string
	Body   map[string]string
}

// Node is a fake node. Create it with New and release it with Close.
type Node struct {
	server   *httptest.Server
	upgrader websocket.Upgrader

	mu             sync.Mutex
	generationHash string
	requests       []Request
	statuses       map[string]json.RawMessage
	announceStatus int
	onAnnounce     func(Request)
	conns          []*conn
	subscribed     []string
	unsubscribed   []string
	frames         []string
	nextUID        int
}

type conn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *conn) write(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(v)
}

// New starts a fake node reporting generationHash from /block/1.
func New(generationHash string) *Node {
	n := &Node{
		generationHash: generationHash,
		statuses:       make(map[string]json.RawMessage),
		announceStatus: http.StatusAccepted,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", n.serveWS)
	mux.HandleFunc("/transaction", n.serveAnnounce)
	mux.HandleFunc("/transaction/partial", n.serveAnnounce)
	mux.HandleFunc("/transaction/cosignature", n.serveAnnounce)
	mux.HandleFunc("/transaction/", n.serveStatus)
	mux.HandleFunc("/block/1", n.serveBlock)
	n.server = httptest.NewServer(mux)
	return n
}

// URL returns the http base URL.
func (n *Node) URL() string { return n.server.URL }

// Close stops the server and drops every websocket connection.
func (n *Node) Close() {
	n.DropConnections()
	n.server.Close()
}

// OnAnnounce installs fn, called after every recorded PUT.
func (n *Node) OnAnnounce(fn func(Request)) {
	n.mu.Lock()
	n.onAnnounce = fn
	n.mu.Unlock()
}

// FailAnnounces makes every following PUT answer with code.
func (n *Node) FailAnnounces(code int) {
	n.mu.Lock()
	n.announceStatus = code
	n.mu.Unlock()
}

// SetStatus serves status for GET /transaction/{hash}/status.
func (n *Node) SetStatus(hash string, status any) {
	data, err := json.Marshal(status)
	if err != nil {
		panic(fmt.Sprintf("nodetest: marshal status: %v", err))
	}
	n.mu.Lock()
	n.statuses[strings.ToUpper(hash)] = data
	n.mu.Unlock()
}

// Requests returns a snapshot of the recorded REST calls.
func (n *Node) Requests() []Request {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Request(nil), n.requests...)
}

// Subscriptions returns the topics subscribed so far, in order.
func (n *Node) Subscriptions() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.subscribed...)
}

// Unsubscriptions returns the topics unsubscribed so far, in order.
func (n *Node) Unsubscriptions() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.unsubscribed...)
}

// TopicFrames returns every topic frame received, in order. Subscribes are
// prefixed with "+" and unsubscribes with "-".
func (n *Node) TopicFrames() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.frames...)
}

// Connections returns the number of open websocket connections.
func (n *Node) Connections() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.conns)
}

// Push sends msg to every open websocket connection.
func (n *Node) Push(msg any) error {
	n.mu.Lock()
	conns := append([]*conn(nil), n.conns...)
	n.mu.Unlock()
	for _, c := range conns {
		if err := c.write(msg); err != nil {
			return fmt.Errorf("nodetest: push: %w", err)
		}
	}
	return nil
}

// DropConnections closes every websocket connection without a close frame.
func (n *Node) DropConnections() {
	n.mu.Lock()
	conns := n.conns
	n.conns = nil
	n.mu.Unlock()
	for _, c := range conns {
		_ = c.ws.Close()
	}
}

func (n *Node) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := n.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &conn{ws: ws}

	n.mu.Lock()
	n.nextUID++
	uid := fmt.Sprintf("uid-%d", n.nextUID)
	n.conns = append(n.conns, c)
	n.mu.Unlock()

	if err := c.write(map[string]string{"uid": uid}); err != nil {
		_ = ws.Close()
		return
	}

	for {
		var msg map[string]string
		if err := ws.ReadJSON(&msg); err != nil {
			n.remove(c)
			return
		}
		n.mu.Lock()
		if t, ok := msg["subscribe"]; ok {
			n.subscribed = append(n.subscribed, t)
			n.frames = append(n.frames, "+"+t)
		}
		if t, ok := msg["unsubscribe"]; ok {
			n.unsubscribed = append(n.unsubscribed, t)
			n.frames = append(n.frames, "-"+t)
		}
		n.mu.Unlock()
	}
}

func (n *Node) remove(c *conn) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, cc := range n.conns {
		if cc == c {
			n.conns = append(n.conns[:i], n.conns[i+1:]...)
			break
		}
	}
	_ = c.ws.Close()
}

func (n *Node) serveAnnounce(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"code":"InvalidContent","message":"bad json"}`, http.StatusBadRequest)
		return
	}
	req := Request{Method: r.Method, Path: r.URL.Path, Body: body}

	n.mu.Lock()
	n.requests = append(n.requests, req)
	code := n.announceStatus
	hook := n.onAnnounce
	n.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if code >= 200 && code < 300 {
		_, _ = fmt.Fprintf(w, `{"message":"packet was pushed to the network via %s"}`, r.URL.Path)
	} else {
		_, _ = fmt.Fprint(w, `{"code":"InternalError","message":"rejected"}`)
	}

	if hook != nil && code >= 200 && code < 300 {
		hook(req)
	}
}

func (n *Node) serveStatus(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/transaction/")
	hash, ok := strings.CutSuffix(rest, "/status")
	if r.Method != http.MethodGet || !ok {
		http.NotFound(w, r)
		return
	}

	n.mu.Lock()
	n.requests = append(n.requests, Request{Method: r.Method, Path: r.URL.Path})
	status, found := n.statuses[strings.ToUpper(hash)]
	n.mu.Unlock()

	if !found {
		http.Error(w, `{"code":"ResourceNotFound"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(status)
}

func (n *Node) serveBlock(w http.ResponseWriter, r *http.Request) {
	n.mu.Lock()
	n.requests = append(n.requests, Request{Method: r.Method, Path: r.URL.Path})
	g := n.generationHash
	n.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"meta":  map[string]string{"hash": strings.Repeat("AB", 32), "generationHash": g},
		"block": map[string]any{"height": []uint32{1, 0}},
	})
}
