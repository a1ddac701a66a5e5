// Package listener is a client for the node's websocket push channel.
//
// After Open the node assigns a channel identifier; subscriptions are then
// scoped to (channel, address) topics. Each Registration fires at most once
// and is removed either when it fires or when it is cancelled. Topics are
// reference counted so the node sees one subscribe and one unsubscribe per
// topic no matter how many registrations share it.
package listener

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/bitfsorg/catapult-go/account"
)

type state int

const (
	stateIdle state = iota
	stateOpen
	stateClosed
)

type topic struct {
	channel Channel
	address string
}

func (t topic) String() string {
	if t.address == "" {
		return string(t.channel)
	}
	return string(t.channel) + "/" + t.address
}

// Listener multiplexes registrations over one websocket connection.
type Listener struct {
	endpoint string
	dialer   *websocket.Dialer
	log      zerolog.Logger

	writeMu sync.Mutex
	conn    *websocket.Conn

	mu     sync.Mutex
	state  state
	uid    string
	nextID uint64
	regs   map[uint64]*Registration
	topics map[topic]int
	waits  map[*Wait]struct{}
	done   chan struct{}
}

// Option configures a Listener.
type Option func(*Listener)

// WithLogger sets the logger; the default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Listener) { l.log = log.With().Str("component", "listener").Logger() }
}

// WithDialer replaces the websocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(l *Listener) { l.dialer = d }
}

// New creates a listener for the node at nodeURL (http, https, ws or wss).
// The websocket endpoint is nodeURL with path /ws.
func New(nodeURL string, opts ...Option) (*Listener, error) {
	endpoint, err := websocketURL(nodeURL)
	if err != nil {
		return nil, err
	}
	l := &Listener{
		endpoint: endpoint,
		dialer:   websocket.DefaultDialer,
		log:      zerolog.Nop(),
		regs:     make(map[uint64]*Registration),
		topics:   make(map[topic]int),
		waits:    make(map[*Wait]struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func websocketURL(nodeURL string) (string, error) {
	u, err := url.Parse(nodeURL)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidNodeURL, nodeURL, err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("%w: %q: unsupported scheme", ErrInvalidNodeURL, nodeURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %q: missing host", ErrInvalidNodeURL, nodeURL)
	}
	if !strings.HasSuffix(u.Path, "/ws") {
		u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	}
	return u.String(), nil
}

// Endpoint returns the websocket URL.
func (l *Listener) Endpoint() string { return l.endpoint }

// Open dials the node and waits for the channel identifier.
func (l *Listener) Open(ctx context.Context) error {
	l.mu.Lock()
	switch l.state {
	case stateOpen:
		l.mu.Unlock()
		return ErrAlreadyOpen
	case stateClosed:
		l.mu.Unlock()
		return ErrClosed
	}
	l.mu.Unlock()

	conn, _, err := l.dialer.DialContext(ctx, l.endpoint, nil)
	if err != nil {
		return fmt.Errorf("listener: dial %s: %w", l.endpoint, err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	}
	var hello struct {
		UID string `json:"uid"`
	}
	if err := conn.ReadJSON(&hello); err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: %v", ErrHandshake, err)
	}
	if hello.UID == "" {
		_ = conn.Close()
		return fmt.Errorf("%w: empty uid", ErrHandshake)
	}
	_ = conn.SetReadDeadline(time.Time{})

	l.mu.Lock()
	if l.state != stateIdle {
		l.mu.Unlock()
		_ = conn.Close()
		return ErrClosed
	}
	l.conn = conn
	l.uid = hello.UID
	l.state = stateOpen
	l.mu.Unlock()

	l.log.Debug().Str("endpoint", l.endpoint).Str("uid", hello.UID).Msg("push channel open")
	go l.readLoop(conn)
	return nil
}

// UID returns the channel identifier assigned by the node.
func (l *Listener) UID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.uid
}

// Done is closed once the listener is closed or its connection is lost.
func (l *Listener) Done() <-chan struct{} { return l.done }

// Close releases the connection and cancels every registration and wait
// without invoking callbacks. Closing twice is a no-op.
func (l *Listener) Close() error {
	l.mu.Lock()
	if l.state == stateClosed {
		l.mu.Unlock()
		return nil
	}
	wasOpen := l.state == stateOpen
	waits := l.shutdownLocked()
	l.mu.Unlock()

	for _, w := range waits {
		w.finish(WaitCancelled, Event{}, ErrClosed)
	}
	if !wasOpen {
		return nil
	}

	l.writeMu.Lock()
	_ = l.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	l.writeMu.Unlock()
	return l.conn.Close()
}

// shutdownLocked moves to the closed state and drops all registrations. It
// returns the waits that were pending.
func (l *Listener) shutdownLocked() []*Wait {
	l.state = stateClosed
	for id, r := range l.regs {
		r.removed = true
		delete(l.regs, id)
		mRegistrations.Dec()
	}
	l.topics = make(map[topic]int)
	waits := make([]*Wait, 0, len(l.waits))
	for w := range l.waits {
		waits = append(waits, w)
	}
	l.waits = make(map[*Wait]struct{})
	close(l.done)
	return waits
}

func (l *Listener) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			l.connectionLost(conn, err)
			return
		}
		ev, ok, err := parseEvent(data)
		if err != nil {
			l.log.Warn().Err(err).Msg("dropping malformed push message")
			continue
		}
		if !ok {
			l.log.Debug().RawJSON("message", data).Msg("ignoring push message")
			continue
		}
		mEvents.WithLabelValues(string(ev.Channel)).Inc()
		l.dispatch(ev)
	}
}

func (l *Listener) connectionLost(conn *websocket.Conn, err error) {
	l.mu.Lock()
	if l.state == stateClosed {
		l.mu.Unlock()
		return
	}
	waits := l.shutdownLocked()
	l.mu.Unlock()

	l.log.Warn().Err(err).Int("pending_waits", len(waits)).Msg("push channel lost")
	for _, w := range waits {
		w.finish(WaitRejected, Event{}, fmt.Errorf("%w: %v", ErrConnectionLost, err))
	}
	_ = conn.Close()
}

// dispatch fires every registration matching ev. Callbacks run on the read
// goroutine after the registration has been removed.
func (l *Listener) dispatch(ev Event) {
	l.writeMu.Lock()
	l.mu.Lock()
	var fired []*Registration
	for _, r := range l.regs {
		if r.matches(ev) {
			fired = append(fired, r)
		}
	}
	var unsubscribe []topic
	for _, r := range fired {
		if t, last := l.removeLocked(r); last {
			unsubscribe = append(unsubscribe, t)
		}
	}
	uid, open := l.uid, l.state == stateOpen
	l.mu.Unlock()

	if open {
		for _, t := range unsubscribe {
			if err := l.writeTopic(uid, "unsubscribe", t); err != nil && !errors.Is(err, ErrClosed) {
				l.log.Warn().Err(err).Stringer("topic", t).Msg("unsubscribe failed")
			}
		}
	}
	l.writeMu.Unlock()

	for _, r := range fired {
		r.callback(ev)
	}
}

// Subscribe registers callback for the first event on channel that concerns
// address and satisfies match. address may be nil only for ChannelBlock;
// match may be nil to accept any event.
func (l *Listener) Subscribe(channel Channel, address *account.Address, match func(Event) bool, callback func(Event)) (*Registration, error) {
	if callback == nil {
		return nil, fmt.Errorf("listener: nil callback")
	}
	t := topic{channel: channel}
	if channel.perAddress() {
		if address == nil {
			return nil, fmt.Errorf("listener: channel %s requires an address", channel)
		}
		t.address = address.Plain()
	}

	// Topic frames go out under writeMu together with the refcount change, so
	// the node sees subscribe and unsubscribe in refcount order.
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	l.mu.Lock()
	switch l.state {
	case stateIdle:
		l.mu.Unlock()
		return nil, ErrNotOpen
	case stateClosed:
		l.mu.Unlock()
		return nil, ErrClosed
	}
	l.nextID++
	r := &Registration{
		id:       l.nextID,
		listener: l,
		topic:    t,
		address:  address,
		match:    match,
		callback: callback,
	}
	l.regs[r.id] = r
	mRegistrations.Inc()
	l.topics[t]++
	first := l.topics[t] == 1
	uid := l.uid
	l.mu.Unlock()

	if first {
		if err := l.writeTopic(uid, "subscribe", t); err != nil {
			l.mu.Lock()
			l.removeLocked(r)
			l.mu.Unlock()
			return nil, err
		}
	}
	return r, nil
}

// removeLocked drops r and reports whether it was the last user of its topic.
func (l *Listener) removeLocked(r *Registration) (topic, bool) {
	if r.removed {
		return r.topic, false
	}
	r.removed = true
	delete(l.regs, r.id)
	mRegistrations.Dec()
	l.topics[r.topic]--
	if l.topics[r.topic] > 0 {
		return r.topic, false
	}
	delete(l.topics, r.topic)
	return r.topic, true
}

// writeTopic sends a subscribe or unsubscribe frame. The caller holds writeMu.
func (l *Listener) writeTopic(uid, action string, t topic) error {
	msg := map[string]string{"uid": uid, action: t.String()}
	if err := l.conn.WriteJSON(msg); err != nil {
		if errors.Is(err, websocket.ErrCloseSent) {
			return ErrClosed
		}
		return fmt.Errorf("listener: %s %s: %w", action, t, err)
	}
	l.log.Debug().Str("action", action).Stringer("topic", t).Msg("topic")
	return nil
}

// Registration is a one-shot callback on a topic.
type Registration struct {
	id       uint64
	listener *Listener
	topic    topic
	address  *account.Address
	match    func(Event) bool
	callback func(Event)
	removed  bool // guarded by listener.mu
}

func (r *Registration) matches(ev Event) bool {
	if ev.Channel != r.topic.channel {
		return false
	}
	if r.address != nil && ev.Address != nil && !r.address.Equals(*ev.Address) {
		return false
	}
	return r.match == nil || r.match(ev)
}

// Cancel removes the registration. Cancelling a fired or cancelled
// registration is a no-op.
func (r *Registration) Cancel() {
	l := r.listener
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	l.mu.Lock()
	t, last := l.removeLocked(r)
	open := l.state == stateOpen
	uid := l.uid
	l.mu.Unlock()

	if last && open {
		if err := l.writeTopic(uid, "unsubscribe", t); err != nil && !errors.Is(err, ErrClosed) {
			l.log.Warn().Err(err).Stringer("topic", t).Msg("unsubscribe failed")
		}
	}
}
