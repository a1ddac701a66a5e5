package listener

import (
	"context"
	"errors"
	"sync"

	"github.com/bitfsorg/catapult-go/account"
	"github.com/bitfsorg/catapult-go/tx"
)

// WaitState is the state of a Wait.
type WaitState int

const (
	WaitPending WaitState = iota
	WaitResolved
	WaitRejected
	WaitCancelled
)

func (s WaitState) String() string {
	switch s {
	case WaitPending:
		return "pending"
	case WaitResolved:
		return "resolved"
	case WaitRejected:
		return "rejected"
	case WaitCancelled:
		return "cancelled"
	}
	return "unknown"
}

// errPending is returned by Result while the wait has not finished.
var errPending = errors.New("listener: wait pending")

// Wait tracks one hash until it is resolved by a matching event, rejected by
// a status event, or cancelled. It leaves the pending state exactly once.
type Wait struct {
	listener *Listener
	hash     tx.Hash

	mu    sync.Mutex
	state WaitState
	event Event
	err   error
	regs  []*Registration
	done  chan struct{}
}

// Hash returns the hash the wait tracks.
func (w *Wait) Hash() tx.Hash { return w.hash }

// Done is closed when the wait leaves the pending state.
func (w *Wait) Done() <-chan struct{} { return w.done }

// State returns the current state.
func (w *Wait) State() WaitState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Result returns the resolving event, or the rejection or cancellation error.
func (w *Wait) Result() (Event, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == WaitPending {
		return Event{}, errPending
	}
	return w.event, w.err
}

// Await blocks until the wait finishes or ctx is done. A done ctx cancels the wait.
func (w *Wait) Await(ctx context.Context) (Event, error) {
	select {
	case <-w.done:
	case <-ctx.Done():
		if w.finish(WaitCancelled, Event{}, ctx.Err()) {
			return Event{}, ctx.Err()
		}
	}
	return w.Result()
}

// Cancel abandons the wait. Cancelling a finished wait is a no-op.
func (w *Wait) Cancel() { w.finish(WaitCancelled, Event{}, ErrCancelled) }

// finish moves the wait out of pending. It reports false if the wait had
// already finished.
func (w *Wait) finish(state WaitState, ev Event, err error) bool {
	w.mu.Lock()
	if w.state != WaitPending {
		w.mu.Unlock()
		return false
	}
	w.state = state
	w.event = ev
	w.err = err
	regs := w.regs
	w.regs = nil
	close(w.done)
	w.mu.Unlock()

	for _, r := range regs {
		r.Cancel()
	}
	l := w.listener
	l.mu.Lock()
	delete(l.waits, w)
	l.mu.Unlock()

	mWaits.WithLabelValues(state.String()).Inc()
	return true
}

func (w *Wait) add(r *Registration) {
	w.mu.Lock()
	if w.state != WaitPending {
		w.mu.Unlock()
		r.Cancel()
		return
	}
	w.regs = append(w.regs, r)
	w.mu.Unlock()
}

// WaitConfirmed waits for hash to be confirmed on address.
func (l *Listener) WaitConfirmed(address account.Address, hash tx.Hash) (*Wait, error) {
	return l.wait(address, hash, ChannelConfirmedAdded)
}

// WaitUnconfirmed waits for hash to enter the unconfirmed pool of address.
func (l *Listener) WaitUnconfirmed(address account.Address, hash tx.Hash) (*Wait, error) {
	return l.wait(address, hash, ChannelUnconfirmedAdded)
}

// WaitPartialAdded waits for the aggregate bonded hash to be accepted as partial.
func (l *Listener) WaitPartialAdded(address account.Address, hash tx.Hash) (*Wait, error) {
	return l.wait(address, hash, ChannelPartialAdded)
}

// WaitPartialResolved waits for the aggregate bonded hash to stop being
// partial, either by leaving the partial pool or by being confirmed.
func (l *Listener) WaitPartialResolved(address account.Address, hash tx.Hash) (*Wait, error) {
	return l.wait(address, hash, ChannelPartialRemoved, ChannelConfirmedAdded)
}

// WaitCosignature waits for a cosignature of the aggregate parentHash.
func (l *Listener) WaitCosignature(address account.Address, parentHash tx.Hash) (*Wait, error) {
	return l.wait(address, parentHash, ChannelCosignature)
}

// wait registers a status watcher that rejects and one watcher per resolve
// channel that resolves, all filtered on hash.
func (l *Listener) wait(address account.Address, hash tx.Hash, resolve ...Channel) (*Wait, error) {
	w := &Wait{listener: l, hash: hash, done: make(chan struct{})}

	l.mu.Lock()
	switch l.state {
	case stateIdle:
		l.mu.Unlock()
		return nil, ErrNotOpen
	case stateClosed:
		l.mu.Unlock()
		return nil, ErrClosed
	}
	l.waits[w] = struct{}{}
	l.mu.Unlock()

	match := func(ev Event) bool { return ev.Hash == hash }

	r, err := l.Subscribe(ChannelStatus, &address, match, func(ev Event) {
		w.finish(WaitRejected, ev, &StatusError{Hash: ev.Hash, Status: ev.Status, Deadline: ev.Deadline})
	})
	if err != nil {
		w.finish(WaitCancelled, Event{}, err)
		return nil, err
	}
	w.add(r)

	for _, ch := range resolve {
		r, err := l.Subscribe(ch, &address, match, func(ev Event) {
			w.finish(WaitResolved, ev, nil)
		})
		if err != nil {
			w.finish(WaitCancelled, Event{}, err)
			return nil, err
		}
		w.add(r)
	}
	return w, nil
}
