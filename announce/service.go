// Package announce submits signed transactions and follows them on the push
// channel until the node confirms or rejects them.
//
// Every wait is registered before the matching announcement, so a node that
// reacts faster than the REST reply cannot be missed.
package announce

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bitfsorg/catapult-go/account"
	"github.com/bitfsorg/catapult-go/journal"
	"github.com/bitfsorg/catapult-go/listener"
	"github.com/bitfsorg/catapult-go/network"
	"github.com/bitfsorg/catapult-go/tx"
)

// Service combines a REST transport and a listener.
type Service struct {
	client   network.TransactionService
	listener *listener.Listener
	journal  journal.Store
	log      zerolog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithJournal records every announcement and its outcome in store.
func WithJournal(store journal.Store) Option {
	return func(s *Service) { s.journal = store }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log.With().Str("component", "announce").Logger() }
}

// WithClock sets the clock used for journal timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service. l must be open.
func NewService(client network.TransactionService, l *listener.Listener, opts ...Option) *Service {
	s := &Service{
		client:   client,
		listener: l,
		log:      zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnnounceAndWait announces signed and blocks until it is confirmed for
// address, rejected by the node, or ctx is done.
func (s *Service) AnnounceAndWait(ctx context.Context, signed *tx.SignedTransaction, address account.Address) (listener.Event, error) {
	if signed == nil {
		return listener.Event{}, fmt.Errorf("%w: signed transaction", ErrNilParam)
	}
	w, err := s.listener.WaitConfirmed(address, signed.Hash)
	if err != nil {
		return listener.Event{}, err
	}
	s.record(signed)

	if err := s.client.Announce(ctx, signed); err != nil {
		w.Cancel()
		s.finish(signed.Hash, journal.StatusFailed, "announce", 0)
		mOutcomes.WithLabelValues("error").Inc()
		return listener.Event{}, fmt.Errorf("announce: %s: %w", signed.Hash, err)
	}
	s.log.Debug().Stringer("hash", signed.Hash).Stringer("type", signed.Type).Msg("announced")

	return s.await(ctx, w, journal.StatusConfirmed, "confirmed")
}

// AnnounceBonded announces the hash lock, waits for its confirmation, then
// announces the aggregate bonded and waits until the node holds it as partial.
func (s *Service) AnnounceBonded(ctx context.Context, lock, aggregate *tx.SignedTransaction, address account.Address) (listener.Event, error) {
	if lock == nil || aggregate == nil {
		return listener.Event{}, fmt.Errorf("%w: lock and aggregate", ErrNilParam)
	}
	if lock.Type != tx.TypeHashLock {
		return listener.Event{}, fmt.Errorf("%w: lock is %s", ErrWrongType, lock.Type)
	}
	if aggregate.Type != tx.TypeAggregateBonded {
		return listener.Event{}, fmt.Errorf("%w: aggregate is %s", ErrWrongType, aggregate.Type)
	}

	if _, err := s.AnnounceAndWait(ctx, lock, address); err != nil {
		return listener.Event{}, fmt.Errorf("announce: hash lock: %w", err)
	}

	w, err := s.listener.WaitPartialAdded(address, aggregate.Hash)
	if err != nil {
		return listener.Event{}, err
	}
	s.record(aggregate)

	if err := s.client.AnnounceAggregateBonded(ctx, aggregate); err != nil {
		w.Cancel()
		s.finish(aggregate.Hash, journal.StatusFailed, "announce", 0)
		mOutcomes.WithLabelValues("error").Inc()
		return listener.Event{}, fmt.Errorf("announce: %s: %w", aggregate.Hash, err)
	}
	s.log.Debug().Stringer("hash", aggregate.Hash).Msg("announced aggregate bonded")

	return s.await(ctx, w, journal.StatusPartial, "partial")
}

// AnnounceCosignature submits a detached cosignature.
func (s *Service) AnnounceCosignature(ctx context.Context, cosig *tx.CosignatureSignedTransaction) error {
	if cosig == nil {
		return fmt.Errorf("%w: cosignature", ErrNilParam)
	}
	if err := s.client.AnnounceCosignature(ctx, cosig); err != nil {
		return fmt.Errorf("announce: cosignature of %s: %w", cosig.ParentHash, err)
	}
	s.log.Debug().Stringer("parent", cosig.ParentHash).Stringer("signer", cosig.Signer).Msg("announced cosignature")
	return nil
}

func (s *Service) await(ctx context.Context, w *listener.Wait, success journal.Status, outcome string) (listener.Event, error) {
	ev, err := w.Await(ctx)
	if err != nil {
		var se *listener.StatusError
		if errors.As(err, &se) {
			s.finish(w.Hash(), journal.StatusFailed, se.Status, 0)
			mOutcomes.WithLabelValues("failed").Inc()
			s.log.Info().Stringer("hash", w.Hash()).Str("status", se.Status).Msg("rejected")
		} else {
			mOutcomes.WithLabelValues("error").Inc()
		}
		return ev, err
	}
	s.finish(w.Hash(), success, "", ev.Height.Uint64())
	mOutcomes.WithLabelValues(outcome).Inc()
	return ev, nil
}

func (s *Service) record(signed *tx.SignedTransaction) {
	if s.journal == nil {
		return
	}
	err := s.journal.Put(journal.NewEntry(signed, s.now()))
	if errors.Is(err, journal.ErrDuplicate) {
		err = journal.Mark(s.journal, signed.Hash, journal.StatusAnnounced, "", 0, s.now())
	}
	if err != nil {
		s.log.Warn().Err(err).Stringer("hash", signed.Hash).Msg("journal write failed")
	}
}

func (s *Service) finish(hash tx.Hash, status journal.Status, code string, height uint64) {
	if s.journal == nil {
		return
	}
	if err := journal.Mark(s.journal, hash, status, code, height, s.now()); err != nil {
		s.log.Warn().Err(err).Stringer("hash", hash).Msg("journal write failed")
	}
}
