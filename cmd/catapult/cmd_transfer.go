package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bitfsorg/catapult-go/account"
	"github.com/bitfsorg/catapult-go/announce"
	"github.com/bitfsorg/catapult-go/ids"
	"github.com/bitfsorg/catapult-go/journal"
	"github.com/bitfsorg/catapult-go/listener"
	"github.com/bitfsorg/catapult-go/tx"
)

const journalFile = "journal.db"

var cmdTransfer = &cobra.Command{
	Use:   "transfer",
	Short: "Build and sign a transfer, optionally announcing it",
	Long: `Build and sign a transfer transaction and print its hash and payload.

Recipients are raw addresses, or namespace names prefixed with '@'.
Mosaics are given as ID:AMOUNT where ID is a 16-digit hex mosaic id or a
namespace alias such as nem.xem.`,
	Args: cobra.NoArgs,
	RunE: transfer,
}

var flagTransfer struct {
	Signer         signerFlags
	Recipient      string
	Mosaics        []string
	Message        string
	MaxFee         uint64
	GenerationHash string
	Announce       bool
	Wait           bool
	Timeout        time.Duration
}

func init() {
	cmdMain.AddCommand(cmdTransfer)
	initTransferFlags()
}

func initTransferFlags() {
	cmdTransfer.ResetFlags()
	flags := cmdTransfer.Flags()
	flagTransfer.Signer.register(flags)
	flags.StringVar(&flagTransfer.Recipient, "recipient", "", "Recipient address or @namespace")
	flags.StringSliceVar(&flagTransfer.Mosaics, "mosaic", nil, "Mosaic as ID:AMOUNT (repeatable)")
	flags.StringVar(&flagTransfer.Message, "message", "", "Plain text message")
	flags.Uint64Var(&flagTransfer.MaxFee, "max-fee", 0, "Maximum fee (default size times the configured fee multiplier)")
	flags.StringVar(&flagTransfer.GenerationHash, "generation-hash", "", "Network generation hash (fetched from the node when unset)")
	flags.BoolVar(&flagTransfer.Announce, "announce", false, "Announce the signed transaction")
	flags.BoolVar(&flagTransfer.Wait, "wait", false, "With --announce, wait for confirmation")
	flags.DurationVar(&flagTransfer.Timeout, "timeout", 2*time.Minute, "How long to wait for the node")
	_ = cmdTransfer.MarkFlagRequired("recipient")
}

func transfer(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), flagTransfer.Timeout)
	defer cancel()

	signer, err := s.signer(&flagTransfer.Signer)
	if err != nil {
		return err
	}
	if err := s.ensureGenerationHash(ctx, flagTransfer.GenerationHash); err != nil {
		return err
	}

	body, err := transferBody(flagTransfer.Recipient, flagTransfer.Mosaics, flagTransfer.Message)
	if err != nil {
		return err
	}
	deadline, err := tx.CreateDeadline(s.params.Now(), s.cfg.Deadline())
	if err != nil {
		return err
	}
	t, err := tx.New(tx.Header{Network: s.params.Network, Deadline: deadline}, body)
	if err != nil {
		return err
	}
	t.MaxFee = ids.UInt64(flagTransfer.MaxFee)
	if flagTransfer.MaxFee == 0 {
		t.MaxFee = tx.CalculateMaxFee(t, s.cfg.FeeMultiplier)
	}

	signed, err := tx.Sign(t, signer.KeyPair(), s.params)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "hash:    %s\n", signed.Hash)
	fmt.Fprintf(out, "payload: %s\n", signed.PayloadHex())

	if !flagTransfer.Announce {
		return nil
	}
	if !flagTransfer.Wait {
		c, err := s.client()
		if err != nil {
			return err
		}
		if err := c.Announce(ctx, signed); err != nil {
			return err
		}
		fmt.Fprintln(out, "status:  announced")
		return nil
	}

	ev, err := s.announceAndWait(ctx, signed, signer.Address)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "status:  confirmed at height %s\n", ev.Height)
	return nil
}

// announceAndWait announces signed through a listener connected to the
// node and journals the outcome in the data directory.
func (s *session) announceAndWait(ctx context.Context, signed *tx.SignedTransaction, addr account.Address) (listener.Event, error) {
	c, err := s.client()
	if err != nil {
		return listener.Event{}, err
	}
	l, err := listener.New(c.URL(), listener.WithLogger(s.log))
	if err != nil {
		return listener.Event{}, err
	}
	if err := l.Open(ctx); err != nil {
		return listener.Event{}, err
	}
	defer l.Close()

	store, err := journal.OpenBoltStore(filepath.Join(s.cfg.DataDir, journalFile))
	if err != nil {
		return listener.Event{}, err
	}
	defer store.Close()

	svc := announce.NewService(c, l, announce.WithJournal(store), announce.WithLogger(s.log))
	return svc.AnnounceAndWait(ctx, signed, addr)
}

func transferBody(recipient string, mosaics []string, message string) (*tx.Transfer, error) {
	body := &tx.Transfer{Message: tx.PlainMessage(message)}
	if name, ok := strings.CutPrefix(recipient, "@"); ok {
		ns, err := ids.NamespaceIdFromName(name)
		if err != nil {
			return nil, err
		}
		body.Recipient = tx.ToNamespace(ns)
	} else {
		addr, err := account.AddressFromRawAddress(recipient)
		if err != nil {
			return nil, err
		}
		body.Recipient = tx.ToAddress(addr)
	}

	for _, m := range mosaics {
		mosaic, err := parseMosaic(m)
		if err != nil {
			return nil, err
		}
		body.Mosaics = append(body.Mosaics, mosaic)
	}
	return body, nil
}

// parseMosaic parses ID:AMOUNT.
func parseMosaic(s string) (tx.Mosaic, error) {
	idText, amountText, ok := strings.Cut(s, ":")
	if !ok {
		return tx.Mosaic{}, fmt.Errorf("mosaic %q: want ID:AMOUNT", s)
	}
	amount, err := strconv.ParseUint(amountText, 10, 64)
	if err != nil {
		return tx.Mosaic{}, fmt.Errorf("mosaic %q: amount: %w", s, err)
	}

	if v, err := ids.UInt64FromHex(idText); err == nil {
		return tx.NewMosaic(ids.Decode(v), ids.UInt64(amount)), nil
	}
	ns, err := ids.NamespaceIdFromName(idText)
	if err != nil {
		return tx.Mosaic{}, fmt.Errorf("mosaic %q: %w", s, err)
	}
	return tx.NewMosaic(ns, ids.UInt64(amount)), nil
}
