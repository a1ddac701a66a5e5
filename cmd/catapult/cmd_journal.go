package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/bitfsorg/catapult-go/journal"
)

var cmdJournal = &cobra.Command{
	Use:   "journal",
	Short: "List journaled transactions by status",
	Args:  cobra.NoArgs,
	RunE:  listJournal,
}

var flagJournal struct {
	Status string
}

func init() {
	cmdMain.AddCommand(cmdJournal)
	initJournalFlags()
}

func initJournalFlags() {
	cmdJournal.ResetFlags()
	cmdJournal.Flags().StringVar(&flagJournal.Status, "status", string(journal.StatusConfirmed), "announced, partial, confirmed or failed")
}

func listJournal(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	status := journal.Status(flagJournal.Status)
	if !status.Valid() {
		return fmt.Errorf("%w: %q", journal.ErrInvalidStatus, flagJournal.Status)
	}

	store, err := journal.OpenBoltStore(filepath.Join(s.cfg.DataDir, journalFile))
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.ListByStatus(status)
	if err != nil {
		return err
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s %s %s", e.Hash, e.Type, e.AnnouncedAt.Format(time.RFC3339))
		if e.Height != 0 {
			line += fmt.Sprintf(" height=%d", e.Height)
		}
		if e.FailureCode != "" {
			line += " code=" + e.FailureCode
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
