package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bitfsorg/catapult-go/tx"
)

var cmdCosign = &cobra.Command{
	Use:   "cosign [aggregate hash]",
	Short: "Cosign an aggregate bonded transaction by hash",
	Args:  cobra.ExactArgs(1),
	RunE:  cosign,
}

var flagCosign struct {
	Signer   signerFlags
	Announce bool
	Timeout  time.Duration
}

func init() {
	cmdMain.AddCommand(cmdCosign)
	initCosignFlags()
}

func initCosignFlags() {
	cmdCosign.ResetFlags()
	flags := cmdCosign.Flags()
	flagCosign.Signer.register(flags)
	flags.BoolVar(&flagCosign.Announce, "announce", false, "Announce the cosignature")
	flags.DurationVar(&flagCosign.Timeout, "timeout", 30*time.Second, "How long to wait for the node")
}

func cosign(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	hash, err := tx.ParseHash(args[0])
	if err != nil {
		return err
	}
	signer, err := s.signer(&flagCosign.Signer)
	if err != nil {
		return err
	}

	cosig := tx.SignCosignature(hash, signer.KeyPair())
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "parentHash: %s\n", cosig.ParentHash)
	fmt.Fprintf(out, "signer:     %s\n", cosig.Signer)
	fmt.Fprintf(out, "signature:  %s\n", cosig.Signature)

	if !flagCosign.Announce {
		return nil
	}
	c, err := s.client()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), flagCosign.Timeout)
	defer cancel()
	if err := c.AnnounceCosignature(ctx, cosig); err != nil {
		return err
	}
	s.log.Info().Stringer("parentHash", cosig.ParentHash).Msg("cosignature announced")
	return nil
}
