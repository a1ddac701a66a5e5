package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bitfsorg/catapult-go/account"
	"github.com/bitfsorg/catapult-go/ids"
	"github.com/bitfsorg/catapult-go/keypair"
)

var cmdAddress = &cobra.Command{
	Use:   "address",
	Short: "Derive the address of a public or private key",
	Args:  cobra.NoArgs,
	RunE:  deriveAddress,
}

var cmdMosaicId = &cobra.Command{
	Use:   "mosaic-id",
	Short: "Derive a mosaic id from a nonce and its owner's public key",
	Args:  cobra.NoArgs,
	RunE:  deriveMosaicId,
}

var cmdNamespaceId = &cobra.Command{
	Use:   "namespace-id [name]",
	Short: "Derive the id of every level of a dotted namespace name",
	Args:  cobra.ExactArgs(1),
	RunE:  deriveNamespaceId,
}

var flagAddress struct {
	PublicKey  string
	PrivateKey string
	Pretty     bool
}

var flagMosaicId struct {
	Nonce uint32
	Owner string
}

func init() {
	cmdMain.AddCommand(cmdAddress, cmdMosaicId, cmdNamespaceId)
	initIdFlags()
}

func initIdFlags() {
	cmdAddress.ResetFlags()
	cmdAddress.Flags().StringVar(&flagAddress.PublicKey, "public-key", "", "Hex public key")
	cmdAddress.Flags().StringVar(&flagAddress.PrivateKey, "private-key", "", "Hex private key")
	cmdAddress.Flags().BoolVar(&flagAddress.Pretty, "pretty", false, "Print the dashed form")

	cmdMosaicId.ResetFlags()
	cmdMosaicId.Flags().Uint32Var(&flagMosaicId.Nonce, "nonce", 0, "Mosaic nonce")
	cmdMosaicId.Flags().StringVar(&flagMosaicId.Owner, "owner", "", "Hex public key of the mosaic owner")
	_ = cmdMosaicId.MarkFlagRequired("owner")
}

func deriveAddress(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	var pub *account.PublicAccount
	switch {
	case flagAddress.PrivateKey != "" && flagAddress.PublicKey != "":
		return fmt.Errorf("--public-key and --private-key are mutually exclusive")
	case flagAddress.PrivateKey != "":
		acct, err := account.AccountFromPrivateKey(flagAddress.PrivateKey, s.params.Network, s.params.Schema)
		if err != nil {
			return err
		}
		pub = acct.PublicAccount
	case flagAddress.PublicKey != "":
		pub, err = account.PublicAccountFromHex(flagAddress.PublicKey, s.params.Network, s.params.Schema)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("one of --public-key or --private-key is required")
	}

	if flagAddress.Pretty {
		fmt.Fprintln(cmd.OutOrStdout(), pub.Address.Pretty())
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), pub.Address.Plain())
	}
	return nil
}

func deriveMosaicId(cmd *cobra.Command, _ []string) error {
	owner, err := keypair.PublicKeyFromHex(flagMosaicId.Owner)
	if err != nil {
		return err
	}
	id := ids.DeriveMosaicId(ids.NonceFromUint32(flagMosaicId.Nonce), owner[:])
	fmt.Fprintln(cmd.OutOrStdout(), id.Hex())
	return nil
}

func deriveNamespaceId(cmd *cobra.Command, args []string) error {
	path, err := ids.NamespacePath(args[0])
	if err != nil {
		return err
	}
	for _, ns := range path {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ns.Hex(), ns.FullName())
	}
	return nil
}
