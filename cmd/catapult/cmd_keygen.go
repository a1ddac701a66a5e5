package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bitfsorg/catapult-go/wallet"
)

var cmdKeygen = &cobra.Command{
	Use:   "keygen",
	Short: "Derive an account from a BIP39 mnemonic, generating one when none is given",
	Long: `Derive an account at m/44'/43'/index'/0'/0' from a BIP39 mnemonic.

With --save the seed is stored encrypted in the data directory and the account
is recorded under --label. Later runs with --save add accounts to that wallet.`,
	Args: cobra.NoArgs,
	RunE: keygen,
}

var flagKeygen struct {
	Mnemonic   string
	Passphrase string
	Words      int
	Index      uint32
	Save       bool
	Password   string
	Label      string
}

func init() {
	cmdMain.AddCommand(cmdKeygen)
	initKeygenFlags()
}

func initKeygenFlags() {
	cmdKeygen.ResetFlags()
	cmdKeygen.Flags().StringVar(&flagKeygen.Mnemonic, "mnemonic", "", "Existing BIP39 mnemonic")
	cmdKeygen.Flags().StringVar(&flagKeygen.Passphrase, "passphrase", "", "Optional BIP39 passphrase")
	cmdKeygen.Flags().IntVar(&flagKeygen.Words, "words", 24, "Length of a generated mnemonic: 12 or 24")
	cmdKeygen.Flags().Uint32Var(&flagKeygen.Index, "index", 0, "Account index (ignored with --save)")
	cmdKeygen.Flags().BoolVar(&flagKeygen.Save, "save", false, "Store the encrypted seed and record the account")
	cmdKeygen.Flags().StringVar(&flagKeygen.Password, "password", "", "Password protecting the stored seed")
	cmdKeygen.Flags().StringVar(&flagKeygen.Label, "label", "default", "Label of the recorded account")
}

func keygen(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	if flagKeygen.Save && flagKeygen.Password == "" {
		return fmt.Errorf("--save requires --password")
	}

	out := cmd.OutOrStdout()
	store := wallet.NewStore(s.cfg.DataDir)

	var seed []byte
	if flagKeygen.Save && store.HasSeed() {
		if flagKeygen.Mnemonic != "" {
			return fmt.Errorf("%w in %s", wallet.ErrWalletExists, s.cfg.DataDir)
		}
		if seed, err = store.LoadSeed(flagKeygen.Password); err != nil {
			return err
		}
	} else {
		var mnemonic wallet.Mnemonic
		if flagKeygen.Mnemonic == "" {
			if mnemonic, err = wallet.NewMnemonic(flagKeygen.Words); err != nil {
				return err
			}
			fmt.Fprintf(out, "mnemonic:   %s\n", mnemonic)
		} else if mnemonic, err = wallet.ParseMnemonic(flagKeygen.Mnemonic); err != nil {
			return err
		}
		if seed, err = mnemonic.Seed(flagKeygen.Passphrase); err != nil {
			return err
		}
		if flagKeygen.Save {
			if err := store.SaveSeed(seed, flagKeygen.Password); err != nil {
				return err
			}
			s.log.Info().Str("dir", s.cfg.DataDir).Msg("saved encrypted seed")
		}
	}

	index := flagKeygen.Index
	if flagKeygen.Save {
		err := store.Update(func(state *wallet.State) error {
			entry, err := state.Create(flagKeygen.Label)
			if err != nil {
				return err
			}
			index = entry.Index
			return nil
		})
		if err != nil {
			return err
		}
	}

	w, err := wallet.NewWallet(seed)
	if err != nil {
		return err
	}
	priv, err := w.PrivateKey(index)
	if err != nil {
		return err
	}
	acct, err := w.Account(index, s.params)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "path:       %s\n", wallet.AccountPath(index))
	fmt.Fprintf(out, "privateKey: %s\n", strings.ToUpper(hex.EncodeToString(priv)))
	fmt.Fprintf(out, "publicKey:  %s\n", acct.PublicKey)
	fmt.Fprintf(out, "address:    %s\n", acct.Address.Plain())
	return nil
}
