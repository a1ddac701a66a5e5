package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bitfsorg/catapult-go/account"
	"github.com/bitfsorg/catapult-go/wallet"
)

// signerFlags select the signing account: a raw private key, or a labelled
// account of the wallet saved by keygen.
type signerFlags struct {
	PrivateKey string
	Account    string
	Password   string
}

func (f *signerFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.PrivateKey, "private-key", "", "Hex private key of the signer")
	fs.StringVar(&f.Account, "account", "", "Label of a saved wallet account to sign with")
	fs.StringVar(&f.Password, "password", "", "Wallet password (with --account)")
}

func (s *session) signer(f *signerFlags) (*account.Account, error) {
	switch {
	case f.PrivateKey != "":
		return account.AccountFromPrivateKey(f.PrivateKey, s.params.Network, s.params.Schema)
	case f.Account == "":
		return nil, fmt.Errorf("one of --private-key or --account is required")
	}

	w, state, err := wallet.NewStore(s.cfg.DataDir).Open(f.Password)
	if err != nil {
		return nil, err
	}
	entry, err := state.Get(f.Account)
	if err != nil {
		return nil, err
	}
	return w.Account(entry.Index, s.params)
}
