// Command catapult derives identifiers and keys, and builds, signs and
// announces transactions against a Catapult node.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bitfsorg/catapult-go/chain"
	"github.com/bitfsorg/catapult-go/config"
)

var cmdMain = &cobra.Command{
	Use:           "catapult",
	Short:         "Catapult client toolkit",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run:           printUsageAndExit1,
}

var flagMain struct {
	DataDir    string
	ConfigFile string
	Network    string
	Node       string
	LogLevel   string
}

func init() {
	initMainFlags()
}

func initMainFlags() {
	cmdMain.ResetFlags()
	cmdMain.PersistentFlags().StringVarP(&flagMain.DataDir, "data-dir", "d", config.DefaultDataDir(), "Directory holding config.toml, the wallet and the journal")
	cmdMain.PersistentFlags().StringVar(&flagMain.ConfigFile, "config", "", "Configuration file (default <data-dir>/config.toml)")
	cmdMain.PersistentFlags().StringVarP(&flagMain.Network, "network", "n", "", "Network name: mainnet, testnet, mijin or mijintest")
	cmdMain.PersistentFlags().StringVar(&flagMain.Node, "node", "", "Node REST URL")
	cmdMain.PersistentFlags().StringVar(&flagMain.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
}

func main() {
	if err := cmdMain.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsageAndExit1(cmd *cobra.Command, args []string) {
	_ = cmd.Usage()
	os.Exit(1)
}

// session is the resolved configuration of one command invocation.
type session struct {
	cfg    config.Config
	params chain.Params
	log    zerolog.Logger
}

// loadSession reads the configuration file, applies the persistent flags and
// validates the result. A missing file at the default location is not an error.
func loadSession(cmd *cobra.Command) (*session, error) {
	path := flagMain.ConfigFile
	if path == "" {
		path = config.ConfigPath(flagMain.DataDir)
	}

	cfg, err := config.LoadConfig(path)
	switch {
	case errors.Is(err, config.ErrConfigNotFound) && flagMain.ConfigFile == "":
	case err != nil:
		return nil, err
	}

	if cmd.Flags().Changed("data-dir") || cfg.DataDir == "" {
		cfg.DataDir = flagMain.DataDir
	}
	if flagMain.Network != "" {
		cfg.Network = flagMain.Network
	}
	if flagMain.LogLevel != "" {
		cfg.LogLevel = flagMain.LogLevel
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	log, err := config.NewLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, params: params, log: log}, nil
}

// environ returns the process environment as a map.
func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}
