package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/reddcoin-project/go-rddcore/address"
	"github.com/reddcoin-project/go-rddcore/network"
)

type rootArgType struct {
	verbose      bool
	debug        bool
	networksFile string
	networkName  string
	typeName     string
}

// NewRootCmd returns the rddaddr command tree.
func NewRootCmd() *cobra.Command {
	args := &rootArgType{}

	rootCmd := &cobra.Command{
		Use:   "rddaddr",
		Short: "Reddcoin address tool",
		Long: `rddaddr decodes and validates Reddcoin addresses and derives
legacy, segwit, multisig and taproot addresses from public keys.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			initLogging(args.verbose, args.debug)
			return loadNetworks(args.networksFile)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&args.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.BoolVarP(&args.debug, "debug", "d", false, "Enable debug logging")
	flags.StringVar(&args.networksFile, "networks", "", "YAML file with extra network definitions")
	flags.StringVar(&args.networkName, "network", "", "Network name or alias (default livenet)")
	flags.StringVar(&args.typeName, "type", "", "Address type")

	rootCmd.AddCommand(
		newDecodeCmd(args),
		newValidateCmd(args),
		newPubKeyCmd(args),
		newMultisigCmd(args),
		newTaprootCmd(args),
		newDescriptorCmd(args),
		newNetworksCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadNetworks(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open networks file: %w", err)
	}
	defer f.Close()

	added, err := network.DefaultRegistry().RegisterFrom(f)
	if err != nil {
		return fmt.Errorf("load networks from %s: %w", path, err)
	}
	for _, p := range added {
		logrus.WithField("network", p.Name).Info("Registered network")
	}
	return nil
}

// network resolves the --network flag, or nil when it is unset.
func (a *rootArgType) network() (*network.Params, error) {
	if a.networkName == "" {
		return nil, nil
	}
	net := network.Get(a.networkName)
	if net == nil {
		return nil, fmt.Errorf("unknown network %q", a.networkName)
	}
	return net, nil
}

// addrType resolves the --type flag, falling back to def when it is unset.
func (a *rootArgType) addrType(def address.Type) (address.Type, error) {
	if a.typeName == "" {
		return def, nil
	}
	return address.ParseType(a.typeName)
}
