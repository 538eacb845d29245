package cmd

import (
	"encoding/hex"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/reddcoin-project/go-rddcore/descriptor"
)

type descriptorResult struct {
	Descriptor string `json:"descriptor"`
	Script     string `json:"script"`
	Address    string `json:"address,omitempty"`
}

func newDescriptorCmd(args *rootArgType) *cobra.Command {
	return &cobra.Command{
		Use:   "descriptor [descriptor]",
		Short: "Derive the output script and address of a descriptor",
		Long: `Parse an output descriptor such as wpkh(KEY) or sh(wsh(multi(2,KEY,KEY)))
and print its canonical form with checksum, its output script and, when the
script has one, its address.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, argv []string) error {
			net, err := args.network()
			if err != nil {
				return err
			}
			d, err := descriptor.Parse(argv[0], net)
			if err != nil {
				return err
			}

			script, err := d.Script()
			if err != nil {
				return err
			}
			res := descriptorResult{
				Descriptor: d.String(),
				Script:     hex.EncodeToString(script),
			}
			a, err := d.Address()
			switch {
			case errors.Is(err, descriptor.ErrNoAddress):
				logrus.WithField("type", d.Type()).Debug("Descriptor has no address")
			case err != nil:
				return err
			default:
				res.Address = a.String()
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}
