package cmd

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/btcsuite/btcd/txscript"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/reddcoin-project/go-rddcore/address"
	"github.com/reddcoin-project/go-rddcore/network"
	"github.com/reddcoin-project/go-rddcore/pubkey"
	"github.com/reddcoin-project/go-rddcore/taproot"
)

type addressResult struct {
	Address string `json:"address"`
	address.Object
	Script string `json:"script"`
}

func printAddress(w io.Writer, a *address.Address) error {
	script, err := a.OutputScript()
	if err != nil {
		return err
	}
	return printJSON(w, addressResult{
		Address: a.String(),
		Object:  a.ToObject(),
		Script:  hex.EncodeToString(script),
	})
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newDecodeCmd(args *rootArgType) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [address]",
		Short: "Decode an address into its hash, type and network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, argv []string) error {
			net, err := args.network()
			if err != nil {
				return err
			}
			typ, err := args.addrType(0)
			if err != nil {
				return err
			}

			a, err := address.Decode(argv[0], net, typ)
			if err != nil {
				return err
			}
			return printAddress(cmd.OutOrStdout(), a)
		},
	}
}

func newValidateCmd(args *rootArgType) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [address]",
		Short: "Check whether an address is valid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, argv []string) error {
			net, err := args.network()
			if err != nil {
				return err
			}
			typ, err := args.addrType(0)
			if err != nil {
				return err
			}

			if err := address.ValidationError(argv[0], net, typ); err != nil {
				logrus.WithError(err).Debug("Address is invalid")
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
}

func newPubKeyCmd(args *rootArgType) *cobra.Command {
	return &cobra.Command{
		Use:   "pubkey [hex]",
		Short: "Derive an address from a public key",
		Long: `Derive an address from a hex encoded SEC public key. The --type flag
selects pubkeyhash, scripthash (P2SH-P2WPKH), witnesspubkeyhash or taproot and
defaults to witnesspubkeyhash.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, argv []string) error {
			net, err := args.network()
			if err != nil {
				return err
			}
			typ, err := args.addrType(address.WitnessPubKeyHash)
			if err != nil {
				return err
			}
			pub, err := pubkey.FromHex(argv[0])
			if err != nil {
				return err
			}

			a, err := address.FromPublicKey(pub, net, typ)
			if err != nil {
				return err
			}
			return printAddress(cmd.OutOrStdout(), a)
		},
	}
}

func newMultisigCmd(args *rootArgType) *cobra.Command {
	var nested bool

	cmd := &cobra.Command{
		Use:   "multisig [threshold] [hex]...",
		Short: "Derive a multisig address from public keys",
		Long: `Derive a threshold multisig address. Keys are committed in the order
given. The --type flag selects scripthash or witnessscripthash and defaults to
witnessscripthash; --nested wraps the witness script hash into P2SH.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, argv []string) error {
			net, err := args.network()
			if err != nil {
				return err
			}
			typ, err := args.addrType(address.WitnessScriptHash)
			if err != nil {
				return err
			}
			threshold, err := strconv.Atoi(argv[0])
			if err != nil {
				return fmt.Errorf("invalid threshold %q: %w", argv[0], err)
			}

			pubs := make([]*pubkey.PublicKey, 0, len(argv)-1)
			for _, s := range argv[1:] {
				pub, err := pubkey.FromHex(s)
				if err != nil {
					return err
				}
				pubs = append(pubs, pub)
			}

			var a *address.Address
			if nested {
				a, err = address.NewNestedWitnessMultisig(pubs, threshold, net)
			} else {
				a, err = address.NewMultisig(pubs, threshold, net, typ)
			}
			if err != nil {
				return err
			}
			return printAddress(cmd.OutOrStdout(), a)
		},
	}
	cmd.Flags().BoolVar(&nested, "nested", false, "Wrap the witness script hash into P2SH")
	return cmd
}

type taprootResult struct {
	InternalKey  string   `json:"internalKey"`
	MerkleRoot   string   `json:"merkleRoot,omitempty"`
	TweakedXOnly string   `json:"tweakedKey"`
	Parity       bool     `json:"parity"`
	Address      string   `json:"address"`
	ControlBlock []string `json:"controlBlocks,omitempty"`
}

func newTaprootCmd(args *rootArgType) *cobra.Command {
	var (
		merkleRoot string
		leaves     []string
	)

	cmd := &cobra.Command{
		Use:   "taproot [hex]",
		Short: "Tweak a public key and derive its taproot address",
		Long: `Tweak a public key with BIP341 and derive its taproot address. The key
commits to --merkle-root, or to the tree assembled from the --leaf scripts, or
to nothing (key path only). With --leaf the control block of every leaf is
printed as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, argv []string) error {
			net, err := args.network()
			if err != nil {
				return err
			}
			if net == nil {
				net = network.DefaultRegistry().Default()
			}
			pub, err := pubkey.FromHex(argv[0])
			if err != nil {
				return err
			}
			if merkleRoot != "" && len(leaves) > 0 {
				return errors.New("--merkle-root and --leaf are mutually exclusive")
			}

			root, err := hex.DecodeString(merkleRoot)
			if err != nil {
				return fmt.Errorf("invalid merkle root: %w", err)
			}
			var tree *taproot.ScriptTree
			if len(leaves) > 0 {
				scripts := make([][]byte, 0, len(leaves))
				for _, l := range leaves {
					script, err := hex.DecodeString(l)
					if err != nil {
						return fmt.Errorf("invalid leaf script %q: %w", l, err)
					}
					scripts = append(scripts, script)
				}
				if tree, err = taproot.NewScriptTreeFromScripts(scripts...); err != nil {
					return err
				}
				root = tree.MerkleRoot()
				logrus.WithField("leaves", tree.Len()).Debug("Assembled script tree")
			}

			res, err := pub.TapTweak(root)
			if err != nil {
				return err
			}
			a, err := address.NewAddress(res.TweakedXOnly, net, address.Taproot)
			if err != nil {
				return err
			}

			out := taprootResult{
				InternalKey:  hex.EncodeToString(pub.XOnly()),
				MerkleRoot:   hex.EncodeToString(root),
				TweakedXOnly: hex.EncodeToString(res.TweakedXOnly),
				Parity:       res.Parity,
				Address:      a.String(),
			}
			if tree != nil {
				for _, script := range leaves {
					b, _ := hex.DecodeString(script)
					proof, err := tree.Proof(txscript.NewBaseTapLeaf(b))
					if err != nil {
						return err
					}
					cb, err := proof.ControlBlock(pub)
					if err != nil {
						return err
					}
					out.ControlBlock = append(out.ControlBlock, cb.String())
				}
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&merkleRoot, "merkle-root", "", "Hex encoded script tree root")
	cmd.Flags().StringArrayVar(&leaves, "leaf", nil, "Hex encoded tapscript leaf, repeatable")
	return cmd
}

type networkResult struct {
	Name   string `json:"name"`
	Alias  string `json:"alias,omitempty"`
	Bech32 string `json:"bech32prefix"`
	PKH    byte   `json:"pubkeyhash"`
	SH     byte   `json:"scripthash"`
	Magic  uint32 `json:"networkMagic"`
	Port   uint16 `json:"port"`
}

func newNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List the registered networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nets := network.DefaultRegistry().All()
			out := make([]networkResult, 0, len(nets))
			for _, p := range nets {
				out = append(out, networkResult{
					Name:   p.Name,
					Alias:  p.Alias,
					Bech32: p.Bech32,
					PKH:    p.PubKeyHash,
					SH:     p.ScriptHash,
					Magic:  p.NetworkMagic,
					Port:   p.Port,
				})
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}
