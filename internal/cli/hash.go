package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/chainsig/internal/encoding"
	"github.com/mahdiidarabi/chainsig/pkg/sighash"
)

func addHashCommand(root *cobra.Command, a *app) {
	var (
		algorithm string
		isHex     bool
	)
	cmd := &cobra.Command{
		Use:   "hash <message>",
		Short: "Hash a message with SHA-256 or SHA-512",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := messageArg(args[0], isHex)
			if err != nil {
				return err
			}
			var digest []byte
			switch algorithm {
			case "sha256":
				digest = sighash.Sha256(data).Bytes()
			case "sha512":
				digest = sighash.Sha512(data).Bytes()
			default:
				return errors.Errorf("unknown algorithm %q (sha256|sha512)", algorithm)
			}
			return a.printResult(cmd.OutOrStdout(),
				field{"algorithm", algorithm},
				field{"digest", encoding.EncodeHex(digest)},
			)
		},
	}
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "sha256", "hash algorithm (sha256|sha512)")
	cmd.Flags().BoolVar(&isHex, "hex", false, "message is hex encoded")
	root.AddCommand(cmd)
}
