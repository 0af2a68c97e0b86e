package cli

import (
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/chainsig/internal/encoding"
	"github.com/mahdiidarabi/chainsig/pkg/ecdsasig"
	"github.com/mahdiidarabi/chainsig/pkg/eddsasig"
	"github.com/mahdiidarabi/chainsig/pkg/sigverify"
)

func addDeriveCommand(root *cobra.Command, a *app) {
	var flags secretFlags
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive the public key of a secret key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kt, err := flags.keyType()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if kt == sigverify.KeyTypeEd25519 {
				sk, err := flags.ed25519Secret()
				if err != nil {
					return err
				}
				pub := eddsasig.DerivePublicKey(sk)
				return a.printResult(out,
					field{"public_key", sigverify.NewEd25519PublicKey(pub).String()},
					field{"public_key_hex", encoding.EncodeHex(pub[:])},
				)
			}

			sk, err := flags.secp256k1Secret()
			if err != nil {
				return err
			}
			compressed, uncompressed, err := ecdsasig.DerivePublicKey(sk)
			if err != nil {
				return err
			}
			return a.printResult(out,
				field{"public_key", sigverify.NewSecp256k1PublicKey(uncompressed.Raw()).String()},
				field{"compressed", encoding.EncodeHex(compressed[:])},
				field{"uncompressed", encoding.EncodeHex(uncompressed[:])},
			)
		},
	}
	cmd.Flags().StringVarP(&flags.curve, "curve", "c", "ed25519", "curve (ed25519|secp256k1)")
	cmd.Flags().StringVarP(&flags.secret, "secret", "s", "", "secret key, hex")
	root.AddCommand(cmd)
}
