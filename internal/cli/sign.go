package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/chainsig/internal/encoding"
	"github.com/mahdiidarabi/chainsig/pkg/ecdsasig"
	"github.com/mahdiidarabi/chainsig/pkg/eddsasig"
	"github.com/mahdiidarabi/chainsig/pkg/sighash"
	"github.com/mahdiidarabi/chainsig/pkg/sigverify"
)

type signFlags struct {
	secretFlags
	isHex       bool
	native      bool
	prehashed   bool
	recoverable bool
	context     string
}

func addSignCommand(root *cobra.Command, a *app) {
	var flags signFlags
	cmd := &cobra.Command{
		Use:   "sign <message>",
		Short: "Sign a message",
		Long: `Sign a message with Ed25519 or secp256k1 ECDSA.

With --native the signature is produced the way the chain checks it: the
message is hashed once with SHA-256, Ed25519 signs the digest and secp256k1
returns a 65-byte recoverable signature. Such signatures verify with
"sigtool verify".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kt, err := flags.keyType()
			if err != nil {
				return err
			}
			message, err := messageArg(args[0], flags.isHex)
			if err != nil {
				return err
			}

			var scheme string
			var sig []byte
			if kt == sigverify.KeyTypeEd25519 {
				scheme, sig, err = signEd25519(cmd, flags, message)
			} else {
				scheme, sig, err = signSecp256k1(flags, message)
			}
			if err != nil {
				return err
			}

			a.logger.Debug().Str("scheme", scheme).Int("message_len", len(message)).Msg("message signed")
			return a.printResult(cmd.OutOrStdout(),
				field{"scheme", scheme},
				field{"signature", encoding.EncodeHex(sig)},
			)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&flags.curve, "curve", "c", "ed25519", "curve (ed25519|secp256k1)")
	f.StringVarP(&flags.secret, "secret", "s", "", "secret key, hex")
	f.BoolVar(&flags.isHex, "hex", false, "message is hex encoded")
	f.BoolVar(&flags.native, "native", false, "produce a chain-native signature")
	f.BoolVar(&flags.prehashed, "prehashed", false, "ed25519: sign SHA-512(message) with Ed25519ph")
	f.StringVar(&flags.context, "context", "", "ed25519ph: context string")
	f.BoolVar(&flags.recoverable, "recoverable", false, "secp256k1: append the recovery id")
	cmd.MarkFlagsMutuallyExclusive("native", "prehashed")
	root.AddCommand(cmd)
}

func signEd25519(cmd *cobra.Command, flags signFlags, message []byte) (string, []byte, error) {
	if flags.recoverable {
		return "", nil, errors.New("--recoverable applies to secp256k1 only")
	}
	sk, err := flags.ed25519Secret()
	if err != nil {
		return "", nil, err
	}

	switch {
	case flags.native:
		digest := sighash.Sha256(message)
		sig := eddsasig.Sign(sk, digest[:])
		return "ed25519", sig[:], nil
	case flags.prehashed:
		ctx := eddsasig.NoContext
		if cmd.Flags().Changed("context") {
			ctx = eddsasig.WithContext(flags.context)
		}
		sig, err := eddsasig.SignPrehashed(sk, sighash.Sha512(message), ctx)
		if err != nil {
			return "", nil, err
		}
		return "ed25519ph", sig[:], nil
	default:
		sig := eddsasig.Sign(sk, message)
		return "ed25519", sig[:], nil
	}
}

func signSecp256k1(flags signFlags, message []byte) (string, []byte, error) {
	if flags.prehashed || flags.context != "" {
		return "", nil, errors.New("--prehashed and --context apply to ed25519 only")
	}
	sk, err := flags.secp256k1Secret()
	if err != nil {
		return "", nil, err
	}

	if flags.native || flags.recoverable {
		sig, err := ecdsasig.SignRecoverable(sk, message)
		if err != nil {
			return "", nil, err
		}
		return "secp256k1-recoverable", sig[:], nil
	}
	sig, err := ecdsasig.Sign(sk, message)
	if err != nil {
		return "", nil, err
	}
	return "secp256k1", sig[:], nil
}
