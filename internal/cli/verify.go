package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/chainsig/internal/encoding"
	"github.com/mahdiidarabi/chainsig/pkg/eddsasig"
	"github.com/mahdiidarabi/chainsig/pkg/sigerr"
	"github.com/mahdiidarabi/chainsig/pkg/sighash"
	"github.com/mahdiidarabi/chainsig/pkg/sigverify"
)

type verifyFlags struct {
	key       string
	signature string
	isHex     bool
	raw       bool
	ed25519ph bool
	context   string
}

func addVerifyCommand(root *cobra.Command, a *app) {
	var flags verifyFlags
	cmd := &cobra.Command{
		Use:   "verify <message>",
		Short: "Verify a signature against a tagged public key",
		Long: `Verify a chain-native signature. The scheme is chosen from the key's curve
and the signature length: ed25519 with 64 bytes, secp256k1 with 65 bytes.

By default the message is hashed once with SHA-256 before dispatch. With --raw
the message bytes are passed through unchanged; secp256k1 then requires a
32-byte digest. --ed25519ph checks an Ed25519ph signature over SHA-512(message).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := sigverify.ParsePublicKey(flags.key)
			if err != nil {
				return err
			}
			sig, err := encoding.DecodeHex(flags.signature)
			if err != nil {
				return errors.Wrap(err, "failed to parse signature")
			}
			data, err := messageArg(args[0], flags.isHex)
			if err != nil {
				return err
			}

			var ok bool
			switch {
			case flags.ed25519ph:
				ok, err = verifyEd25519ph(cmd, flags, pk, sig, data)
			case flags.raw:
				ok, err = sigverify.VerifyAny(pk.Bytes(), sig, data)
			default:
				ok, err = sigverify.VerifyMessage(pk.Bytes(), sig, data)
			}
			if err != nil {
				a.logger.Debug().Str("kind", sigerr.KindOf(err).String()).Msg("verification rejected input")
				return err
			}

			if err := a.printResult(cmd.OutOrStdout(),
				field{"public_key", pk.String()},
				field{"valid", ok},
			); err != nil {
				return err
			}
			if !ok {
				return errSignatureMismatch
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&flags.key, "key", "k", "", "public key, <curve>:<base58>")
	f.StringVarP(&flags.signature, "signature", "S", "", "signature, hex")
	f.BoolVar(&flags.isHex, "hex", false, "message is hex encoded")
	f.BoolVar(&flags.raw, "raw", false, "do not hash the message before dispatch")
	f.BoolVar(&flags.ed25519ph, "ed25519ph", false, "verify an Ed25519ph signature")
	f.StringVar(&flags.context, "context", "", "ed25519ph: context string")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("signature")
	cmd.MarkFlagsMutuallyExclusive("raw", "ed25519ph")
	root.AddCommand(cmd)
}

func verifyEd25519ph(cmd *cobra.Command, flags verifyFlags, pk sigverify.PublicKey, sig, message []byte) (bool, error) {
	if pk.Type != sigverify.KeyTypeEd25519 {
		return false, errors.Wrapf(sigerr.ErrInvalidKeyEncoding, "--ed25519ph needs an ed25519 key, got %s", pk.Type)
	}
	pub, err := eddsasig.ParsePublicKey(pk.Data)
	if err != nil {
		return false, err
	}
	phSig, err := eddsasig.ParsePrehashedSignature(sig)
	if err != nil {
		return false, err
	}
	ctx := eddsasig.NoContext
	if cmd.Flags().Changed("context") {
		ctx = eddsasig.WithContext(flags.context)
	}
	return eddsasig.VerifyPrehashed(pub, phSig, sighash.Sha512(message), ctx)
}
