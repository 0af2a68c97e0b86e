// Package eddsasig implements Ed25519 signing and verification (RFC 8032)
// in both the pure and the pre-hashed (Ed25519ph) variants.
//
// The two variants never produce interchangeable signatures. Sign output
// verifies only with Verify, SignPrehashed output (a PrehashedSignature)
// only with VerifyPrehashed and the same Context:
//
//	sk := eddsasig.SecretKey(seed)
//	pub := eddsasig.DerivePublicKey(sk)
//
//	sig := eddsasig.Sign(sk, msg)
//	ok, err := eddsasig.Verify(pub, sig, msg)
//
//	digest := sighash.Sha512(msg)
//	phSig, err := eddsasig.SignPrehashed(sk, digest, eddsasig.WithContext("app"))
//	ok, err = eddsasig.VerifyPrehashed(pub, phSig, digest, eddsasig.WithContext("app"))
//
// Verification follows the Go standard library rules: cofactorless equation,
// canonical S required. Public keys that do not decode to a curve point and
// signatures with a non-canonical S are reported as errors; everything else
// that does not verify returns false.
package eddsasig
