// Package ecdsasig implements deterministic ECDSA over secp256k1.
//
// Signing hashes the message with SHA-256, derives the nonce per RFC 6979 from
// the secret key and the digest, and always returns signatures in low-S
// (canonical) form, so signing is a pure function of its inputs:
//
//	sk, err := ecdsasig.ParseSecretKey(secret)
//	if err != nil {
//	    return err
//	}
//	compressed, _, err := ecdsasig.DerivePublicKey(sk)
//	sig, err := ecdsasig.Sign(sk, []byte("This is some message"))
//	ok, err := ecdsasig.Verify(compressed[:], sig, []byte("This is some message"))
//
// Verification accepts compressed (33 bytes), uncompressed (65 bytes) and
// header-less raw (64 bytes) public keys, and accepts both low and high S.
// Only signing canonicalises. A signature that does not match returns false;
// errors are reserved for structurally invalid keys and signatures.
//
// # Recoverable signatures
//
// SignRecoverable returns r‖s‖recovery_id. The r‖s part is the same as the
// output of Sign. If the underlying signer ever hands back a high-S value the
// call fails with sigerr.ErrNonCanonicalRecoverableSignature rather than
// normalising, since flipping s would invalidate the recovery id.
package ecdsasig
