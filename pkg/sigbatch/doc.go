// Package sigbatch verifies many independent signatures concurrently.
//
// Requests come from a JSON or CSV file (see JSONParser and CSVParser) or
// from memory. Each request names a tagged public key in its text form, a
// signature and either a message or a SHA-256 digest:
//
//	v := sigbatch.NewVerifier().WithWorkers(8).WithLogger(logger)
//	report, err := v.VerifyFile(ctx, "signatures.json")
//
// A request with a malformed key or signature fails on its own; the rest of
// the batch is still verified.
package sigbatch
