package sigbatch

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mahdiidarabi/chainsig/pkg/sigerr"
	"github.com/mahdiidarabi/chainsig/pkg/sigverify"
)

// Result is the outcome of one request. Err is set for structurally invalid
// input; a signature that simply does not match has Valid false and no Err.
type Result struct {
	Index int
	Valid bool
	Err   error
}

// Report summarises a batch.
type Report struct {
	Results []Result
	Valid   int
	Invalid int
	Failed  int
}

// AllValid reports whether every request verified.
func (r *Report) AllValid() bool {
	return r.Invalid == 0 && r.Failed == 0
}

// Verifier checks batches of independent requests on a bounded worker pool.
type Verifier struct {
	parser  RequestParser
	workers int
	logger  zerolog.Logger
	metrics *Metrics
}

// NewVerifier returns a Verifier that reads JSON and runs one worker per CPU.
func NewVerifier() *Verifier {
	return &Verifier{
		parser:  &JSONParser{},
		workers: runtime.NumCPU(),
		logger:  zerolog.Nop(),
	}
}

// WithParser sets the parser used by VerifyFile.
func (v *Verifier) WithParser(parser RequestParser) *Verifier {
	v.parser = parser
	return v
}

// WithWorkers sets the number of concurrent verifications. Values below one
// are treated as one.
func (v *Verifier) WithWorkers(n int) *Verifier {
	if n < 1 {
		n = 1
	}
	v.workers = n
	return v
}

// WithLogger sets the logger. The default discards everything.
func (v *Verifier) WithLogger(logger zerolog.Logger) *Verifier {
	v.logger = logger
	return v
}

// WithMetrics enables metrics collection.
func (v *Verifier) WithMetrics(m *Metrics) *Verifier {
	v.metrics = m
	return v
}

// VerifyFile parses path and verifies every request in it.
func (v *Verifier) VerifyFile(ctx context.Context, path string) (*Report, error) {
	requests, err := v.parser.ParseRequests(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return v.VerifyRequests(ctx, requests)
}

// VerifyRequests verifies reqs concurrently. Results keep the order of reqs.
// The returned error is non-nil only when ctx is cancelled.
func (v *Verifier) VerifyRequests(ctx context.Context, reqs []*Request) (*Report, error) {
	start := time.Now()
	results := make([]Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)

	for i, req := range reqs {
		if gctx.Err() != nil {
			break
		}
		i, req := i, req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = v.verifyOne(i, req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "batch verification interrupted")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "batch verification interrupted")
	}

	report := &Report{Results: results}
	for _, res := range results {
		switch {
		case res.Err != nil:
			report.Failed++
		case res.Valid:
			report.Valid++
		default:
			report.Invalid++
		}
	}

	v.logger.Info().
		Int("total", len(reqs)).
		Int("valid", report.Valid).
		Int("invalid", report.Invalid).
		Int("failed", report.Failed).
		Dur("took", time.Since(start)).
		Msg("batch verified")
	return report, nil
}

func (v *Verifier) verifyOne(index int, req *Request) Result {
	scheme := req.PublicKey.Type.String()
	start := time.Now()

	var (
		ok  bool
		err error
	)
	if req.Prehashed {
		ok, err = sigverify.VerifyAny(req.PublicKey.Bytes(), req.Signature, req.Data)
	} else {
		ok, err = sigverify.VerifyMessage(req.PublicKey.Bytes(), req.Signature, req.Data)
	}

	outcome := outcomeInvalid
	switch {
	case err != nil:
		outcome = outcomeError
		v.logger.Debug().
			Int("index", index).
			Str("scheme", scheme).
			Str("kind", sigerr.KindOf(err).String()).
			Err(err).
			Msg("structurally invalid request")
	case ok:
		outcome = outcomeValid
	}
	v.metrics.observe(scheme, outcome, time.Since(start))

	return Result{Index: index, Valid: ok, Err: err}
}
