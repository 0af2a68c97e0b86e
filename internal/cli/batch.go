package cli

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/chainsig/pkg/sigbatch"
)

type batchFailure struct {
	Index int    `json:"index"`
	Error string `json:"error,omitempty"`
}

func addBatchCommand(root *cobra.Command, a *app) {
	var metricsFile string
	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Verify every signature in a JSON or CSV file",
		Long: `Verify a file of signatures concurrently.

Each entry names a public key (<curve>:<base58>), a signature (0x-hex or
base58) and either a message or a SHA-256 digest. Field names, the file format
and the worker count come from the batch section of the configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verifier := sigbatch.NewVerifier().
				WithParser(a.cfg.Batch.Parser()).
				WithLogger(a.logger)
			if a.cfg.Batch.Workers > 0 {
				verifier = verifier.WithWorkers(a.cfg.Batch.Workers)
			}

			reg := prometheus.NewRegistry()
			metrics, err := sigbatch.NewMetrics(reg)
			if err != nil {
				return errors.Wrap(err, "failed to register metrics")
			}
			verifier = verifier.WithMetrics(metrics)

			report, err := verifier.VerifyFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if metricsFile != "" {
				if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
					return errors.Wrap(err, "failed to write metrics")
				}
			}

			var rejected []batchFailure
			for _, res := range report.Results {
				switch {
				case res.Err != nil:
					rejected = append(rejected, batchFailure{Index: res.Index, Error: res.Err.Error()})
				case !res.Valid:
					rejected = append(rejected, batchFailure{Index: res.Index})
				}
			}

			if err := a.printResult(cmd.OutOrStdout(),
				field{"total", len(report.Results)},
				field{"valid", report.Valid},
				field{"invalid", report.Invalid},
				field{"failed", report.Failed},
				field{"rejected", rejected},
			); err != nil {
				return err
			}
			if !report.AllValid() {
				return errors.Wrapf(errSignatureMismatch, "%d of %d signatures rejected",
					report.Invalid+report.Failed, len(report.Results))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.String("format", "json", "batch file format (json|csv)")
	f.Int("workers", 0, "concurrent verifications (0 = one per CPU)")
	f.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	_ = a.v.BindPFlag("batch.format", f.Lookup("format"))
	_ = a.v.BindPFlag("batch.workers", f.Lookup("workers"))
	root.AddCommand(cmd)
}
