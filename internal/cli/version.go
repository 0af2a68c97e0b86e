package cli

import "github.com/spf13/cobra"

func addVersionCommand(root *cobra.Command, a *app) {
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := a.info
			if info.Version == "" {
				info.Version = "dev"
			}
			return a.printResult(cmd.OutOrStdout(),
				field{"version", info.Version},
				field{"commit", info.Commit},
				field{"date", info.Date},
			)
		},
	})
}
