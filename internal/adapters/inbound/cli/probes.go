package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProbesCmd(opts *options, newProbes ProbeFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "probes",
		Short: "List the available probes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd, newProbes)
			if err != nil {
				return err
			}
			for _, p := range newProbes() {
				name := p.Name()
				if cfg.IsSkipped(name) {
					name += " (skipped)"
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
