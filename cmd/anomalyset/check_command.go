package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"anomalyset/internal/preflight"
)

var errChecksFailed = errors.New("one or more checks failed")

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var machine string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the data directory and per-machine trees are readable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			machines, err := resolveMachines(cfg, machine, machine == "")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Dataset", colorize) {
				fmt.Fprintln(out, line)
			}
			failed := 0
			for _, result := range preflight.RunAll(cfg, machines) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
					failed++
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			if failed > 0 {
				return fmt.Errorf("%w (%d)", errChecksFailed, failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&machine, "machine", "m", "", "Only check this machine type (default: all configured)")
	return cmd
}
