package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var machine, dataDir string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "List the leaf directories a machine type would be indexed from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			machines, err := resolveMachines(cfg, machine, false)
			if err != nil {
				return err
			}
			baseDir, err := resolveDataDir(cfg, dataDir)
			if err != nil {
				return err
			}
			walker, err := newWalker(cfg, "", logger)
			if err != nil {
				return err
			}

			leaves := walker.Plan(machines[0], baseDir)
			rows := make([][]string, 0, len(leaves))
			missing := 0
			for _, leaf := range leaves {
				exists := dirExists(leaf.Dir)
				if !exists {
					missing++
				}
				rows = append(rows, []string{leaf.Path.String(), leaf.Dir, yesNo(exists)})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"leaf", "directory", "exists"}, rows, nil, nil))
			fmt.Fprintf(out, "%d leaves, %d missing\n", len(leaves), missing)
			return nil
		},
	}

	cmd.Flags().StringVarP(&machine, "machine", "m", "", "Machine type to plan (fan, valve, ...)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Dataset root (overrides paths.data_dir)")
	return cmd
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
