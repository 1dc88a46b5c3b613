package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"anomalyset/internal/dataset"
)

func newLabelsCommand(ctx *commandContext) *cobra.Command {
	var machine, dataDir, rules string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Print the label of every indexed file",
		Long: "Print one path<TAB>label line per file, where 1 is normal, -1 abnormal\n" +
			"and 0 unknown.",
		Args: cobra.NoArgs,
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
			walker, err := newWalker(cfg, rules, logger)
			if err != nil {
				return err
			}

			_, labels, err := walker.BuildIndex(machines[0], baseDir)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, labelDocument(labels))
			}
			out := cmd.OutOrStdout()
			for _, path := range sortedKeys(labels) {
				fmt.Fprintf(out, "%s\t%s\n", path, formatLabel(labels[path]))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&machine, "machine", "m", "", "Machine type to label (fan, valve, ...)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Dataset root (overrides paths.data_dir)")
	cmd.Flags().StringVar(&rules, "rules", "", "Rule set: reference or corrected (overrides dataset.rule_set)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print labels as a JSON object")
	return cmd
}

func labelDocument(labels dataset.LabelMap) map[string]any {
	doc := make(map[string]any, len(labels))
	for path, label := range labels {
		doc[path] = int64(label)
	}
	return doc
}

func formatLabel(label dataset.Label) string {
	return strconv.Itoa(int(label))
}
