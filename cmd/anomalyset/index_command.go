package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"anomalyset/internal/dataset"
)

type indexOptions struct {
	machine  string
	all      bool
	dataDir  string
	rules    string
	json     bool
	selector string
}

func newIndexCommand(ctx *commandContext) *cobra.Command {
	var opts indexOptions

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Classify every leaf directory of a machine type",
		Long: "Walk the DCASE and MIMII trees for a machine type and sort each leaf\n" +
			"directory's entries into normal, abnormal and unknown buckets.",
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
			machines, err := resolveMachines(cfg, opts.machine, opts.all)
			if err != nil {
				return err
			}
			baseDir, err := resolveDataDir(cfg, opts.dataDir)
			if err != nil {
				return err
			}
			walker, err := newWalker(cfg, opts.rules, logger)
			if err != nil {
				return err
			}

			trees := make(map[string]any, len(machines))
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for i, machine := range machines {
				index, labels, err := walker.BuildIndex(machine, baseDir)
				if err != nil {
					return err
				}
				if opts.json || opts.selector != "" {
					trees[machine] = index.Tree()
					continue
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				writeIndexTable(out, machine, walker.Leaves(index, machine, baseDir), len(labels), colorize)
			}
			if !opts.json && opts.selector == "" {
				return nil
			}

			var doc any = trees
			if len(machines) == 1 {
				doc = trees[machines[0]]
			}
			if opts.selector != "" {
				selected, err := selectJSON(doc, opts.selector)
				if err != nil {
					return err
				}
				doc = selected
			}
			return writeJSON(cmd, doc)
		},
	}

	cmd.Flags().StringVarP(&opts.machine, "machine", "m", "", "Machine type to index (fan, valve, ...)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Index every configured machine type")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "Dataset root (overrides paths.data_dir)")
	cmd.Flags().StringVar(&opts.rules, "rules", "", "Rule set: reference or corrected (overrides dataset.rule_set)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the nested index as JSON")
	cmd.Flags().StringVar(&opts.selector, "select", "", "JSONPath expression applied to the JSON index (implies --json)")
	return cmd
}

func writeIndexTable(out io.Writer, machine string, leaves []dataset.Leaf, files int, colorize bool) {
	for _, line := range renderSectionHeader(machine, colorize) {
		fmt.Fprintln(out, line)
	}

	headers := []string{"leaf", "normal", "abnormal", "unknown", "total"}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight}
	rows := make([][]string, 0, len(leaves))
	totals := make(map[dataset.Class]int, len(dataset.Classes))
	for _, leaf := range leaves {
		counts := leaf.Bucket.Counts()
		row := []string{leaf.Path.String()}
		for _, class := range dataset.Classes {
			row = append(row, humanize.Comma(int64(counts[class])))
			totals[class] += counts[class]
		}
		row = append(row, humanize.Comma(int64(leaf.Bucket.Len())))
		rows = append(rows, row)
	}

	footer := []string{"total"}
	for _, class := range dataset.Classes {
		footer = append(footer, humanize.Comma(int64(totals[class])))
	}
	footer = append(footer, humanize.Comma(int64(files)))

	fmt.Fprintln(out, renderTable(headers, rows, footer, aligns))
	fmt.Fprintf(out, "%s leaves, %s files\n", humanize.Comma(int64(len(leaves))), humanize.Comma(int64(files)))
}
