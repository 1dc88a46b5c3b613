package main

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

var jsonOptions = oj.Options{Indent: 2, Sort: true}

// writeJSON encodes v as indented JSON with sorted keys to the command's
// stdout. v must be built from maps, slices and scalars.
func writeJSON(cmd *cobra.Command, v any) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), oj.JSON(v, &jsonOptions))
	return err
}

// selectJSON evaluates a JSONPath expression against tree.
func selectJSON(tree any, selector string) ([]any, error) {
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath %q: %w", selector, err)
	}
	return x.Get(tree), nil
}
