package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-almanac/pkg/almanac/parser"
)

func newStagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stages FILE",
		Short: "Print the stage tables of an almanac in translation order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := parser.ParseFile(args[0])
			if err != nil {
				return err
			}

			order, err := input.Almanac.Order()
			if err != nil {
				return errors.Wrap(err, "unable to order stages")
			}

			out := cmd.OutOrStdout()

			_, err = fmt.Fprintf(out, "%d seeds, %d stages\n", len(input.Seeds), len(order))
			if err != nil {
				return err
			}

			for _, table := range input.Almanac.Tables() {
				_, err = fmt.Fprintf(out, "%s-to-%s: %d rules\n", table.From(), table.To(), len(table.Rules()))
				if err != nil {
					return err
				}
			}

			return nil
		},
	}
}
