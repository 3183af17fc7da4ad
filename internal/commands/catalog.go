package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josh-kwaku/codemart/internal/output"
	"github.com/josh-kwaku/codemart/internal/payerr"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog [code]",
		Short: "Print the payment error catalog, or a single entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if format != "json" && format != "yaml" {
				return printFailure(cmd, fmt.Errorf("unsupported format %q: use json or yaml", format))
			}

			var data any = payerr.All()
			if len(args) == 1 {
				kind, err := payerr.ParseKind(args[0])
				if err != nil {
					return printFailure(cmd, err)
				}
				data = payerr.MustLookup(kind)
			}

			if format == "yaml" {
				return output.PrintYAML(cmd.OutOrStdout(), data)
			}
			return output.PrintSuccess(output.DefaultConfig(cmd.OutOrStdout()), data)
		},
	}

	cmd.Flags().String("format", "json", "Output format: json or yaml")
	return cmd
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the keyword heuristics in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return output.PrintSuccess(output.DefaultConfig(cmd.OutOrStdout()), payerr.Rules())
		},
	}
}
