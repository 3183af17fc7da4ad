package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josh-kwaku/codemart/internal/output"
	"github.com/josh-kwaku/codemart/internal/payerr"
)

const maxStdinMessage = 64 << 10

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [message...]",
		Short: "Classify a failure message (reads stdin when no message is given)",
		Example: `  payerr classify "User rejected the transaction"
  echo "execution reverted" | payerr classify --code-only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")
			if len(args) == 0 {
				b, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxStdinMessage))
				if err != nil {
					return printFailure(cmd, fmt.Errorf("read stdin: %w", err))
				}
				message = string(b)
			}

			info := payerr.Classify(message)

			codeOnly, _ := cmd.Flags().GetBool("code-only")
			if codeOnly {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), info.Code)
				return err
			}
			return output.PrintSuccess(output.DefaultConfig(cmd.OutOrStdout()), info)
		},
	}

	cmd.Flags().Bool("code-only", false, "Print only the error code")
	return cmd
}
