package commands

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/josh-kwaku/codemart/internal/logging"
	"github.com/josh-kwaku/codemart/internal/output"
)

// Execute runs the payerr CLI.
func Execute(version string) error {
	slog.SetDefault(logging.New(os.Stderr, "payerr", os.Getenv("LOG_LEVEL"), "production"))

	err := NewRootCmd(version).Execute()
	if err != nil {
		var pe printedError
		if !errors.As(err, &pe) {
			slog.Error("command failed", "error", err.Error())
		}
	}
	return err
}

func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "payerr",
		Short:         "Classify payment failure messages into user-facing errors",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			showVersion, _ := cmd.Flags().GetBool("version")
			if showVersion {
				type resp struct {
					Version string `json:"version"`
				}
				return output.PrintSuccess(output.DefaultConfig(cmd.OutOrStdout()), resp{Version: version})
			}
			return cmd.Help()
		},
	}

	root.Flags().BoolP("version", "v", false, "version for payerr")

	root.AddCommand(newClassifyCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newTokenCmd())

	return root
}

// printedError marks an error whose JSON envelope was already written.
type printedError struct {
	err error
}

func (e printedError) Error() string {
	return "error already printed"
}

func (e printedError) Unwrap() error {
	return e.err
}

func printFailure(cmd *cobra.Command, err error) error {
	if perr := output.PrintError(output.DefaultConfig(cmd.OutOrStdout()), err); perr != nil {
		return perr
	}
	return printedError{err: err}
}
