package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/version"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show passgen version and generator limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version.Version)
				return nil
			}
			displayVersionInformation(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

func displayVersionInformation(out io.Writer) {
	fmt.Fprintf(out, "passgen %s", version.Version)
	if version.Commit != "" {
		fmt.Fprintf(out, " (%s", version.Commit)
		if version.BuildDate != "" {
			fmt.Fprintf(out, ", built %s", version.BuildDate)
		}
		fmt.Fprint(out, ")")
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  lengths    %d-%d (default %d)\n", domain.MinPasswordLength, domain.MaxPasswordLength, domain.DefaultPasswordLength)
	fmt.Fprintf(out, "  history    last %d passwords, copied flag clears after %s\n", domain.HistoryCapacity, domain.CopiedResetDelay)
	fmt.Fprintf(out, "  runtime    %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
