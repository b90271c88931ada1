package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/passgen-go/internal/app"
	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/infrastructure/cli/helpers"
)

var statusColors = map[domain.HealthStatus]string{
	domain.HealthOK:    "#22c55e",
	domain.HealthWarn:  "#eab308",
	domain.HealthError: "#ef4444",
}

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check config, randomness, history storage and clipboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.DoctorService == nil {
				return errors.New(ErrDoctorServiceUnavailable)
			}
			out := cmd.OutOrStdout()
			report, err := container.DoctorService.Run(cmd.Context())
			writeDoctorReport(out, report, helpers.UseColor(out))
			if err != nil {
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			return nil
		},
	}
}

// writeDoctorReport prints one line per check and a closing tally. The report
// is printed even when some checks failed.
func writeDoctorReport(out io.Writer, report domain.HealthReport, color bool) {
	counts := map[domain.HealthStatus]int{}
	for _, check := range report.Checks {
		counts[check.Status]++
		tag := fmt.Sprintf("[%s]", statusTag(check.Status))
		if color {
			tag = helpers.Colorize(tag, statusColors[check.Status])
		}
		fmt.Fprintf(out, "%s %s - %s\n", tag, check.Name, check.Details)
	}
	fmt.Fprintf(out, "%d ok, %d warning(s), %d failed\n",
		counts[domain.HealthOK], counts[domain.HealthWarn], counts[domain.HealthError])
}

func statusTag(s domain.HealthStatus) string {
	switch s {
	case domain.HealthOK:
		return "OK"
	case domain.HealthWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}
