package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/infrastructure/cli/helpers"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// NewScoreCommand creates the score command. Without an argument the
// password is read from stdin, hidden when stdin is a terminal.
func NewScoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "score [password]",
		Short: "Rate the strength of a password",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pw string
			if len(args) == 1 {
				pw = args[0]
			} else {
				var err error
				if pw, err = readSecret(cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), helpers.FormatStrength(domain.Evaluate(pw), helpers.UseColor(cmd.OutOrStdout())))
			return nil
		},
	}
}

func readSecret(in io.Reader, prompt io.Writer) (string, error) {
	if f, isFile := in.(*os.File); isFile && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		raw, err := readPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
