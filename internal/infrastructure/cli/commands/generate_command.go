package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/passgen-go/internal/app"
	"github.com/doeshing/passgen-go/internal/application/session"
	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/infrastructure/cli/helpers"
)

type generateFlags struct {
	length    int
	upper     bool
	lower     bool
	numbers   bool
	symbols   bool
	count     int
	copy      bool
	noHistory bool
	quiet     bool
}

// NewGenerateCommand creates the generate command. Flag defaults come from
// the generator section of the config.
func NewGenerateCommand(container *app.Container) *cobra.Command {
	var f generateFlags
	defaults := container.Config.GetGenerationOptions()

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen", "g"},
		Short:   "Generate passwords",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), container, f)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&f.length, "length", "l", defaults.Length, "Password length (8-64)")
	flags.BoolVar(&f.upper, "uppercase", defaults.IncludeUppercase, "Include A-Z")
	flags.BoolVar(&f.lower, "lowercase", defaults.IncludeLowercase, "Include a-z")
	flags.BoolVar(&f.numbers, "numbers", defaults.IncludeNumbers, "Include 0-9")
	flags.BoolVar(&f.symbols, "symbols", defaults.IncludeSymbols, "Include symbols")
	flags.IntVarP(&f.count, "count", "n", DefaultGenerateCount, "Number of passwords to generate")
	flags.BoolVarP(&f.copy, "copy", "c", false, "Copy the last password to the clipboard")
	flags.BoolVar(&f.noHistory, "no-history", false, "Do not record the passwords in history")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "Print passwords only")
	return cmd
}

func runGenerate(ctx context.Context, out, errOut io.Writer, container *app.Container, f generateFlags) error {
	if f.count < 1 {
		return fmt.Errorf("--count must be >= 1")
	}

	sess := container.NewSession()
	if f.noHistory {
		sess.History = nil
	}
	opts := container.Config.GetGenerationOptions()
	opts.Length = f.length
	opts.IncludeUppercase = f.upper
	opts.IncludeLowercase = f.lower
	opts.IncludeNumbers = f.numbers
	opts.IncludeSymbols = f.symbols
	sess.SetOptions(opts)

	color := helpers.UseColor(out)
	for i := 0; i < f.count; i++ {
		entry, err := sess.Generate(ctx)
		if entry.Password == "" {
			return err
		}
		fmt.Fprintln(out, entry.Password)
		if !f.quiet {
			fmt.Fprintf(out, "  strength %s\n", helpers.FormatStrength(domain.StrengthFor(entry.Strength), color))
		}
		if err != nil {
			fmt.Fprintln(errOut, "warning:", err)
		}
	}

	if f.copy {
		return copyCurrent(ctx, errOut, sess)
	}
	return nil
}

// copyCurrent waits for the asynchronous clipboard write to finish.
func copyCurrent(ctx context.Context, out io.Writer, sess *session.Service) error {
	select {
	case <-sess.Copy(ctx):
	case <-ctx.Done():
		return ctx.Err()
	}
	if !sess.Copied() {
		return errors.New(ErrCopyFailed)
	}
	fmt.Fprintln(out, MsgCopied)
	return nil
}
