package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/passgen-go/internal/app"
	"github.com/doeshing/passgen-go/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd builds the container and wires the cobra root command. The
// returned func releases the container and must be called after Execute.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, func() error, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, nil, err
	}
	return NewRootCmdWithContainer(container, opts), container.Close, nil
}

// NewRootCmdWithContainer wires the commands around an existing container.
// Running the root without a subcommand generates passwords.
func NewRootCmdWithContainer(container *app.Container, opts Options) *cobra.Command {
	generateCmd := commands.NewGenerateCommand(container)

	root := &cobra.Command{
		Use:           "passgen",
		Short:         "passgen - random password generator",
		Long:          "passgen generates random passwords, rates their strength and keeps the last ten in a local history.",
		Args:          cobra.NoArgs,
		RunE:          generateCmd.RunE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Flags().AddFlagSet(generateCmd.Flags())
	root.PersistentFlags().BoolP("verbose", "v", opts.Verbose, "Enable debug logging")

	root.AddCommand(generateCmd)
	root.AddCommand(commands.NewScoreCommand())
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewSessionCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root
}
