package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/passgen-go/internal/app"
	"github.com/doeshing/passgen-go/internal/application/history"
	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/infrastructure/cli/helpers"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the last generated passwords",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container, false)
		},
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryCopyCommand(container),
		newHistoryRemoveCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List history entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container, show)
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print passwords in clear text")
	return cmd
}

// newHistoryCopyCommand creates the 'history copy' subcommand
func newHistoryCopyCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <index>",
		Short: "Copy a history entry to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := helpers.ParseIndex(args[0])
			if err != nil {
				return err
			}
			return copyHistoryEntry(cmd.Context(), cmd.ErrOrStderr(), container, index)
		},
	}
}

// newHistoryRemoveCommand creates the 'history remove' subcommand
func newHistoryRemoveCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <index>",
		Aliases: []string{"rm"},
		Short:   "Remove a history entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := helpers.ParseIndex(args[0])
			if err != nil {
				return err
			}
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			if err := store.Remove(cmd.Context(), index); err != nil {
				return fmt.Errorf("failed to remove entry %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %s.\n", args[0])
			return nil
		},
	}
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every history entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			if err := store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgHistoryCleared)
			return nil
		},
	}
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportHistory(container, args[0])
		},
	}
}

func historyStore(container *app.Container) (*history.Store, error) {
	if container.HistoryErr != nil {
		return nil, container.HistoryErr
	}
	if container.HistoryStore == nil {
		return nil, errors.New(ErrHistoryDisabled)
	}
	return container.HistoryStore, nil
}

// listHistoryEntries prints one line per entry with a 1-based index.
func listHistoryEntries(out io.Writer, container *app.Container, show bool) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	entries := store.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	writeHistory(out, entries, show, helpers.UseColor(out))
	return nil
}

func writeHistory(out io.Writer, entries []domain.HistoryEntry, show, color bool) {
	for i, entry := range entries {
		pw := entry.Password
		if !show {
			pw = helpers.MaskPassword(pw)
		}
		line := fmt.Sprintf("%2d. %-24s %s  %s",
			i+1,
			pw,
			helpers.FormatStrength(domain.StrengthFor(entry.Strength), color),
			humanize.Time(entry.Time()))
		if entry.Copied {
			line += "  (copied)"
		}
		fmt.Fprintln(out, line)
	}
}

// copyHistoryEntry copies the entry and waits for the clipboard write.
func copyHistoryEntry(ctx context.Context, out io.Writer, container *app.Container, index int) error {
	if _, err := historyStore(container); err != nil {
		return err
	}
	sess := container.NewSession()
	done, err := sess.CopyHistory(ctx, index)
	if err != nil {
		return err
	}
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	entry, err := container.HistoryStore.At(index)
	if err != nil || !entry.Copied {
		return errors.New(ErrCopyFailed)
	}
	fmt.Fprintln(out, MsgCopied)
	return nil
}

// exportHistory writes history as JSON lines to a private file.
func exportHistory(container *app.Container, path string) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.SecureFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to export history to %s: %w", path, err)
	}
	if err := store.Export(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to export history to %s: %w", path, err)
	}
	return f.Close()
}
