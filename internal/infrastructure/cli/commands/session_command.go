package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/passgen-go/internal/app"
	"github.com/doeshing/passgen-go/internal/application/session"
	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/infrastructure/cli/helpers"
)

const sessionHelp = `Commands:
  generate | g          new password with the current options
  copy | c              copy the current password
  history | h [show]    list history (masked unless "show")
  hcopy N               copy history entry N
  remove N              remove history entry N
  clear                 clear history
  length N              set length (8-64)
  toggle CLASS          toggle upper, lower, numbers or symbols
  options               show current options
  score                 rate the current password
  save                  store the current options as defaults
  help                  show this help
  exit | quit           leave the session`

// NewSessionCommand creates the interactive session command
func NewSessionCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Interactive password session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			sess := container.NewSession()
			defer sess.Close()

			r := &repl{
				sess:  sess,
				out:   out,
				color: helpers.UseColor(out),
				save: func(opts domain.GenerationOptions) (string, error) {
					cfg, err := container.ConfigProvider.Load(ctx)
					if err != nil {
						return "", err
					}
					cfg.Generator = opts
					backup, err := helpers.SaveConfigWithValidation(container, cfg)
					if err == nil {
						container.Config.Generator = opts
					}
					return backup, err
				},
			}
			_, err := sess.Start(ctx, container.Config.GetGenerationOptions())
			if sess.Password() != "" {
				r.showCurrent()
			}
			if err != nil {
				fmt.Fprintln(out, "error:", err)
			}
			r.run(ctx, bufio.NewScanner(cmd.InOrStdin()))
			return nil
		},
	}
}

// repl reads one command per line until EOF or exit. Command errors are
// printed and the loop continues.
type repl struct {
	sess  *session.Service
	out   io.Writer
	color bool
	save  func(domain.GenerationOptions) (string, error)
}

func (r *repl) run(ctx context.Context, scanner *bufio.Scanner) {
	for {
		fmt.Fprint(r.out, "passgen> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		if r.dispatch(ctx, parts[0], parts[1:]) {
			return
		}
	}
}

// dispatch runs one command and reports whether the session should end.
func (r *repl) dispatch(ctx context.Context, cmd string, args []string) bool {
	var err error
	switch strings.ToLower(cmd) {
	case "generate", "g":
		var entry domain.HistoryEntry
		if entry, err = r.sess.Generate(ctx); entry.Password != "" {
			r.showCurrent()
		}
	case "copy", "c":
		err = r.copyCurrent(ctx)
	case "history", "h":
		r.showHistory(len(args) > 0 && args[0] == "show")
	case "hcopy":
		err = r.withIndex(args, func(i int) error { return r.copyHistory(ctx, i) })
	case "remove", "rm":
		err = r.withIndex(args, func(i int) error { return r.sess.RemoveHistory(ctx, i) })
	case "clear":
		if err = r.sess.ClearHistory(ctx); err == nil {
			fmt.Fprintln(r.out, MsgHistoryCleared)
		}
	case "length", "l":
		err = r.setLength(args)
	case "toggle", "t":
		err = r.toggle(args)
	case "options", "o":
		fmt.Fprintln(r.out, r.sess.Options())
	case "score", "s":
		fmt.Fprintln(r.out, helpers.FormatStrength(domain.Evaluate(r.sess.Password()), r.color))
	case "save":
		var backup string
		if backup, err = r.save(r.sess.Options()); err == nil {
			fmt.Fprintln(r.out, "Saved current options as defaults.")
			if backup != "" {
				fmt.Fprintf(r.out, "Previous configuration saved to %s\n", backup)
			}
		}
	case "help", "?":
		fmt.Fprintln(r.out, sessionHelp)
	case "exit", "quit", "q":
		fmt.Fprintln(r.out, "Bye!")
		return true
	default:
		fmt.Fprintln(r.out, "Unknown command:", cmd)
	}
	if err != nil {
		fmt.Fprintln(r.out, "error:", err)
	}
	return false
}

func (r *repl) showCurrent() {
	pw := r.sess.Password()
	if pw == "" {
		return
	}
	fmt.Fprintf(r.out, "  %s\n  strength %s\n", pw, helpers.FormatStrength(domain.Evaluate(pw), r.color))
}

func (r *repl) showHistory(show bool) {
	entries := r.sess.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(r.out, MsgNoHistoryRecorded)
		return
	}
	writeHistory(r.out, entries, show, r.color)
}

func (r *repl) copyCurrent(ctx context.Context) error {
	return copyCurrent(ctx, r.out, r.sess)
}

func (r *repl) copyHistory(ctx context.Context, index int) error {
	entries := r.sess.Entries()
	done, err := r.sess.CopyHistory(ctx, index)
	if err != nil {
		return err
	}
	<-done
	id := entries[index].ID
	for _, e := range r.sess.Entries() {
		if e.ID == id && e.Copied {
			fmt.Fprintln(r.out, MsgCopied)
			return nil
		}
	}
	return errors.New(ErrCopyFailed)
}

func (r *repl) withIndex(args []string, fn func(int) error) error {
	if len(args) != 1 {
		return fmt.Errorf("expected one history index")
	}
	index, err := helpers.ParseIndex(args[0])
	if err != nil {
		return err
	}
	return fn(index)
}

func (r *repl) setLength(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: length N")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid length %q", args[0])
	}
	if err := r.sess.SetLength(n); err != nil {
		return err
	}
	fmt.Fprintln(r.out, r.sess.Options())
	return nil
}

func (r *repl) toggle(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: toggle upper|lower|numbers|symbols")
	}
	class, err := domain.ParseCharClass(args[0])
	if err != nil {
		return err
	}
	on, err := r.sess.Toggle(class)
	if err != nil {
		return err
	}
	state := "off"
	if on {
		state = "on"
	}
	fmt.Fprintf(r.out, "%s %s\n", class, state)
	return nil
}
