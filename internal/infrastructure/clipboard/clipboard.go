// Package clipboard writes text to the system clipboard through the
// platform's command-line tools.
package clipboard

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/ports"
)

// Clipboard implements ports.Clipboard using platform-specific tools.
type Clipboard struct {
	enabled  bool
	goos     string
	lookPath func(string) (string, error)
	run      func(name string, args []string, stdin []byte) error
}

// New builds the clipboard helper. A disabled clipboard refuses every copy.
func New(enabled bool) *Clipboard {
	return &Clipboard{
		enabled:  enabled,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run:      runCommand,
	}
}

func (c *Clipboard) Enabled() bool {
	if !c.enabled {
		return false
	}
	_, _, err := c.command()
	return err == nil
}

// Copy copies text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	if !c.enabled {
		return fmt.Errorf("%w: disabled in config", domain.ErrClipboardUnavailable)
	}
	name, args, err := c.command()
	if err != nil {
		return err
	}
	if err := c.run(name, args, []byte(text)); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Tool names the command Copy would run, for diagnostics.
func (c *Clipboard) Tool() (string, error) {
	name, _, err := c.command()
	return name, err
}

func (c *Clipboard) command() (string, []string, error) {
	switch c.goos {
	case "darwin":
		return "pbcopy", nil, nil
	case "windows":
		return "clip.exe", nil, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		if _, err := c.lookPath("wl-copy"); err == nil {
			return "wl-copy", nil, nil
		}
		if _, err := c.lookPath("xclip"); err == nil {
			return "xclip", []string{"-selection", "clipboard"}, nil
		}
		if _, err := c.lookPath("xsel"); err == nil {
			return "xsel", []string{"--clipboard", "--input"}, nil
		}
		return "", nil, fmt.Errorf("%w: install wl-copy, xclip or xsel", domain.ErrClipboardUnavailable)
	default:
		return "", nil, fmt.Errorf("%w: not supported on %s", domain.ErrClipboardUnavailable, c.goos)
	}
}

func runCommand(name string, args []string, stdin []byte) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	return cmd.Run()
}

var _ ports.Clipboard = (*Clipboard)(nil)
