package helpers

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/doeshing/passgen-go/internal/domain"
)

// ParseIndex converts a 1-based index typed by the user to the 0-based index
// the services take. Range checks are left to the history store.
func ParseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid index %q: expected a number starting at 1", arg)
	}
	return n - 1, nil
}

// MaskPassword keeps the first and last two characters of longer passwords.
func MaskPassword(pw string) string {
	runes := []rune(pw)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:2]) + strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-2:])
}

// StrengthMeter draws the score as a bar, e.g. "[###--]".
func StrengthMeter(score int) string {
	filled := min(max(score, 0), domain.MaxStrengthScore)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", domain.MaxStrengthScore-filled) + "]"
}

// FormatStrength renders "[###--] strong (3/5)", coloring the label when color is set.
func FormatStrength(s domain.Strength, color bool) string {
	label := s.Label
	if color {
		label = Colorize(label, s.Color)
	}
	return fmt.Sprintf("%s %s (%d/%d)", StrengthMeter(s.Score), label, s.Score, domain.MaxStrengthScore)
}

// Colorize wraps text in a 24-bit ANSI foreground escape for a "#rrggbb" color.
// Malformed colors leave the text unchanged.
func Colorize(text, hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return text
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return text
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", rgb>>16&0xff, rgb>>8&0xff, rgb&0xff, text)
}

// UseColor reports whether w is a terminal and NO_COLOR is unset.
func UseColor(w io.Writer) bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	f, isFile := w.(*os.File)
	return isFile && term.IsTerminal(int(f.Fd()))
}
