package filesystem

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "/etc/passgen.yaml", want: "/etc/passgen.yaml"},
		{in: "~", want: "/home/tester"},
		{in: "~/.passgen/history.db", want: filepath.Join("/home/tester", ".passgen", "history.db")},
		{in: "data/../history.db", want: "history.db"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandPath(tt.in), "ExpandPath(%q)", tt.in)
	}
}

func TestAppDir(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, filepath.Join("/home/tester", ".passgen"), AppDir())
}
