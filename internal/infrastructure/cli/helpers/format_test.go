package helpers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/passgen-go/internal/domain"
)

func TestParseIndex(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "1", want: 0},
		{in: " 10 ", want: 9},
		{in: "0", wantErr: true},
		{in: "-2", wantErr: true},
		{in: "two", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseIndex(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "", MaskPassword(""))
	assert.Equal(t, "****", MaskPassword("abcd"))
	assert.Equal(t, "ab*****gh", MaskPassword("abcdefXgh"))
	assert.Equal(t, "é€*y€", MaskPassword("é€xy€"))
}

func TestStrengthMeter(t *testing.T) {
	assert.Equal(t, "[-----]", StrengthMeter(0))
	assert.Equal(t, "[###--]", StrengthMeter(3))
	assert.Equal(t, "[#####]", StrengthMeter(5))
	assert.Equal(t, "[#####]", StrengthMeter(9))
	assert.Equal(t, "[-----]", StrengthMeter(-1))
}

func TestFormatStrength(t *testing.T) {
	s := domain.StrengthFor(3)
	assert.Equal(t, "[###--] strong (3/5)", FormatStrength(s, false))
	assert.Equal(t, "[###--] \x1b[38;2;255;255;0mstrong\x1b[0m (3/5)", FormatStrength(s, true))
}

func TestColorize_Malformed(t *testing.T) {
	assert.Equal(t, "x", Colorize("x", "red"))
	assert.Equal(t, "x", Colorize("x", "#zzzzzz"))
}

func TestUseColor_NonTerminal(t *testing.T) {
	assert.False(t, UseColor(&bytes.Buffer{}))
}
