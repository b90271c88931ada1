// Package random exposes the operating system's CSPRNG as a ports.RandomSource.
package random

import (
	"crypto/rand"
	"fmt"

	"github.com/doeshing/passgen-go/internal/ports"
)

// CryptoSource reads from crypto/rand.
type CryptoSource struct{}

// NewCryptoSource returns the OS-backed source.
func NewCryptoSource() CryptoSource {
	return CryptoSource{}
}

// Read implements ports.RandomSource.
func (CryptoSource) Read(p []byte) (int, error) {
	n, err := rand.Read(p)
	if err != nil {
		return n, fmt.Errorf("read system randomness: %w", err)
	}
	return n, nil
}

// Probe draws a few bytes to confirm the source works.
func Probe(src ports.RandomSource) error {
	buf := make([]byte, 32)
	_, err := src.Read(buf)
	return err
}

var _ ports.RandomSource = CryptoSource{}
