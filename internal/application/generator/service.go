// Package generator draws random passwords from the enabled character classes.
package generator

import (
	"fmt"
	"io"

	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/ports"
)

// Service generates passwords from a RandomSource.
type Service struct {
	Random ports.RandomSource
}

// NewService builds a generator bound to the given random source.
func NewService(random ports.RandomSource) *Service {
	return &Service{Random: random}
}

// Generate returns a password of opts.Length characters drawn uniformly from
// opts.Charset(), in draw order. It fails with domain.ErrEmptyCharset when no
// class is enabled.
//
// Bytes at or above the largest multiple of the charset size that fits in a
// byte are rejected and redrawn, so no character is favoured by the modulo.
func (s *Service) Generate(opts domain.GenerationOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	charset := opts.Charset()
	size := len(charset)
	limit := 256 - 256%size

	out := make([]byte, 0, opts.Length)
	buf := make([]byte, opts.Length)
	for len(out) < opts.Length {
		need := opts.Length - len(out)
		if _, err := io.ReadFull(s.Random, buf[:need]); err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		for _, b := range buf[:need] {
			if int(b) >= limit {
				continue
			}
			out = append(out, charset[int(b)%size])
		}
	}
	return string(out), nil
}
