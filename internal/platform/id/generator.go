package id

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
)

// codeAlphabet skips 0/O/1/I to keep invite codes readable over chat.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
	NewShortCode(length int) (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}

	return value.String(), nil
}

// NewShortCode returns a human-shareable code, used for league invites.
func (g *RandomGenerator) NewShortCode(length int) (string, error) {
	if length <= 0 {
		length = 8
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}

	return string(buf), nil
}
