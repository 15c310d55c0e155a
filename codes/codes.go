// Package codes generates short confirmation codes for user verification flows.
//
// Codes come from a non-cryptographic pseudorandom source and carry no
// uniqueness guarantee; callers that persist them must check for collisions.
// Use Secure when codes must be unpredictable.
package codes

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/imasker/warden/config"
)

const (
	// Alphabet is the default symbol set
	Alphabet = config.DefaultCodeAlphabet
	// Length is the default code length
	Length = config.DefaultCodeLength
)

var (
	ErrInvalidLength   = errors.New("codes: length must be at least 1")
	ErrInvalidAlphabet = errors.New("codes: alphabet must hold at least two distinct symbols")
)

// Option customises a generator
type Option func(*settings)

type settings struct {
	length   int
	alphabet string
}

// WithLength sets how many symbols a code has
func WithLength(n int) Option {
	return func(s *settings) {
		s.length = n
	}
}

// WithAlphabet sets the symbols codes are drawn from
func WithAlphabet(alphabet string) Option {
	return func(s *settings) {
		s.alphabet = alphabet
	}
}

func apply(opts []Option) (settings, error) {
	s := settings{length: Length, alphabet: Alphabet}
	for _, opt := range opts {
		opt(&s)
	}
	if s.length < 1 {
		return s, ErrInvalidLength
	}

	symbols := []rune(s.alphabet)
	seen := make(map[rune]struct{}, len(symbols))
	for _, r := range symbols {
		if _, dup := seen[r]; dup {
			return s, ErrInvalidAlphabet
		}
		seen[r] = struct{}{}
	}
	if len(seen) < 2 {
		return s, ErrInvalidAlphabet
	}
	return s, nil
}

// Generator draws every symbol independently and uniformly from its alphabet.
// It is safe for concurrent use; draws are serialized on the one source.
type Generator struct {
	mu       sync.Mutex
	rnd      *rand.Rand
	alphabet []rune
	length   int
}

// New returns a generator reading from src. A source seeded with a fixed value
// yields the same codes in the same order.
func New(src rand.Source, opts ...Option) (*Generator, error) {
	s, err := apply(opts)
	if err != nil {
		return nil, err
	}
	return &Generator{
		rnd:      rand.New(src),
		alphabet: []rune(s.alphabet),
		length:   s.length,
	}, nil
}

// NewFromConfig seeds from cnf.Seed, or from the clock when it is zero.
// A nil cnf means the defaults.
func NewFromConfig(cnf *config.CodeConfig) (*Generator, error) {
	if cnf == nil {
		cnf = config.Default().Code
	}
	seed := cnf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return New(rand.NewSource(seed), WithLength(cnf.Length), WithAlphabet(cnf.Alphabet))
}

// Generate returns a fresh code
func (g *Generator) Generate() string {
	code := make([]rune, g.length)

	g.mu.Lock()
	for i := range code {
		code[i] = g.alphabet[g.rnd.Intn(len(g.alphabet))]
	}
	g.mu.Unlock()

	return string(code)
}

var std = mustNew(rand.NewSource(time.Now().UnixNano()))

func mustNew(src rand.Source, opts ...Option) *Generator {
	g, err := New(src, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// Default returns the process-wide generator seeded from the clock at start up
func Default() *Generator {
	return std
}

// GenerateConfirmationCode returns a 6 symbol code over A-Z and 0-9 from the default generator
func GenerateConfirmationCode() string {
	return std.Generate()
}

// SecureGenerator draws codes from crypto/rand through nanoid
type SecureGenerator struct {
	alphabet string
	length   int
}

func Secure(opts ...Option) (*SecureGenerator, error) {
	s, err := apply(opts)
	if err != nil {
		return nil, err
	}
	return &SecureGenerator{alphabet: s.alphabet, length: s.length}, nil
}

// Generate fails only when the system's random source does
func (g *SecureGenerator) Generate() (string, error) {
	return gonanoid.Generate(g.alphabet, g.length)
}
