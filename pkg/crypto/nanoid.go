// Package crypto provides the random-identifier generator used for session
// tokens and other opaque IDs.
package crypto

import (
	"crypto/rand"
	"errors"
	"math"
	"unicode/utf8"
)

const (
	defaultAlphabet string = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
	// DefaultSize yields 22 * 6 = 132 bits of entropy (a uuid is 128 bits).
	DefaultSize     int = 22
	maxAlphabetSize int = 255
	minAlphabetSize int = 8
)

var (
	ErrAlphabetTooLong     = errors.New("alphabet must contain no more than 255 characters")
	ErrAlphabetTooShort    = errors.New("alphabet must contain at least 8 characters")
	ErrAlphabetInvalidUTF8 = errors.New("alphabet must contain valid UTF-8")
	ErrAlphabetNotASCII    = errors.New("alphabet must contain only ASCII characters")
)

// NanoIDGenerator produces unguessable random strings over a fixed alphabet.
type NanoIDGenerator struct {
	alphabet string
	mask     int
}

func getMask(alphabetLen int) int {
	for i := 1; i <= 8; i++ {
		mask := (2 << uint(i)) - 1
		if mask > alphabetLen-1 {
			return mask
		}
	}
	return maxAlphabetSize // max mask for 8 bits
}

// NewNanoID creates a generator. An empty alphabet selects the URL-safe
// default.
func NewNanoID(alphabet string) (*NanoIDGenerator, error) {
	if alphabet == "" {
		alphabet = defaultAlphabet
	}

	if !utf8.ValidString(alphabet) {
		return nil, ErrAlphabetInvalidUTF8
	}
	// Generate() indexes by byte position, so every character must be a
	// single-byte rune.
	for _, r := range alphabet {
		if r > 127 {
			return nil, ErrAlphabetNotASCII
		}
	}
	if len(alphabet) > maxAlphabetSize {
		return nil, ErrAlphabetTooLong
	}
	if len(alphabet) < minAlphabetSize {
		return nil, ErrAlphabetTooShort
	}

	return &NanoIDGenerator{
		alphabet: alphabet,
		mask:     getMask(len(alphabet)),
	}, nil
}

// Generate returns a random string of the given length. A non-positive
// length selects DefaultSize.
func (n *NanoIDGenerator) Generate(length int) (string, error) {
	size := length
	if size <= 0 {
		size = DefaultSize
	}

	alphabetLen := len(n.alphabet)
	step := int(math.Ceil(1.6 * float64(n.mask*size) / float64(alphabetLen)))

	id := make([]byte, size)
	buffer := make([]byte, step)

	for position := 0; position < size; {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}

		// Map random bytes onto the alphabet, rejecting indexes past its end
		// to keep the distribution uniform.
		for i := 0; i < step && position < size; i++ {
			index := buffer[i] & byte(n.mask)
			if int(index) < alphabetLen {
				id[position] = n.alphabet[index]
				position++
			}
		}
	}

	return string(id), nil
}
