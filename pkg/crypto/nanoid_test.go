package crypto

import (
	"strings"
	"testing"
)

// Requirement: NewNanoID validates its alphabet.
func TestNewNanoID(t *testing.T) {
	tests := []struct {
		name     string
		alphabet string
		wantErr  error
	}{
		{name: "default alphabet", alphabet: "", wantErr: nil},
		{name: "custom alphabet", alphabet: "abcdef0123456789", wantErr: nil},
		{name: "too short", alphabet: "abc", wantErr: ErrAlphabetTooShort},
		{name: "too long", alphabet: strings.Repeat("a", 256), wantErr: ErrAlphabetTooLong},
		{name: "non ascii", alphabet: "abcdefgあ", wantErr: ErrAlphabetNotASCII},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			_, err := NewNanoID(test.alphabet)

			if err != test.wantErr {
				t.Errorf("NewNanoID() error = %v, want %v", err, test.wantErr)
			}
		})
	}
}

// Requirement: Generate honors the requested length and stays inside the
// alphabet.
func TestNanoIDGenerate(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		wantSize int
	}{
		{name: "default size", length: 0, wantSize: DefaultSize},
		{name: "explicit size", length: 43, wantSize: 43},
		{name: "short", length: 8, wantSize: 8},
	}

	gen, err := NewNanoID("")
	if err != nil {
		t.Fatalf("NewNanoID() error = %v", err)
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			id, err := gen.Generate(test.length)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(id) != test.wantSize {
				t.Errorf("Generate() length = %d, want %d", len(id), test.wantSize)
			}
			for _, c := range id {
				if !strings.ContainsRune(defaultAlphabet, c) {
					t.Errorf("Generate() produced %q outside the alphabet", c)
				}
			}
		})
	}
}

// Requirement: IDs do not repeat in practice.
func TestNanoIDGenerateUniqueness(t *testing.T) {
	gen, _ := NewNanoID("")
	seen := make(map[string]bool)

	for i := 0; i < 10_000; i++ {
		id, err := gen.Generate(0)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if seen[id] {
			t.Fatalf("Generate() repeated id %s", id)
		}
		seen[id] = true
	}
}
