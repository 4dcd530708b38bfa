package core

import (
	"strings"
	"testing"
)

// Requirement: the argon2id handler produces self-describing encoded hashes.
func TestArgon2_Hash(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "success", password: "testPassword123"},
		{name: "empty password", password: ""},
		{name: "special chars", password: "p@ssw0rd!#$%"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			a := NewArgon2()

			// Act
			hash, err := a.Hash(test.password)

			// Assert
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if !strings.HasPrefix(hash, "$argon2id$") {
				t.Error("Hash() should start with $argon2id$")
			}
			if len(strings.Split(hash, "$")) != 6 {
				t.Error("Hash() should have 6 parts")
			}
		})
	}
}

// Requirement: Verify accepts the original password and rejects others.
func TestArgon2_Verify(t *testing.T) {
	a := NewArgon2()
	hash, err := a.Hash("SecurePass123!")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	ok, err := a.Verify("SecurePass123!", hash)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !ok {
		t.Error("Verify() should accept the original password")
	}

	ok, err = a.Verify("WrongPass", hash)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if ok {
		t.Error("Verify() must reject a wrong password")
	}
}

// Requirement: malformed encodings are errors, not mismatches.
func TestArgon2_VerifyMalformed(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{name: "not enough parts", encoded: "$argon2id$v=19"},
		{name: "wrong algorithm", encoded: "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{name: "bad salt", encoded: "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			a := NewArgon2()

			if _, err := a.Verify("whatever", test.encoded); err == nil {
				t.Error("Verify() should error on malformed input")
			}
		})
	}
}
