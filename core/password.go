package core

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// PasswordHandler hashes passwords for storage and verifies candidates
// against a stored field. Implementations embed the salt in the stored
// value so the two operations are self-contained.
type PasswordHandler interface {
	Hash(password string) (string, error)
	Verify(password, stored string) (bool, error)
}

// StretchIterations is the policy constant for the stretch scheme.
const StretchIterations = 100

// Digest returns the hex-encoded SHA-256 digest of the input. Output length
// is fixed at 64 characters and never contains a ".".
func Digest(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// Stretch applies Digest to its own output the given number of times,
// starting from the initial input. Repeated application inflates the
// per-guess cost of brute forcing the stored digest.
func Stretch(input string, iterations int) string {
	out := input
	for i := 0; i < iterations; i++ {
		out = Digest(out)
	}
	return out
}

// StretchSHA256 implements PasswordHandler with the salted, iterated SHA-256
// scheme. The stored field is "<digest>.<salt>" where
// digest = Stretch(password + "." + salt, Iterations). The salt is a fresh
// UUID, which never contains a ".", so the split stays unambiguous.
type StretchSHA256 struct {
	Iterations int
}

var _ PasswordHandler = (*StretchSHA256)(nil)

// NewStretchSHA256 returns a hasher with the policy iteration count.
func NewStretchSHA256() *StretchSHA256 {
	return &StretchSHA256{Iterations: StretchIterations}
}

func (h *StretchSHA256) Hash(password string) (string, error) {
	salt := uuid.NewString()
	digest := Stretch(password+"."+salt, h.Iterations)
	return digest + "." + salt, nil
}

// Verify splits the stored field on the first ".", recomputes the stretched
// digest and compares in constant time. A field without a separator is a
// data-integrity defect and yields ErrCorruptCredential, never "wrong
// password".
func (h *StretchSHA256) Verify(password, stored string) (bool, error) {
	digest, salt, found := strings.Cut(stored, ".")
	if !found || digest == "" || salt == "" {
		return false, ErrCorruptCredential
	}
	candidate := Stretch(password+"."+salt, h.Iterations)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(digest)) == 1, nil
}
