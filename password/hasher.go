// Package password provides argon2id password hashing and verification,
// offloaded to a CPU-bound worker pool so request goroutines never block on
// the deliberately slow hash function.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2Hasher computes and verifies argon2id password hashes.
type Argon2Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen int
}

// Option configures the argon2id hasher.
type Option func(*Argon2Hasher)

// WithTime sets the number of iterations (default: 1).
func WithTime(t uint32) Option {
	return func(h *Argon2Hasher) { h.time = t }
}

// WithMemory sets the memory usage in KiB (default: 64*1024 = 64MB).
func WithMemory(m uint32) Option {
	return func(h *Argon2Hasher) { h.memory = m }
}

// WithThreads sets the parallelism (default: 4).
func WithThreads(t uint8) Option {
	return func(h *Argon2Hasher) { h.threads = t }
}

// NewArgon2Hasher creates an argon2id hasher.
// Defaults follow OWASP recommendations: time=1, memory=64MB, threads=4.
func NewArgon2Hasher(opts ...Option) *Argon2Hasher {
	h := &Argon2Hasher{
		time:    1,
		memory:  64 * 1024,
		threads: 4,
		keyLen:  32,
		saltLen: 16,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash returns the encoded argon2id hash of password with a fresh salt.
func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, h.time, h.memory, h.threads, h.keyLen)

	// Encoded as: $argon2id$v=19$m=MEMORY,t=TIME,p=THREADS$SALT$HASH
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory, h.time, h.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
	return encoded, nil
}

// Verify recomputes the hash with the parameters stored in encodedHash and
// compares in constant time. An error means the hash itself is malformed;
// a wrong password is reported by (false, nil).
func (h *Argon2Hasher) Verify(password, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, errors.New("password: invalid argon2id hash format")
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, fmt.Errorf("password: parse argon2id params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("password: decode salt: %w", err)
	}

	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("password: decode hash: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(expected)))
	return subtle.ConstantTimeCompare(hash, expected) == 1, nil
}
