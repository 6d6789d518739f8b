package password

import (
	"strings"
	"testing"
)

// fastHasher keeps the memory cost low so tests stay quick.
func fastHasher() *Argon2Hasher {
	return NewArgon2Hasher(WithMemory(8 * 1024))
}

func TestHashAndVerify(t *testing.T) {
	h := fastHasher()

	hash, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("unexpected hash prefix: %q", hash)
	}

	ok, err := h.Verify("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("expected matching password to verify")
	}

	ok, err = h.Verify("wrong password", hash)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Error("expected wrong password to fail verification")
	}
}

func TestHashIsSalted(t *testing.T) {
	h := fastHasher()

	first, err := h.Hash("secret")
	if err != nil {
		t.Fatal(err)
	}
	second, err := h.Hash("secret")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("expected distinct hashes for the same password")
	}
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	h := fastHasher()

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not a hash", "plaintext"},
		{"wrong algorithm", "$bcrypt$v=19$m=8192,t=1,p=4$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=8192,t=1,p=4$!!!$aGFzaA"},
		{"missing sections", "$argon2id$v=19$m=8192,t=1,p=4"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := h.Verify("secret", tc.hash)
			if err == nil {
				t.Error("expected error for malformed hash")
			}
			if ok {
				t.Error("malformed hash must never verify")
			}
		})
	}
}

func TestVerifyUsesEmbeddedParams(t *testing.T) {
	// A hash produced with one parameter set must verify under a hasher
	// configured differently; the encoded string carries its own params.
	producer := NewArgon2Hasher(WithMemory(8*1024), WithTime(2))
	hash, err := producer.Hash("secret")
	if err != nil {
		t.Fatal(err)
	}

	consumer := NewArgon2Hasher(WithMemory(16*1024), WithTime(1))
	ok, err := consumer.Verify("secret", hash)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("expected hash to verify under different hasher settings")
	}
}
