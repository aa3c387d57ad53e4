package crypto

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("pw123456")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "pw123456" {
		t.Fatalf("hash equals plaintext")
	}

	if err := h.Verify(hash, "pw123456"); err != nil {
		t.Fatalf("Verify with correct password: %v", err)
	}
	if err := h.Verify(hash, "wrong"); err == nil {
		t.Fatalf("Verify accepted a wrong password")
	}
}

func TestBcryptHasher_TwoHashesDiffer(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Fatalf("expected salted hashes to differ")
	}
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	h := NewBcryptHasher(-1)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost fallback, got %d", h.cost)
	}
}
