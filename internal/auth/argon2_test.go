package auth

import (
	"errors"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewHasher(TestArgon2Params())

	hash, err := h.Hash("salainen")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	ok, err := h.Verify("salainen", hash)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("correct password did not verify")
	}

	ok, err = h.Verify("wrong", hash)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatal("wrong password verified")
	}
}

func TestHashesAreSalted(t *testing.T) {
	t.Parallel()

	h := NewHasher(TestArgon2Params())

	a, err := h.Hash("salainen")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := h.Hash("salainen")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password are identical")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	t.Parallel()

	h := NewHasher(TestArgon2Params())

	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$bogus$c2FsdA$aGFzaA",
	} {
		if _, err := h.Verify("salainen", encoded); !errors.Is(err, ErrInvalidHash) {
			t.Fatalf("Verify(%q): expected ErrInvalidHash, got %v", encoded, err)
		}
	}
}
