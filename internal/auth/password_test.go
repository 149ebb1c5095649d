package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPlainHasher(t *testing.T) {
	h := PlainHasher{}
	stored, err := h.Hash("pass1")
	if err != nil || stored != "pass1" {
		t.Fatalf("plain hash = %q, %v", stored, err)
	}
	if !h.Verify(stored, "pass1") || h.Verify(stored, "pass2") {
		t.Fatalf("plain verify mismatch")
	}
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}
	stored, err := h.Hash("pass1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if stored == "pass1" {
		t.Fatalf("password stored verbatim")
	}
	if !h.Verify(stored, "pass1") || h.Verify(stored, "nope") {
		t.Fatalf("bcrypt verify mismatch")
	}
}

func TestNewHasher(t *testing.T) {
	if h, err := NewHasher(""); err != nil {
		t.Fatalf("default scheme: %v", err)
	} else if _, ok := h.(PlainHasher); !ok {
		t.Fatalf("default scheme = %T", h)
	}
	if h, err := NewHasher("BCRYPT"); err != nil {
		t.Fatalf("bcrypt scheme: %v", err)
	} else if _, ok := h.(BcryptHasher); !ok {
		t.Fatalf("bcrypt scheme = %T", h)
	}
	if _, err := NewHasher("md5"); err == nil {
		t.Fatalf("expected error for unknown scheme")
	}
}
