package application

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hasher := testHasher()

	hash, err := hasher.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("expected PHC argon2id format, got %q", hash)
	}

	ok, err := hasher.Verify("correct horse battery staple", hash)
	if err != nil || !ok {
		t.Fatalf("verify failed: ok=%v err=%v", ok, err)
	}

	ok, err = hasher.Verify("wrong password", hash)
	if err != nil {
		t.Fatalf("verify errored: %v", err)
	}
	if ok {
		t.Fatal("wrong password must not verify")
	}
}

func TestHashesAreSalted(t *testing.T) {
	hasher := testHasher()

	first, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatal("hashes must differ per salt")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	hasher := testHasher()

	for _, encoded := range []string{"", "plain", "$bcrypt$v=19$m=8,t=1,p=1$abc$def"} {
		if _, err := hasher.Verify("password", encoded); err == nil {
			t.Fatalf("expected error for %q", encoded)
		}
	}
}
