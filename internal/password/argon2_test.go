package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	h := NewHasher()

	digest, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(digest, "$argon2id$") {
		t.Fatalf("unexpected digest format: %q", digest)
	}
	if !h.Verify("correct horse battery staple", digest) {
		t.Fatal("verify rejected the original plaintext")
	}
	if h.Verify("wrong password", digest) {
		t.Fatal("verify accepted a wrong plaintext")
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewHasher()

	d1, err := h.Hash("samepassword")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	d2, err := h.Hash("samepassword")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if d1 == d2 {
		t.Fatal("two hashes of the same plaintext are identical, salt not applied")
	}
	if !h.Verify("samepassword", d1) || !h.Verify("samepassword", d2) {
		t.Fatal("verify failed against one of the salted digests")
	}
}

func TestVerifyAcrossInstances(t *testing.T) {
	digest, err := NewHasher().Hash("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	// Parameters travel with the digest; a fresh hasher must still verify.
	if !NewHasher().Verify("hunter22", digest) {
		t.Fatal("fresh hasher could not verify stored digest")
	}
}

func TestHashEmptyPassword(t *testing.T) {
	if _, err := NewHasher().Hash(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyMalformedDigest(t *testing.T) {
	h := NewHasher()
	for _, digest := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=3,p=1$notbase64!!$x",
		"$bcrypt$whatever",
		"$argon2id$v=19$bad$salt$key",
	} {
		if h.Verify("anything", digest) {
			t.Fatalf("verify accepted malformed digest %q", digest)
		}
	}
}
