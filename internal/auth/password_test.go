package auth

import "testing"

func TestBcryptHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher()

	digest, err := hasher.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if digest == "correct horse battery staple" {
		t.Fatal("digest equals plaintext")
	}

	if !hasher.Verify("correct horse battery staple", digest) {
		t.Fatal("Verify rejected the original password")
	}
	if hasher.Verify("wrong password", digest) {
		t.Fatal("Verify accepted a different password")
	}
}

func TestBcryptHasher_SaltedDigests(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher()

	first, err := hasher.Hash("pw123456")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := hasher.Hash("pw123456")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password are identical, salt missing")
	}
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher()

	if hasher.Verify("anything", "not-a-bcrypt-digest") {
		t.Fatal("Verify accepted a malformed digest")
	}
	if hasher.Verify("anything", "") {
		t.Fatal("Verify accepted an empty digest")
	}
}
