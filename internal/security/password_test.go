package security

import "testing"

func TestHashPassword(t *testing.T) {
	plain := "senha-super-secreta"

	hash, err := HashPassword(plain)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hash == plain {
		t.Fatal("hash must never equal the plaintext")
	}

	if err := CheckPassword(hash, plain); err != nil {
		t.Fatalf("plaintext should verify against its own hash: %v", err)
	}

	if err := CheckPassword(hash, "wrong-password"); err == nil {
		t.Fatal("wrong password should not verify")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("repetida")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := HashPassword("repetida")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Fatal("two hashes of the same plaintext should differ (random salt)")
	}
}

func TestEnsureHashed_SkipsAlreadyHashedValues(t *testing.T) {
	hash, err := HashPassword("original")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !IsHashed(hash) {
		t.Fatalf("bcrypt output should be recognized as hashed: %q", hash)
	}

	again, err := EnsureHashed(hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// re-saving an unchanged hash must not hash it a second time
	if again != hash {
		t.Fatal("already-hashed value should pass through unchanged")
	}

	if IsHashed("plaintext") {
		t.Fatal("plaintext should not be recognized as hashed")
	}

	fromPlain, err := EnsureHashed("plaintext")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fromPlain == "plaintext" || !IsHashed(fromPlain) {
		t.Fatal("plaintext should come back hashed")
	}
}
