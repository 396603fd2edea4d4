package crypto

import "testing"

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash returned error: %v", err)
	}
	if string(hash) == "hunter2" {
		t.Fatal("hash equals plaintext")
	}
	if err := ComparePassword(hash, "hunter2"); err != nil {
		t.Fatalf("compare with correct password failed: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Fatal("compare accepted a wrong password")
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("same")
	if err != nil {
		t.Fatalf("hash returned error: %v", err)
	}
	second, err := HashPassword("same")
	if err != nil {
		t.Fatalf("hash returned error: %v", err)
	}
	if string(first) == string(second) {
		t.Fatal("two hashes of the same input are identical")
	}
}
