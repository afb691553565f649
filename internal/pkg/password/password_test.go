package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("admin-123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "admin-123" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !Verify("admin-123", hash) {
		t.Error("correct password must verify")
	}
	if Verify("wrong", hash) {
		t.Error("wrong password must not verify")
	}
}

func TestGenerate(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		p, err := Generate(10)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if len(p) != 10 {
			t.Errorf("len = %d, want 10", len(p))
		}
		seen[p] = true
	}
	if len(seen) < 2 {
		t.Error("generated passwords should differ")
	}
}
