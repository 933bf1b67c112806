package utils

import "testing"

func TestRandomStudentID(t *testing.T) {
	for i := 0; i < 100; i++ {
		id, err := RandomStudentID()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(id) != 4 {
			t.Fatalf("expected 4-digit id, got %q", id)
		}
		if id[0] == '0' {
			t.Fatalf("id must be in 1000-9999, got %q", id)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Alice@Example.COM ", "alice@example.com"},
		{"bob@school.edu", "bob@school.edu"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := NormalizeEmail(tc.input); got != tc.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if err := CheckPassword("s3cret-pass", hash); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := CheckPassword("wrong-pass", hash); err == nil {
		t.Fatal("wrong password accepted")
	}
}
