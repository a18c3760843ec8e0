package main

import "testing"

func TestIsWeakSecret(t *testing.T) {
	cases := map[string]bool{
		"short": true,
		"change-me-change-me-change-me-change-me":  true,
		"9f1c3b7e2a6d4f8091b2c3d4e5f60718293a4b5c": false,
	}
	for secret, want := range cases {
		if got := isWeakSecret(secret); got != want {
			t.Fatalf("isWeakSecret(%q) want %v got %v", secret, want, got)
		}
	}
}
