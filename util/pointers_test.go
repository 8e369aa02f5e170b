package util

import "testing"

func TestPtr(t *testing.T) {
	token := "tok-abc"
	p := Ptr(token)
	if p == nil || *p != "tok-abc" {
		t.Fatalf("Ptr(%q) dereferences to %v", token, p)
	}

	// Each call must return a fresh pointer, not a shared one.
	if Ptr(token) == p {
		t.Error("Ptr returned the same address twice")
	}
}
