package ratelimit

import "testing"

func TestAllowConsumesBurst(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("client", 3, 0) {
			t.Fatalf("draw %d should be allowed within burst", i)
		}
	}
	if l.Allow("client", 3, 0) {
		t.Fatalf("burst exhausted, draw should be denied")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0) {
		t.Fatalf("first draw for a should pass")
	}
	if l.Allow("a", 1, 0) {
		t.Fatalf("a exhausted")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatalf("b must not share a's bucket")
	}
}
