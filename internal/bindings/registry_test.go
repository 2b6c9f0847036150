package bindings

import (
	"testing"
	"unsafe"
)

func TestRegistryRoundTrip(t *testing.T) {
	type payload struct{ n int }
	p := &payload{n: 7}

	k := Register(p)
	if k == 0 {
		t.Fatal("key must be nonzero so 0 can mean unregistered")
	}

	got, ok := LookupKey(k)
	if !ok || got != any(p) {
		t.Fatalf("LookupKey(%d) = (%v, %v)", k, got, ok)
	}

	// The key doubles as the opaque pointer crossing the native boundary.
	got, ok = Lookup(unsafe.Pointer(k))
	if !ok || got != any(p) {
		t.Fatalf("Lookup roundtrip = (%v, %v)", got, ok)
	}

	Unregister(k)
	if _, ok := LookupKey(k); ok {
		t.Error("key still resolvable after Unregister")
	}
}

func TestRegistryKeysAreUnique(t *testing.T) {
	a := Register("a")
	b := Register("b")
	defer Unregister(a)
	defer Unregister(b)
	if a == b {
		t.Fatal("two registrations returned the same key")
	}
	va, _ := LookupKey(a)
	vb, _ := LookupKey(b)
	if va != "a" || vb != "b" {
		t.Errorf("lookups = (%v, %v)", va, vb)
	}
}

func TestUnregisterUnknownKeyIsNoop(t *testing.T) {
	Unregister(0xDEAD)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				k := Register(j)
				if _, ok := LookupKey(k); !ok {
					t.Error("registered key not found")
					return
				}
				Unregister(k)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
