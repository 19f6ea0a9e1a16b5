package source

import "testing"

func TestInternerDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern("balance")
	b := in.Intern("balance")
	c := in.Intern("owner")
	if a != b {
		t.Fatalf("same string interned twice: %d != %d", a, b)
	}
	if a == c {
		t.Fatal("different strings share an id")
	}
	if s := in.MustLookup(c); s != "owner" {
		t.Fatalf("lookup = %q", s)
	}
	if in.Intern("") != NoStringID {
		t.Fatal("empty string must map to NoStringID")
	}
	if _, ok := in.Lookup(StringID(in.Len())); ok {
		t.Fatal("lookup past end must fail")
	}
}
