package patchrt

import "testing"

func TestInternIsStable(t *testing.T) {
	a := Intern("foo")
	b := Intern("foo")
	if a != b {
		t.Fatalf("Intern(%q) returned different symbols: %d != %d", "foo", a, b)
	}
	c := Intern("bar")
	if a == c {
		t.Fatalf("Intern(%q) and Intern(%q) collided", "foo", "bar")
	}
	if a.String() != "foo" || c.String() != "bar" {
		t.Fatalf("Symbol.String() round-trip failed: got %q, %q", a.String(), c.String())
	}
}

func TestAtomEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b Atom
		want bool
	}{
		{"float eq", FloatAtom(1.5), FloatAtom(1.5), true},
		{"float neq", FloatAtom(1.5), FloatAtom(2.5), false},
		{"symbol eq", SymbolAtom("x"), SymbolAtom("x"), true},
		{"symbol neq", SymbolAtom("x"), SymbolAtom("y"), false},
		{"bang eq", BangAtom(), BangAtom(), true},
		{"kind mismatch", FloatAtom(0), BangAtom(), false},
		{"list eq", ListAtom(FloatAtom(1), FloatAtom(2)), ListAtom(FloatAtom(1), FloatAtom(2)), true},
		{"list len mismatch", ListAtom(FloatAtom(1)), ListAtom(FloatAtom(1), FloatAtom(2)), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Equal(c.b); got != c.want {
				t.Errorf("Equal() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestMessageEqualAndClone(t *testing.T) {
	m := NewMessage(10, FloatAtom(1), SymbolAtom("hi"))
	clone := m.clone()
	if !m.Equal(clone) {
		t.Fatalf("clone() produced a message not Equal to the original")
	}
	clone.Atoms[0] = FloatAtom(999)
	if m.Atoms[0].Float == 999 {
		t.Fatalf("clone() shared backing array with the original")
	}
	if m.Timestamp != 10 {
		t.Fatalf("Timestamp mutated unexpectedly")
	}
}
