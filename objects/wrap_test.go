package objects

import (
	"testing"

	"patchrt"
)

// collector is a message-domain spy usable across every test in this
// package: it records every message delivered to inlet 0.
type collector struct {
	patchrt.ObjectBase
	got []patchrt.Message
}

func newCollector() *collector {
	c := &collector{}
	c.ObjectBase = patchrt.InitObjectBase(c, "collector", 1, 0, 0, 0)
	return c
}

func (c *collector) ProcessMessage(inlet int, msg patchrt.Message) {
	c.got = append(c.got, msg)
}

func (c *collector) floats() []float32 {
	out := make([]float32, len(c.got))
	for i, m := range c.got {
		out[i] = m.Atoms[0].Float
	}
	return out
}

func newTestGraph() (*patchrt.Context, *patchrt.Graph) {
	ctx := patchrt.NewContext(1000, 64, nil)
	return ctx, ctx.Root()
}

func TestWrapFoldsIntoRange(t *testing.T) {
	ctx, g := newTestGraph()
	_ = ctx
	w := NewWrap(patchrt.NewMessage(0, patchrt.FloatAtom(0), patchrt.FloatAtom(10)), g)
	wID := g.AddObject(w)
	c := newCollector()
	cID := g.AddObject(c)
	if err := g.Connect(wID, 0, cID, 0, patchrt.MessagePort); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	for _, in := range []float32{3, 13, -7, 27} {
		w.ReceiveMessage(0, patchrt.NewMessage(0, patchrt.FloatAtom(in)))
	}

	want := []float32{3, 3, 3, 7}
	got := c.floats()
	if len(got) != len(want) {
		t.Fatalf("got %v outputs, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("output[%d] = %v, want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestWrapZeroRangeCollapsesToLower(t *testing.T) {
	_, g := newTestGraph()
	w := NewWrap(patchrt.NewMessage(0, patchrt.FloatAtom(5), patchrt.FloatAtom(5)), g)
	wID := g.AddObject(w)
	c := newCollector()
	cID := g.AddObject(c)
	if err := g.Connect(wID, 0, cID, 0, patchrt.MessagePort); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	w.ReceiveMessage(0, patchrt.NewMessage(0, patchrt.FloatAtom(123)))
	if got := c.floats(); len(got) != 1 || got[0] != 5 {
		t.Fatalf("got %v, want [5]", got)
	}
}

func TestMaxTracksFixedOperandAndBangsRepeat(t *testing.T) {
	_, g := newTestGraph()
	m := NewMax(patchrt.NewMessage(0, patchrt.FloatAtom(5)), g)
	mID := g.AddObject(m)
	c := newCollector()
	cID := g.AddObject(c)
	if err := g.Connect(mID, 0, cID, 0, patchrt.MessagePort); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	m.ReceiveMessage(0, patchrt.NewMessage(0, patchrt.FloatAtom(2)))
	m.ReceiveMessage(0, patchrt.NewMessage(0, patchrt.FloatAtom(7)))
	m.ReceiveMessage(0, patchrt.NewMessage(0, patchrt.BangAtom()))
	m.ReceiveMessage(0, patchrt.NewMessage(0, patchrt.FloatAtom(3)))
	m.ReceiveMessage(0, patchrt.NewMessage(0, patchrt.BangAtom()))

	want := []float32{5, 7, 7, 5, 5}
	got := c.floats()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("output[%d] = %v, want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}
