package patchrt

import "testing"

type testSigSource struct {
	ObjectBase
	value float32
}

func newTestSigSource(value float32) *testSigSource {
	s := &testSigSource{value: value}
	s.ObjectBase = InitObjectBase(s, "testsrc", 0, 0, 0, 1)
	return s
}

func (s *testSigSource) ProcessBlock(from, to int) {
	out := s.SignalOutlet(0)
	for i := from; i < to; i++ {
		out[i] = s.value
	}
}

type testSigSink struct {
	ObjectBase
	last Buffer
}

func newTestSigSink() *testSigSink {
	s := &testSigSink{}
	s.ObjectBase = InitObjectBase(s, "testsink", 0, 1, 0, 0)
	return s
}

func (s *testSigSink) ProcessBlock(from, to int) {
	buf, _, _ := s.SignalInlet(0)
	s.last = buf
}

type testSigPass struct {
	ObjectBase
}

func newTestSigPass() *testSigPass {
	p := &testSigPass{}
	p.ObjectBase = InitObjectBase(p, "testpass", 0, 1, 0, 1)
	return p
}

func (p *testSigPass) ProcessBlock(from, to int) {
	buf, scalar, connected := p.SignalInlet(0)
	out := p.SignalOutlet(0)
	for i := from; i < to; i++ {
		if connected {
			out[i] = buf[i]
		} else {
			out[i] = scalar
		}
	}
}

func newTestContext(blockSize int) *Context {
	// 1000Hz makes 1 sample = 1ms, so scheduler tests can reason about
	// timestamps in whole milliseconds.
	return NewContext(1000, blockSize, nil)
}

func TestGraphFanInSumsProducers(t *testing.T) {
	ctx := newTestContext(4)
	g := NewGraph(ctx)

	srcA := newTestSigSource(2)
	srcB := newTestSigSource(3)
	sink := newTestSigSink()

	aID := g.AddObject(srcA)
	bID := g.AddObject(srcB)
	sinkID := g.AddObject(sink)

	if err := g.Connect(aID, 0, sinkID, 0, SignalPort); err != nil {
		t.Fatalf("Connect a->sink: %v", err)
	}
	if err := g.Connect(bID, 0, sinkID, 0, SignalPort); err != nil {
		t.Fatalf("Connect b->sink: %v", err)
	}

	if err := g.EnsureOrdered(); err != nil {
		t.Fatalf("EnsureOrdered: %v", err)
	}
	g.ProcessRange(0, 4)

	for i, v := range sink.last {
		if v != 5 {
			t.Fatalf("sink.last[%d] = %v, want 5 (2+3)", i, v)
		}
	}
}

func TestGraphDetectsSignalCycle(t *testing.T) {
	ctx := newTestContext(4)
	g := NewGraph(ctx)

	a := newTestSigPass()
	b := newTestSigPass()

	aID := g.AddObject(a)
	bID := g.AddObject(b)

	if err := g.Connect(aID, 0, bID, 0, SignalPort); err != nil {
		t.Fatalf("Connect a->b: %v", err)
	}
	if err := g.Connect(bID, 0, aID, 0, SignalPort); err != nil {
		t.Fatalf("Connect b->a: %v", err)
	}

	err := g.EnsureOrdered()
	if err == nil {
		t.Fatalf("EnsureOrdered: expected a cycle error, got nil")
	}
	if _, ok := err.(errCycle); !ok {
		t.Fatalf("EnsureOrdered: got error %v, want errCycle", err)
	}
}

func TestGraphOrderTiesBrokenByCreationOrder(t *testing.T) {
	ctx := newTestContext(4)
	g := NewGraph(ctx)

	first := newTestSigSource(1)
	second := newTestSigSource(2)
	g.AddObject(first)
	g.AddObject(second)

	if err := g.EnsureOrdered(); err != nil {
		t.Fatalf("EnsureOrdered: %v", err)
	}
	if len(g.dspOrder) != 2 {
		t.Fatalf("dspOrder length = %d, want 2", len(g.dspOrder))
	}
	if g.dspOrder[0] != 0 || g.dspOrder[1] != 1 {
		t.Fatalf("dspOrder = %v, want creation order [0 1]", g.dspOrder)
	}
}

func TestRemoveObjectPurgesConnections(t *testing.T) {
	ctx := newTestContext(4)
	g := NewGraph(ctx)

	src := newTestSigSource(1)
	sink := newTestSigSink()
	srcID := g.AddObject(src)
	sinkID := g.AddObject(sink)
	if err := g.Connect(srcID, 0, sinkID, 0, SignalPort); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	g.RemoveObject(srcID)

	if _, ok := g.Object(srcID); ok {
		t.Fatalf("RemoveObject: object still present")
	}
	if len(g.conns) != 0 {
		t.Fatalf("RemoveObject: connections not purged, got %v", g.conns)
	}
}
