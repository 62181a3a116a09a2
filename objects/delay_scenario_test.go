package objects

import (
	"math"
	"testing"

	"patchrt"
)

// sigImpulse is a signal-domain test source emitting 1.0 at absolute
// sample 0 across the whole Context lifetime and 0.0 everywhere after.
type sigImpulse struct {
	patchrt.ObjectBase
	pos int64
}

func newSigImpulse() *sigImpulse {
	s := &sigImpulse{}
	s.ObjectBase = patchrt.InitObjectBase(s, "sigimpulse", 0, 0, 0, 1)
	return s
}

func (s *sigImpulse) ProcessBlock(from, to int) {
	out := s.SignalOutlet(0)
	for i := from; i < to; i++ {
		if s.pos == 0 {
			out[i] = 1
		} else {
			out[i] = 0
		}
		s.pos++
	}
}

// sigSink is a signal-domain spy capturing the most recent block written
// to its sole inlet.
type sigSink struct {
	patchrt.ObjectBase
	last patchrt.Buffer
}

func newSigSink() *sigSink {
	s := &sigSink{}
	s.ObjectBase = patchrt.InitObjectBase(s, "sigsink", 0, 1, 0, 0)
	return s
}

func (s *sigSink) ProcessBlock(from, to int) {
	buf, _, _ := s.SignalInlet(0)
	if s.last == nil {
		s.last = make(patchrt.Buffer, len(buf))
	}
	copy(s.last[from:to], buf[from:to])
}

// TestCatchSeesThrowRegardlessOfCreationOrder exercises the virtual
// ordering edge that places throw~ before catch~ sharing a symbol:
// catch~ is added to the graph first here, which would read a stale
// (all zero) buffer without that edge.
func TestCatchSeesThrowRegardlessOfCreationOrder(t *testing.T) {
	ctx := patchrt.NewContext(1000, 8, nil)
	g := ctx.Root()

	catch := NewCatch(patchrt.NewMessage(0, patchrt.SymbolAtom("bus")), g)
	catchID := g.AddObject(catch)
	sink := newSigSink()
	sinkID := g.AddObject(sink)
	if err := g.Connect(catchID, 0, sinkID, 0, patchrt.SignalPort); err != nil {
		t.Fatalf("Connect catch~->sink: %v", err)
	}

	src := newSigImpulse()
	srcID := g.AddObject(src)
	throw := NewThrow(patchrt.NewMessage(0, patchrt.SymbolAtom("bus")), g)
	throwID := g.AddObject(throw)
	if err := g.Connect(srcID, 0, throwID, 0, patchrt.SignalPort); err != nil {
		t.Fatalf("Connect impulse->throw~: %v", err)
	}

	in := make([]float32, 8)
	out := make([]float32, 8)
	if err := ctx.Process(in, out); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if sink.last[0] != 1 {
		t.Fatalf("sink.last[0] = %v, want 1 (catch~ must see this block's throw~ output)", sink.last[0])
	}
	for i := 1; i < len(sink.last); i++ {
		if sink.last[i] != 0 {
			t.Fatalf("sink.last[%d] = %v, want 0", i, sink.last[i])
		}
	}
}

// TestDelwriteDelreadDelaysImpulse exercises S4: an impulse fed into
// [delwrite~ D 100] reappears at [delread~ D 50] delayed by exactly
// round(50ms * sampleRate/1000) samples.
func TestDelwriteDelreadDelaysImpulse(t *testing.T) {
	sampleRate := 44100.0
	blockSize := 4410 // 100ms, matching delwrite~'s declared line length
	ctx := patchrt.NewContext(sampleRate, blockSize, nil)
	g := ctx.Root()

	src := newSigImpulse()
	srcID := g.AddObject(src)
	dw := NewDelWrite(patchrt.NewMessage(0, patchrt.SymbolAtom("D"), patchrt.FloatAtom(100)), g)
	dwID := g.AddObject(dw)
	if err := g.Connect(srcID, 0, dwID, 0, patchrt.SignalPort); err != nil {
		t.Fatalf("Connect impulse->delwrite~: %v", err)
	}

	dr := NewDelRead(patchrt.NewMessage(0, patchrt.SymbolAtom("D"), patchrt.FloatAtom(50)), g)
	drID := g.AddObject(dr)
	sink := newSigSink()
	sinkID := g.AddObject(sink)
	if err := g.Connect(drID, 0, sinkID, 0, patchrt.SignalPort); err != nil {
		t.Fatalf("Connect delread~->sink: %v", err)
	}

	in := make([]float32, blockSize)
	out := make([]float32, blockSize)
	if err := ctx.Process(in, out); err != nil {
		t.Fatalf("Process: %v", err)
	}

	wantIdx := int(math.Round(50 * sampleRate / 1000))
	for i, v := range sink.last {
		if i == wantIdx {
			if math.Abs(float64(v)-1.0) > 1e-4 {
				t.Fatalf("sink.last[%d] = %v, want ≈1.0 (the delayed impulse)", i, v)
			}
			continue
		}
		if math.Abs(float64(v)) > 1e-4 {
			t.Fatalf("sink.last[%d] = %v, want ≈0 (only sample %d should carry the impulse)", i, v, wantIdx)
		}
	}
}
