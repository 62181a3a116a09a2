package patchrt

import "testing"

func TestProcessProducesSilenceForEmptyPatch(t *testing.T) {
	ctx := newTestContext(8)
	in := make([]float32, 8)
	out := make([]float32, 8)
	for i := range out {
		out[i] = 99 // sentinel; Process must overwrite with silence
	}
	if err := ctx.Process(in, out); err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v, want 0 for an empty patch", i, v)
		}
	}
}

func TestProcessRejectsWrongBlockSize(t *testing.T) {
	ctx := newTestContext(8)
	in := make([]float32, 8)
	out := make([]float32, 4)
	if err := ctx.Process(in, out); err == nil {
		t.Fatalf("Process: expected an error for mismatched block size, got nil")
	}
}

func TestSendToReceiverReachesRegisteredObject(t *testing.T) {
	ctx := newTestContext(8)
	spy := newRecvSpy()
	id := ctx.Root().AddObject(spy)
	ctx.Routing().RegisterReceive(Intern("host"), id, 0)

	ctx.SendToReceiver("host", NewMessage(0, FloatAtom(42)))

	in := make([]float32, 8)
	out := make([]float32, 8)
	if err := ctx.Process(in, out); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(spy.got) != 1 || spy.got[0].Atoms[0].Float != 42 {
		t.Fatalf("spy.got = %v, want one message carrying 42", spy.got)
	}
}

func TestRegisterReceiverFiresHostCallback(t *testing.T) {
	var events []HostEvent
	ctx := NewContext(1000, 8, func(e HostEvent) { events = append(events, e) })
	ctx.RegisterReceiver("status")

	ctx.SendToReceiver("status", NewMessage(0, SymbolAtom("ready")))

	in := make([]float32, 8)
	out := make([]float32, 8)
	if err := ctx.Process(in, out); err != nil {
		t.Fatalf("Process: %v", err)
	}

	found := false
	for _, e := range events {
		if e.Tag == ReceiverMessage && e.Sym == Intern("status") {
			found = true
		}
	}
	if !found {
		t.Fatalf("host callback never observed a ReceiverMessage event for %q", "status")
	}
}

func TestDestroyContextRunsDestroyHooks(t *testing.T) {
	ctx := newTestContext(8)
	sink := newTestSigSink()
	id := ctx.Root().AddObject(sink)
	DestroyContext(ctx)
	if _, ok := ctx.Root().Object(id); ok {
		t.Fatalf("object still present after DestroyContext")
	}
}
