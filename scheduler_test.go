package patchrt

import "testing"

type testSpy struct {
	ObjectBase
	received []Message
	ranges   [][2]int
}

func newTestSpy() *testSpy {
	s := &testSpy{}
	// A signal outlet (even though unused) keeps this object in the DSP
	// participation set, so ProcessBlock/ProcessRange calls are recorded.
	s.ObjectBase = InitObjectBase(s, "testspy", 1, 0, 0, 1)
	return s
}

func (s *testSpy) ProcessMessage(inlet int, msg Message) {
	s.received = append(s.received, msg)
}

func (s *testSpy) ProcessBlock(from, to int) {
	s.ranges = append(s.ranges, [2]int{from, to})
}

func TestSchedulerOrdersByTimestampThenSequence(t *testing.T) {
	ctx := newTestContext(64)
	spy := newTestSpy()
	spyID := ctx.Root().AddObject(spy)

	// Enqueue out of order; expect delivery in timestamp order.
	ctx.Scheduler().ScheduleMessage(spyID, 0, NewMessage(5, FloatAtom(2)))
	ctx.Scheduler().ScheduleMessage(spyID, 0, NewMessage(1, FloatAtom(1)))
	ctx.Scheduler().ScheduleMessage(spyID, 0, NewMessage(1, FloatAtom(0))) // same ts, later seq

	in := make([]float32, 64)
	out := make([]float32, 64)
	if err := ctx.Process(in, out); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(spy.received) != 3 {
		t.Fatalf("received %d messages, want 3", len(spy.received))
	}
	want := []float32{1, 0, 2}
	for i, m := range spy.received {
		if m.Atoms[0].Float != want[i] {
			t.Fatalf("received[%d] = %v, want %v", i, m.Atoms[0].Float, want[i])
		}
	}
}

func TestSchedulerCancelMessage(t *testing.T) {
	ctx := newTestContext(64)
	spy := newTestSpy()
	spyID := ctx.Root().AddObject(spy)

	h := ctx.Scheduler().ScheduleMessage(spyID, 0, NewMessage(1, FloatAtom(1)))
	ctx.Scheduler().CancelMessage(h)

	in := make([]float32, 64)
	out := make([]float32, 64)
	if err := ctx.Process(in, out); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(spy.received) != 0 {
		t.Fatalf("received %d messages after cancel, want 0", len(spy.received))
	}
}

func TestSchedulerSplitsBlockAtMessageBoundary(t *testing.T) {
	sampleRate := 1000.0 // 1 sample = 1ms, easy to reason about
	blockSize := 10
	ctx := NewContext(sampleRate, blockSize, nil)
	spy := newTestSpy()
	spyID := ctx.Root().AddObject(spy)

	// A message at 5ms into a 10ms block should split ProcessRange at
	// sample 5.
	ctx.Scheduler().ScheduleMessage(spyID, 0, NewMessage(5, BangAtom()))

	in := make([]float32, blockSize)
	out := make([]float32, blockSize)
	if err := ctx.Process(in, out); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(spy.ranges) < 2 {
		t.Fatalf("ProcessBlock called %d times, want at least 2 (split)", len(spy.ranges))
	}
	if spy.ranges[0] != [2]int{0, 5} {
		t.Fatalf("first range = %v, want [0 5]", spy.ranges[0])
	}
}

func TestPurgeObjectCancelsPendingDeliveries(t *testing.T) {
	ctx := newTestContext(64)
	spy := newTestSpy()
	spyID := ctx.Root().AddObject(spy)

	ctx.Scheduler().ScheduleMessage(spyID, 0, NewMessage(1, FloatAtom(1)))
	ctx.Root().RemoveObject(spyID)

	in := make([]float32, 64)
	out := make([]float32, 64)
	if err := ctx.Process(in, out); err != nil {
		t.Fatalf("Process: %v", err)
	}
	// spy is destroyed; nothing to assert on it directly, but Process
	// must not panic trying to deliver to a removed object.
}
