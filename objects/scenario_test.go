package objects

import (
	"math"
	"testing"

	"patchrt"
)

// TestMetroCounterEmitsQuarterSecondTicks exercises the [bang]->[metro
// 250]->[counter] chain end to end through the real engine clock: an
// external bang starts the metro immediately, then four 250ms blocks
// are processed to carry it through three re-arms.
func TestMetroCounterEmitsQuarterSecondTicks(t *testing.T) {
	blockSize := 250
	ctx := patchrt.NewContext(1000, blockSize, nil) // 1 sample = 1ms
	g := ctx.Root()

	metro := NewMetro(patchrt.NewMessage(0, patchrt.FloatAtom(250)), g)
	metroID := g.AddObject(metro)
	counter := NewCounter(patchrt.NewMessage(0), g)
	counterID := g.AddObject(counter)
	c := newCollector()
	cID := g.AddObject(c)

	if err := g.Connect(metroID, 0, counterID, 0, patchrt.MessagePort); err != nil {
		t.Fatalf("Connect metro->counter: %v", err)
	}
	if err := g.Connect(counterID, 0, cID, 0, patchrt.MessagePort); err != nil {
		t.Fatalf("Connect counter->collector: %v", err)
	}

	metro.(*Metro).ProcessMessage(0, patchrt.NewMessage(0, patchrt.BangAtom()))

	in := make([]float32, blockSize)
	out := make([]float32, blockSize)
	for i := 0; i < 4; i++ {
		if err := ctx.Process(in, out); err != nil {
			t.Fatalf("Process block %d: %v", i, err)
		}
	}

	want := []float32{0, 1, 2, 3}
	got := c.floats()
	if len(got) != len(want) {
		t.Fatalf("got %v ticks, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tick[%d] = %v, want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}

// TestOscDacProducesExpectedFirstBlock exercises [osc~ 441]->[dac~]:
// sample 0 should read the oscillator's peak (≈1.0), and the signal
// should cross zero near a quarter period later.
func TestOscDacProducesExpectedFirstBlock(t *testing.T) {
	sampleRate := 44100.0
	blockSize := 128
	ctx := patchrt.NewContext(sampleRate, blockSize, nil)
	g := ctx.Root()

	osc := NewOsc(patchrt.NewMessage(0, patchrt.FloatAtom(441)), g)
	oscID := g.AddObject(osc)
	dac := NewDac(patchrt.NewMessage(0), g)
	dacID := g.AddObject(dac)
	if err := g.Connect(oscID, 0, dacID, 0, patchrt.SignalPort); err != nil {
		t.Fatalf("Connect osc~->dac~: %v", err)
	}

	in := make([]float32, blockSize)
	out := make([]float32, blockSize)
	if err := ctx.Process(in, out); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if math.Abs(float64(out[0])-1.0) > 1e-3 {
		t.Fatalf("out[0] = %v, want ≈1.0", out[0])
	}

	quarterPeriod := int(math.Round(sampleRate / (4 * 441)))
	crossed := false
	for s := quarterPeriod - 2; s <= quarterPeriod+2 && s+1 < blockSize; s++ {
		if s < 0 {
			continue
		}
		if (out[s] >= 0) != (out[s+1] >= 0) {
			crossed = true
			break
		}
	}
	if !crossed {
		t.Fatalf("no zero crossing found near sample %d (±2), block: %v", quarterPeriod, out[:blockSize])
	}
}

// TestSendReceivePrintFiresHostCallback exercises S3: send_to_receiver
// delivers to a matching receive object synchronously within the block
// it lands in, in this case forwarding into a print object which
// surfaces the value through the host PRINT_STD callback.
func TestSendReceivePrintFiresHostCallback(t *testing.T) {
	var lines []string
	ctx := patchrt.NewContext(1000, 64, func(e patchrt.HostEvent) {
		if e.Tag == patchrt.PrintStd {
			lines = append(lines, e.Str)
		}
	})
	g := ctx.Root()

	recv := NewReceive(patchrt.NewMessage(0, patchrt.SymbolAtom("X")), g)
	recvID := g.AddObject(recv)
	pr := NewPrint(patchrt.NewMessage(0, patchrt.SymbolAtom("p")), g)
	prID := g.AddObject(pr)
	if err := g.Connect(recvID, 0, prID, 0, patchrt.MessagePort); err != nil {
		t.Fatalf("Connect receive->print: %v", err)
	}

	ctx.SendToReceiver("X", patchrt.NewMessage(10, patchrt.FloatAtom(3.14)))

	in := make([]float32, 64)
	out := make([]float32, 64)
	if err := ctx.Process(in, out); err != nil {
		t.Fatalf("Process: %v", err)
	}

	found := false
	for _, l := range lines {
		if l == "p: 3.14" {
			found = true
		}
	}
	if !found {
		t.Fatalf("PRINT_STD lines = %v, want one equal to %q", lines, "p: 3.14")
	}
}
