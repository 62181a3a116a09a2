package objects

import (
	"math"

	"patchrt"
)

const twoPi = 2 * math.Pi

// Osc is a phase-accumulator cosine oscillator (a shared lookup table
// would replace the per-object math.Cos call in a version tuned for
// steady-state throughput; direct computation is kept here for
// clarity). Its signal inlet 0 carries frequency in Hz (or, disconnected,
// the scalar set by the last message on message inlet 0); message inlet
// 1 resets phase to a 0..1 fraction of a cycle. Starting from cosine
// rather than sine means a freshly created oscillator outputs its peak
// value on its very first sample.
type Osc struct {
	patchrt.ObjectBase
	phase      float64
	sampleRate float64
}

// NewOsc is a patchrt.Constructor for the "osc~" object type. init atom
// 0, if present, seeds the initial scalar frequency.
func NewOsc(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	o := &Osc{sampleRate: g.Context().SampleRate}
	o.ObjectBase = patchrt.InitObjectBase(o, "osc~", 2, 1, 0, 1)
	o.SetScalar(0, floatArg(init.Atoms, 0, 0))
	return o
}

// ProcessMessage implements patchrt.MessageProcessor.
func (o *Osc) ProcessMessage(inlet int, msg patchrt.Message) {
	switch inlet {
	case 0:
		o.SetScalar(0, firstFloat(msg, 0))
	case 1:
		o.phase = math.Mod(float64(firstFloat(msg, 0)), 1)
		if o.phase < 0 {
			o.phase++
		}
	}
}

// ProcessBlock implements the phase accumulator: phase advances by
// freq/sampleRate each sample and wraps at 1.
func (o *Osc) ProcessBlock(from, to int) {
	freqBuf, freqScalar, connected := o.SignalInlet(0)
	out := o.SignalOutlet(0)
	for s := from; s < to; s++ {
		freq := freqScalar
		if connected {
			freq = freqBuf[s]
		}
		out[s] = float32(math.Cos(o.phase * twoPi))
		o.phase += float64(freq) / o.sampleRate
		o.phase -= math.Floor(o.phase)
	}
}
