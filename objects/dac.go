package objects

import "patchrt"

// Dac writes its signal inlet into the context's output block, summing
// with any other dac~ in the patch (Context.Process zeroes the block
// before signal dispatch). It is the one object type allowed to touch
// Context.IOOutput.
type Dac struct {
	patchrt.ObjectBase
}

// NewDac is a patchrt.Constructor for the "dac~" object type.
func NewDac(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	d := &Dac{}
	d.ObjectBase = patchrt.InitObjectBase(d, "dac~", 0, 1, 0, 0)
	return d
}

// ProcessBlock implements patchrt.Object.
func (d *Dac) ProcessBlock(from, to int) {
	out := d.Graph().Context().IOOutput()
	buf, scalar, connected := d.SignalInlet(0)
	for s := from; s < to; s++ {
		if connected {
			out[s] += buf[s]
		} else {
			out[s] += scalar
		}
	}
}

// Adc copies the context's input block onto its signal outlet.
type Adc struct {
	patchrt.ObjectBase
}

// NewAdc is a patchrt.Constructor for the "adc~" object type.
func NewAdc(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	a := &Adc{}
	a.ObjectBase = patchrt.InitObjectBase(a, "adc~", 0, 0, 0, 1)
	return a
}

// ProcessBlock implements patchrt.Object.
func (a *Adc) ProcessBlock(from, to int) {
	in := a.Graph().Context().IOInput()
	out := a.SignalOutlet(0)
	for s := from; s < to; s++ {
		out[s] = in[s]
	}
}
