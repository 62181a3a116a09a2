package objects

import "patchrt"

// sigBinOp implements a per-sample binary signal operator (+~, *~):
// both inlets accept a wired signal or fall back to a scalar set by a
// message on the matching message inlet.
type sigBinOp struct {
	patchrt.ObjectBase
	fn func(a, b float32) float32
}

func newSigBinOp(name string, fn func(a, b float32) float32, init patchrt.Message) *sigBinOp {
	o := &sigBinOp{fn: fn}
	o.ObjectBase = patchrt.InitObjectBase(o, name, 2, 2, 0, 1)
	o.SetScalar(1, floatArg(init.Atoms, 0, 0))
	return o
}

// ProcessMessage implements patchrt.MessageProcessor.
func (o *sigBinOp) ProcessMessage(inlet int, msg patchrt.Message) {
	if inlet < 0 || inlet > 1 {
		return
	}
	o.SetScalar(inlet, firstFloat(msg, 0))
}

// ProcessBlock implements patchrt.Object.
func (o *sigBinOp) ProcessBlock(from, to int) {
	aBuf, aScalar, aConn := o.SignalInlet(0)
	bBuf, bScalar, bConn := o.SignalInlet(1)
	out := o.SignalOutlet(0)
	for s := from; s < to; s++ {
		a, b := aScalar, bScalar
		if aConn {
			a = aBuf[s]
		}
		if bConn {
			b = bBuf[s]
		}
		out[s] = o.fn(a, b)
	}
}

// NewSigAdd is a patchrt.Constructor for the "+~" object type.
func NewSigAdd(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	return newSigBinOp("+~", func(a, b float32) float32 { return a + b }, init)
}

// NewSigMul is a patchrt.Constructor for the "*~" object type.
func NewSigMul(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	return newSigBinOp("*~", func(a, b float32) float32 { return a * b }, init)
}
