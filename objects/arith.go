package objects

import "patchrt"

// binOp implements the standard binary arithmetic operators (+, -, *,
// /): inlet 0 is hot and computes with the current right operand;
// inlet 1 is cold and just updates the right operand.
type binOp struct {
	patchrt.ObjectBase
	right float32
	fn    func(a, b float32) float32
}

func newBinOp(name string, fn func(a, b float32) float32, init patchrt.Message) *binOp {
	o := &binOp{right: floatArg(init.Atoms, 0, 0), fn: fn}
	o.ObjectBase = patchrt.InitObjectBase(o, name, 2, 0, 1, 0)
	return o
}

// ProcessMessage implements patchrt.MessageProcessor.
func (o *binOp) ProcessMessage(inlet int, msg patchrt.Message) {
	switch inlet {
	case 1:
		o.right = firstFloat(msg, o.right)
	case 0:
		if len(msg.Atoms) == 0 || msg.Atoms[0].Kind != patchrt.AtomFloat {
			return
		}
		out := o.fn(msg.Atoms[0].Float, o.right)
		o.SendMessage(0, patchrt.NewMessage(msg.Timestamp, patchrt.FloatAtom(out)))
	}
}

// NewAdd is a patchrt.Constructor for the "+" object type.
func NewAdd(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	return newBinOp("+", func(a, b float32) float32 { return a + b }, init)
}

// NewSub is a patchrt.Constructor for the "-" object type.
func NewSub(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	return newBinOp("-", func(a, b float32) float32 { return a - b }, init)
}

// NewMul is a patchrt.Constructor for the "*" object type.
func NewMul(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	return newBinOp("*", func(a, b float32) float32 { return a * b }, init)
}

// NewDiv is a patchrt.Constructor for the "/" object type. Division by
// zero yields zero rather than propagating Inf/NaN through the message
// domain.
func NewDiv(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	return newBinOp("/", func(a, b float32) float32 {
		if b == 0 {
			return 0
		}
		return a / b
	}, init)
}
