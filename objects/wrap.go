package objects

import "patchrt"

// Wrap folds its hot-inlet input into [lower, upper) by repeated
// addition/subtraction of the range.
type Wrap struct {
	patchrt.ObjectBase
	lower, upper float32
}

// NewWrap is a patchrt.Constructor for the "wrap" object type. init
// atoms: [lower upper], [upper] (lower defaults to 0), or none (0,1).
func NewWrap(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	w := &Wrap{lower: 0, upper: 1}
	switch len(init.Atoms) {
	case 1:
		w.upper = floatArg(init.Atoms, 0, 1)
	case 2:
		w.lower = floatArg(init.Atoms, 0, 0)
		w.upper = floatArg(init.Atoms, 1, 1)
	}
	if w.upper < w.lower {
		w.lower, w.upper = w.upper, w.lower
	}
	w.ObjectBase = patchrt.InitObjectBase(w, "wrap", 2, 0, 1, 0)
	return w
}

// ProcessMessage implements patchrt.MessageProcessor.
func (w *Wrap) ProcessMessage(inlet int, msg patchrt.Message) {
	switch inlet {
	case 1:
		switch len(msg.Atoms) {
		case 1:
			w.upper = floatArg(msg.Atoms, 0, w.upper)
		case 2:
			w.lower, w.upper = floatArg(msg.Atoms, 0, w.lower), floatArg(msg.Atoms, 1, w.upper)
		}
		if w.upper < w.lower {
			w.lower, w.upper = w.upper, w.lower
		}
	case 0:
		if len(msg.Atoms) == 0 || msg.Atoms[0].Kind != patchrt.AtomFloat {
			return
		}
		value := msg.Atoms[0].Float
		rng := w.upper - w.lower
		if rng == 0 {
			w.SendMessage(0, patchrt.NewMessage(msg.Timestamp, patchrt.FloatAtom(w.lower)))
			return
		}
		for value >= w.upper {
			value -= rng
		}
		for value < w.lower {
			value += rng
		}
		w.SendMessage(0, patchrt.NewMessage(msg.Timestamp, patchrt.FloatAtom(value)))
	}
}
