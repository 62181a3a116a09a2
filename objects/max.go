package objects

import "patchrt"

// Max outputs max(input, right) on its hot inlet, where right is set
// once at construction (or by a cold-inlet message) and does NOT track
// a running maximum. A bang on the hot inlet re-emits the last output
// rather than recomputing: [max 5] fed 2, 7, BANG, 3, BANG outputs
// 5, 7, 7, 5, 5.
type Max struct {
	patchrt.ObjectBase
	right      float32
	lastOutput float32
	hasOutput  bool
}

// NewMax is a patchrt.Constructor for the "max" object type.
func NewMax(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	m := &Max{right: floatArg(init.Atoms, 0, 0)}
	m.ObjectBase = patchrt.InitObjectBase(m, "max", 2, 0, 1, 0)
	return m
}

// ProcessMessage implements patchrt.MessageProcessor.
func (m *Max) ProcessMessage(inlet int, msg patchrt.Message) {
	switch inlet {
	case 1:
		m.right = firstFloat(msg, m.right)
	case 0:
		if len(msg.Atoms) == 0 {
			return
		}
		if msg.Atoms[0].Kind == patchrt.AtomBang {
			if m.hasOutput {
				m.SendMessage(0, patchrt.NewMessage(msg.Timestamp, patchrt.FloatAtom(m.lastOutput)))
			}
			return
		}
		if msg.Atoms[0].Kind != patchrt.AtomFloat {
			return
		}
		v := msg.Atoms[0].Float
		if v < m.right {
			v = m.right
		}
		m.lastOutput = v
		m.hasOutput = true
		m.SendMessage(0, patchrt.NewMessage(msg.Timestamp, patchrt.FloatAtom(v)))
	}
}
