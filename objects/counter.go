package objects

import "patchrt"

// Counter emits its running count as a Float on every bang received,
// then increments. Commonly wired downstream of metro.
type Counter struct {
	patchrt.ObjectBase
	count float32
}

// NewCounter is a patchrt.Constructor for the "counter" object type.
func NewCounter(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	c := &Counter{}
	c.ObjectBase = patchrt.InitObjectBase(c, "counter", 2, 0, 1, 0)
	return c
}

// ProcessMessage implements patchrt.MessageProcessor.
func (c *Counter) ProcessMessage(inlet int, msg patchrt.Message) {
	switch inlet {
	case 1:
		if len(msg.Atoms) > 0 && msg.Atoms[0].Kind == patchrt.AtomFloat {
			c.count = msg.Atoms[0].Float
		}
	case 0:
		if !triggers(msg) {
			return
		}
		c.SendMessage(0, patchrt.NewMessage(msg.Timestamp, patchrt.FloatAtom(c.count)))
		c.count++
	}
}
