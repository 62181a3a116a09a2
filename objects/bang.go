package objects

import "patchrt"

// Bang passes any message received on its single inlet through as a
// bang on its outlet, at the incoming message's timestamp. It is the
// standard way to kick off a patch, e.g. [bang]->[metro].
type Bang struct {
	patchrt.ObjectBase
}

// NewBang is a patchrt.Constructor for the "bang" object type.
func NewBang(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	b := &Bang{}
	b.ObjectBase = patchrt.InitObjectBase(b, "bang", 1, 0, 1, 0)
	return b
}

// ProcessMessage implements patchrt.MessageProcessor.
func (b *Bang) ProcessMessage(inlet int, msg patchrt.Message) {
	if inlet != 0 {
		return
	}
	b.SendMessage(0, patchrt.NewMessage(msg.Timestamp, patchrt.BangAtom()))
}
