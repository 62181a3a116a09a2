package objects

import "patchrt"

// Pack collects one value per inlet and emits them together as a single
// list message whenever its hot inlet (0) fires; cold inlets just latch
// their most recent value, mirroring the +/- family's inlet policy.
type Pack struct {
	patchrt.ObjectBase
	values []patchrt.Atom
}

// NewPack is a patchrt.Constructor for the "pack" object type. Each init
// atom seeds the corresponding inlet's initial latched value; the inlet
// count equals len(init.Atoms), minimum 1.
func NewPack(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	n := len(init.Atoms)
	if n < 1 {
		n = 1
	}
	values := make([]patchrt.Atom, n)
	for i := range values {
		if i < len(init.Atoms) {
			values[i] = init.Atoms[i]
		} else {
			values[i] = patchrt.FloatAtom(0)
		}
	}
	p := &Pack{values: values}
	p.ObjectBase = patchrt.InitObjectBase(p, "pack", n, 0, 1, 0)
	return p
}

// ProcessMessage implements patchrt.MessageProcessor.
func (p *Pack) ProcessMessage(inlet int, msg patchrt.Message) {
	if len(msg.Atoms) == 0 {
		return
	}
	if inlet < 0 || inlet >= len(p.values) {
		return
	}
	p.values[inlet] = msg.Atoms[0]
	if inlet != 0 {
		return
	}
	out := make([]patchrt.Atom, len(p.values))
	copy(out, p.values)
	p.SendMessage(0, patchrt.Message{Timestamp: msg.Timestamp, Atoms: []patchrt.Atom{patchrt.ListAtom(out...)}})
}

// Unpack is the inverse of Pack: it takes a single list message on its
// one inlet and emits each element from its own outlet, highest outlet
// first, matching the source lineage's right-to-left fanout so that a
// downstream chain reading left-to-right sees consistent ordering
// despite the synchronous delivery within one message.
type Unpack struct {
	patchrt.ObjectBase
}

// NewUnpack is a patchrt.Constructor for the "unpack" object type. The
// outlet count equals len(init.Atoms), minimum 1.
func NewUnpack(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	n := len(init.Atoms)
	if n < 1 {
		n = 1
	}
	u := &Unpack{}
	u.ObjectBase = patchrt.InitObjectBase(u, "unpack", 1, 0, n, 0)
	return u
}

// ProcessMessage implements patchrt.MessageProcessor.
func (u *Unpack) ProcessMessage(inlet int, msg patchrt.Message) {
	if len(msg.Atoms) == 0 {
		return
	}
	atoms := msg.Atoms
	if msg.Atoms[0].Kind == patchrt.AtomList {
		atoms = msg.Atoms[0].Nested
	}
	n := u.NumMessageOutlets()
	for outlet := n - 1; outlet >= 0; outlet-- {
		if outlet >= len(atoms) {
			continue
		}
		u.SendMessage(outlet, patchrt.NewMessage(msg.Timestamp, atoms[outlet]))
	}
}
