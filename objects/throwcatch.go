package objects

import "patchrt"

// Throw sums its signal inlet into a named bus that any number of catch~
// objects can read back, without a direct graph edge.
type Throw struct {
	patchrt.ObjectBase
	sym patchrt.Symbol
}

// NewThrow is a patchrt.Constructor for the "throw~" object type.
func NewThrow(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	t := &Throw{sym: patchrt.Intern(symbolArg(init.Atoms, 0, ""))}
	t.ObjectBase = patchrt.InitObjectBase(t, "throw~", 0, 1, 0, 1)
	return t
}

// AfterAdd registers this throw~ contributor once its ObjectID is known.
func (t *Throw) AfterAdd() {
	t.Graph().Context().Routing().RegisterThrow(t.sym, t.ID())
}

// ProcessBlock copies the input signal straight through to its own
// outlet buffer, which is what ThrowBuffers hands to every catch~.
func (t *Throw) ProcessBlock(from, to int) {
	buf, scalar, connected := t.SignalInlet(0)
	out := t.SignalOutlet(0)
	for s := from; s < to; s++ {
		if connected {
			out[s] = buf[s]
		} else {
			out[s] = scalar
		}
	}
}

// Destroy revokes the routing-fabric registration.
func (t *Throw) Destroy() {
	t.Graph().Context().Routing().UnregisterThrow(t.sym, t.ID())
}

// Catch sums every throw~ registered under the same symbol into its
// signal outlet each block.
type Catch struct {
	patchrt.ObjectBase
	sym patchrt.Symbol
}

// NewCatch is a patchrt.Constructor for the "catch~" object type.
func NewCatch(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	c := &Catch{sym: patchrt.Intern(symbolArg(init.Atoms, 0, ""))}
	c.ObjectBase = patchrt.InitObjectBase(c, "catch~", 0, 0, 0, 1)
	return c
}

// AfterAdd registers this catch~ listener so the Graph's DSP ordering
// pass places every throw~ sharing its symbol before it.
func (c *Catch) AfterAdd() {
	c.Graph().Context().Routing().RegisterCatch(c.sym, c.ID())
}

// ProcessBlock sums the outlet-0 buffers of every throw~ registered
// under the same symbol. The Graph's DSP ordering pass guarantees
// those throw~ objects already ran this block.
func (c *Catch) ProcessBlock(from, to int) {
	out := c.SignalOutlet(0)
	for s := from; s < to; s++ {
		out[s] = 0
	}
	for _, buf := range c.Graph().Context().Routing().ThrowBuffers(c.Graph(), c.sym) {
		if buf == nil {
			continue
		}
		for s := from; s < to; s++ {
			out[s] += buf[s]
		}
	}
}

// Destroy revokes the routing-fabric registration.
func (c *Catch) Destroy() {
	c.Graph().Context().Routing().UnregisterCatch(c.sym, c.ID())
}
