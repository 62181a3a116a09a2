package objects

import "patchrt"

// Symbol is a local alias so this file reads naturally; it is the same
// type as patchrt.Symbol.
type Symbol = patchrt.Symbol

// DelWrite feeds its signal inlet into a named delay line that any
// number of DelRead objects can read back at independent delay times.
// There is no direct signal-wire edge between a delwrite~/delread~
// pair; ordering is guaranteed by a virtual edge the Graph folds into
// its topological sort, not by a wired connection.
type DelWrite struct {
	patchrt.ObjectBase
	sym      Symbol
	lengthMs float64
	dl       *patchrt.DelayLine
	scratch  patchrt.Buffer
}

// NewDelWrite is a patchrt.Constructor for the "delwrite~" object type.
// init atoms: [name lengthMs]; lengthMs defaults to 1000.
func NewDelWrite(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	d := &DelWrite{
		sym:      patchrt.Intern(symbolArg(init.Atoms, 0, "")),
		lengthMs: float64(floatArg(init.Atoms, 1, 1000)),
	}
	d.ObjectBase = patchrt.InitObjectBase(d, "delwrite~", 0, 1, 0, 0)
	return d
}

// AfterAdd declares the delay line once this object's ObjectID and
// owning Graph are known.
func (d *DelWrite) AfterAdd() {
	ctx := d.Graph().Context()
	d.dl = ctx.Routing().DeclareDelayLine(d.sym, d.ID(), d.lengthMs, ctx.SampleRate, ctx.BlockSize)
}

// ProcessBlock writes this block's [from,to) samples into the delay
// line's history.
func (d *DelWrite) ProcessBlock(from, to int) {
	buf, scalar, connected := d.SignalInlet(0)
	if !connected {
		if len(d.scratch) < to {
			d.scratch = make(patchrt.Buffer, to)
		}
		for i := from; i < to; i++ {
			d.scratch[i] = scalar
		}
		d.dl.Write(d.scratch, from, to)
		return
	}
	d.dl.Write(buf, from, to)
}

// Destroy revokes the routing-fabric registration.
func (d *DelWrite) Destroy() {
	d.Graph().Context().Routing().RemoveDelayLine(d.sym)
}

// DelRead reads a named delay line back at a settable delay, re-resolving
// its target line every time the graph reorders (a delwrite~ may be
// created after its delread~ readers).
type DelRead struct {
	patchrt.ObjectBase
	sym     Symbol
	delayMs float64
	dl      *patchrt.DelayLine
}

// NewDelRead is a patchrt.Constructor for the "delread~" object type.
// init atoms: [name delayMs]; delayMs defaults to 0.
func NewDelRead(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	d := &DelRead{
		sym:     patchrt.Intern(symbolArg(init.Atoms, 0, "")),
		delayMs: float64(floatArg(init.Atoms, 1, 0)),
	}
	d.ObjectBase = patchrt.InitObjectBase(d, "delread~", 1, 0, 0, 1)
	return d
}

// AfterAdd registers this reader with the routing fabric and resolves
// its initial delay line, if one is already declared.
func (d *DelRead) AfterAdd() {
	f := d.Graph().Context().Routing()
	f.RegisterDelayReader(d.sym, d.ID(), d)
	d.Rebind(f)
}

// Rebind implements patchrt.LateBinder.
func (d *DelRead) Rebind(f *patchrt.RoutingFabric) {
	if dl, ok := f.LookupDelayLine(d.sym); ok {
		d.dl = dl
	} else {
		d.dl = nil
	}
}

// ProcessMessage implements patchrt.MessageProcessor: a float on inlet 0
// changes the delay time.
func (d *DelRead) ProcessMessage(inlet int, msg patchrt.Message) {
	if inlet == 0 {
		d.delayMs = float64(firstFloat(msg, float32(d.delayMs)))
	}
}

// ProcessBlock reads the delay line, or emits silence if unresolved.
func (d *DelRead) ProcessBlock(from, to int) {
	out := d.SignalOutlet(0)
	if d.dl == nil {
		for s := from; s < to; s++ {
			out[s] = 0
		}
		return
	}
	d.dl.ReadInto(out, from, to, d.delayMs)
}

// Destroy revokes the routing-fabric registration.
func (d *DelRead) Destroy() {
	d.Graph().Context().Routing().UnregisterDelayReader(d.sym, d.ID())
}
