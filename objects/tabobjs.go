package objects

import "patchrt"

// TableDecl declares a named shared audio array of a fixed length,
// resolved by symbol from tabwrite~/tabread~.
type TableDecl struct {
	patchrt.ObjectBase
	sym    Symbol
	length int
}

// NewTableDecl is a patchrt.Constructor for the "table" object type.
// init atoms: [name length].
func NewTableDecl(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	t := &TableDecl{
		sym:    patchrt.Intern(symbolArg(init.Atoms, 0, "")),
		length: int(floatArg(init.Atoms, 1, 44100)),
	}
	t.ObjectBase = patchrt.InitObjectBase(t, "table", 0, 0, 0, 0)
	return t
}

// AfterAdd declares the table once this object's owning Graph is known.
func (t *TableDecl) AfterAdd() {
	t.Graph().Context().Routing().DeclareTable(t.sym, t.length)
}

// TabWrite records its signal inlet into a named table starting at
// index 0 upon a bang on its message inlet, stopping once the table is
// full.
type TabWrite struct {
	patchrt.ObjectBase
	sym       Symbol
	tbl       *patchrt.Table
	recording bool
	writeIdx  int
}

// NewTabWrite is a patchrt.Constructor for the "tabwrite~" object type.
// init atom 0 names the target table.
func NewTabWrite(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	t := &TabWrite{sym: patchrt.Intern(symbolArg(init.Atoms, 0, ""))}
	t.ObjectBase = patchrt.InitObjectBase(t, "tabwrite~", 1, 1, 0, 0)
	return t
}

// AfterAdd resolves the initial table binding and registers for
// re-resolution on every reorder.
func (t *TabWrite) AfterAdd() {
	f := t.Graph().Context().Routing()
	f.RegisterLateBinder(t.ID(), t)
	t.Rebind(f)
}

// Rebind implements patchrt.LateBinder.
func (t *TabWrite) Rebind(f *patchrt.RoutingFabric) {
	if tbl, ok := f.LookupTable(t.sym); ok {
		t.tbl = tbl
	} else {
		t.tbl = nil
	}
}

// ProcessMessage implements patchrt.MessageProcessor: any bang on inlet
// 0 (re)starts recording from index 0.
func (t *TabWrite) ProcessMessage(inlet int, msg patchrt.Message) {
	if inlet == 0 && triggers(msg) {
		t.recording = true
		t.writeIdx = 0
	}
}

// ProcessBlock writes into the table while recording is active.
func (t *TabWrite) ProcessBlock(from, to int) {
	if !t.recording || t.tbl == nil {
		return
	}
	buf, scalar, connected := t.SignalInlet(0)
	for s := from; s < to; s++ {
		if t.writeIdx >= len(t.tbl.Data) {
			t.recording = false
			return
		}
		v := scalar
		if connected {
			v = buf[s]
		}
		t.tbl.Set(t.writeIdx, v)
		t.writeIdx++
	}
}

// Destroy revokes the late-binder registration.
func (t *TabWrite) Destroy() {
	t.Graph().Context().Routing().UnregisterLateBinder(t.ID())
}

// TabRead reads a named table at a signal-rate fractional sample index,
// with linear interpolation between adjacent samples.
type TabRead struct {
	patchrt.ObjectBase
	sym Symbol
	tbl *patchrt.Table
}

// NewTabRead is a patchrt.Constructor for the "tabread~" object type.
// init atom 0 names the source table.
func NewTabRead(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	t := &TabRead{sym: patchrt.Intern(symbolArg(init.Atoms, 0, ""))}
	t.ObjectBase = patchrt.InitObjectBase(t, "tabread~", 0, 1, 0, 1)
	return t
}

// AfterAdd resolves the initial table binding and registers for
// re-resolution on every reorder.
func (t *TabRead) AfterAdd() {
	f := t.Graph().Context().Routing()
	f.RegisterLateBinder(t.ID(), t)
	t.Rebind(f)
}

// Rebind implements patchrt.LateBinder.
func (t *TabRead) Rebind(f *patchrt.RoutingFabric) {
	if tbl, ok := f.LookupTable(t.sym); ok {
		t.tbl = tbl
	} else {
		t.tbl = nil
	}
}

// ProcessBlock reads the table at each sample's index signal, or emits
// silence if the table is unresolved.
func (t *TabRead) ProcessBlock(from, to int) {
	out := t.SignalOutlet(0)
	idxBuf, idxScalar, connected := t.SignalInlet(0)
	for s := from; s < to; s++ {
		if t.tbl == nil {
			out[s] = 0
			continue
		}
		idx := idxScalar
		if connected {
			idx = idxBuf[s]
		}
		out[s] = t.tbl.At(float64(idx))
	}
}

// Destroy revokes the late-binder registration.
func (t *TabRead) Destroy() {
	t.Graph().Context().Routing().UnregisterLateBinder(t.ID())
}
