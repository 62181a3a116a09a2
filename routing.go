package patchrt

// receiveEndpoint is one `receive`-side listener registered against a
// send/receive symbol, in the message domain.
type receiveEndpoint struct {
	obj   ObjectID
	inlet int
}

// LateBinder is implemented by objects (delread~, tabread~, tabwrite~) that
// need to re-resolve a symbol reference whenever the graph is
// reordered. Exported because concrete object types live in a separate
// package from RoutingFabric.
type LateBinder interface {
	Rebind(f *RoutingFabric)
}

// RoutingFabric implements the four parallel global symbol namespaces:
// send/receive, throw/catch, delwrite/delread and tabwrite/tabread. It
// is owned by the Context and shared by every Graph the Context holds.
type RoutingFabric struct {
	ctx *Context

	receivers map[Symbol][]receiveEndpoint

	throwers map[Symbol][]ObjectID // registration order preserved
	catchers map[Symbol][]ObjectID

	delayLines   map[Symbol]*DelayLine
	delayWriters map[Symbol]ObjectID
	delayReaders map[Symbol][]ObjectID

	tables map[Symbol]*Table

	hostReceivers map[Symbol]bool

	lateBinders map[ObjectID]LateBinder

	warnedUnresolved map[Symbol]bool
}

// NewRoutingFabric builds an empty fabric owned by ctx.
func NewRoutingFabric(ctx *Context) *RoutingFabric {
	return &RoutingFabric{
		ctx:              ctx,
		receivers:        map[Symbol][]receiveEndpoint{},
		throwers:         map[Symbol][]ObjectID{},
		catchers:         map[Symbol][]ObjectID{},
		delayLines:       map[Symbol]*DelayLine{},
		delayWriters:     map[Symbol]ObjectID{},
		delayReaders:     map[Symbol][]ObjectID{},
		tables:           map[Symbol]*Table{},
		hostReceivers:    map[Symbol]bool{},
		lateBinders:      map[ObjectID]LateBinder{},
		warnedUnresolved: map[Symbol]bool{},
	}
}

// --- send / receive -------------------------------------------------

// RegisterReceive adds a `receive`-object endpoint for sym.
func (f *RoutingFabric) RegisterReceive(sym Symbol, obj ObjectID, inlet int) {
	f.receivers[sym] = append(f.receivers[sym], receiveEndpoint{obj, inlet})
}

// UnregisterReceive removes a previously registered endpoint.
func (f *RoutingFabric) UnregisterReceive(sym Symbol, obj ObjectID, inlet int) {
	eps := f.receivers[sym]
	for i, e := range eps {
		if e.obj == obj && e.inlet == inlet {
			f.receivers[sym] = append(eps[:i], eps[i+1:]...)
			return
		}
	}
}

// Send delivers msg to every `receive` endpoint registered for sym, in
// registration order, and to the host callback if it registered
// interest in sym via RegisterHostReceiver.
func (f *RoutingFabric) Send(g *Graph, sym Symbol, msg Message) {
	for _, ep := range f.receivers[sym] {
		obj, ok := g.objects[ep.obj]
		if !ok {
			continue
		}
		obj.ReceiveMessage(ep.inlet, msg)
	}
	if f.hostReceivers[sym] && f.ctx != nil {
		f.ctx.callback(HostEvent{Tag: ReceiverMessage, Sym: sym, Msg: msg})
	}
}

// RegisterHostReceiver marks sym as one the host wants delivered via
// the ReceiverMessage callback event.
func (f *RoutingFabric) RegisterHostReceiver(sym Symbol) { f.hostReceivers[sym] = true }

// UnregisterHostReceiver reverses RegisterHostReceiver.
func (f *RoutingFabric) UnregisterHostReceiver(sym Symbol) { delete(f.hostReceivers, sym) }

// --- throw~ / catch~ --------------------------------------------------

// RegisterThrow adds obj as a throw~ contributor for sym.
func (f *RoutingFabric) RegisterThrow(sym Symbol, obj ObjectID) {
	f.throwers[sym] = append(f.throwers[sym], obj)
}

// UnregisterThrow removes obj as a throw~ contributor.
func (f *RoutingFabric) UnregisterThrow(sym Symbol, obj ObjectID) {
	ids := f.throwers[sym]
	for i, id := range ids {
		if id == obj {
			f.throwers[sym] = append(ids[:i], ids[i+1:]...)
			return
		}
	}
}

// ThrowBuffers returns the current outlet-0 signal buffers of every
// throw~ registered for sym, for catch~ to sum. Unresolved (no
// matching throw~) simply yields no buffers.
func (f *RoutingFabric) ThrowBuffers(g *Graph, sym Symbol) []Buffer {
	ids := f.throwers[sym]
	if len(ids) == 0 {
		return nil
	}
	bufs := make([]Buffer, 0, len(ids))
	for _, id := range ids {
		obj, ok := g.objects[id]
		if !ok {
			continue
		}
		b := baseOf(obj)
		if b == nil || len(b.sigOutBuf) == 0 {
			continue
		}
		bufs = append(bufs, b.sigOutBuf[0])
	}
	return bufs
}

// RegisterCatch adds obj as a catch~ listener for sym, so the DSP
// ordering sort (via virtualOrderEdges) runs it after every throw~
// sharing sym.
func (f *RoutingFabric) RegisterCatch(sym Symbol, obj ObjectID) {
	f.catchers[sym] = append(f.catchers[sym], obj)
}

// UnregisterCatch removes obj as a catch~ listener for sym.
func (f *RoutingFabric) UnregisterCatch(sym Symbol, obj ObjectID) {
	ids := f.catchers[sym]
	for i, id := range ids {
		if id == obj {
			f.catchers[sym] = append(ids[:i], ids[i+1:]...)
			return
		}
	}
}

// --- delwrite~ / delread~ --------------------------------------------

// DeclareDelayLine creates (or replaces) the named delay line, called
// by delwrite~ once it has been added to a graph (its AfterAdd).
func (f *RoutingFabric) DeclareDelayLine(sym Symbol, writer ObjectID, lengthMs float64, sampleRate float64, blockSize int) *DelayLine {
	dl := NewDelayLine(sampleRate, lengthMs, blockSize)
	f.delayLines[sym] = dl
	f.delayWriters[sym] = writer
	return dl
}

// RemoveDelayLine revokes a delwrite~'s registration on destruction.
func (f *RoutingFabric) RemoveDelayLine(sym Symbol) {
	delete(f.delayLines, sym)
	delete(f.delayWriters, sym)
}

// LookupDelayLine resolves sym to its delay line, if any writer has
// declared it.
func (f *RoutingFabric) LookupDelayLine(sym Symbol) (*DelayLine, bool) {
	dl, ok := f.delayLines[sym]
	return dl, ok
}

// RegisterDelayReader records a delread~ interested in sym, for the
// ordering pass and for late re-binding.
func (f *RoutingFabric) RegisterDelayReader(sym Symbol, obj ObjectID, lb LateBinder) {
	f.delayReaders[sym] = append(f.delayReaders[sym], obj)
	f.lateBinders[obj] = lb
}

// UnregisterDelayReader reverses RegisterDelayReader.
func (f *RoutingFabric) UnregisterDelayReader(sym Symbol, obj ObjectID) {
	ids := f.delayReaders[sym]
	for i, id := range ids {
		if id == obj {
			f.delayReaders[sym] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	delete(f.lateBinders, obj)
}

// --- tabwrite / tabread ------------------------------------------------

// DeclareTable creates (or replaces) a named table.
func (f *RoutingFabric) DeclareTable(sym Symbol, length int) *Table {
	t := NewTable(sym, length)
	f.tables[sym] = t
	return t
}

// LookupTable resolves sym to its table, if declared.
func (f *RoutingFabric) LookupTable(sym Symbol) (*Table, bool) {
	t, ok := f.tables[sym]
	return t, ok
}

// RegisterLateBinder marks obj (typically tabread~/tabwrite~) for
// notification on every reorder.
func (f *RoutingFabric) RegisterLateBinder(obj ObjectID, lb LateBinder) {
	f.lateBinders[obj] = lb
}

// UnregisterLateBinder reverses RegisterLateBinder.
func (f *RoutingFabric) UnregisterLateBinder(obj ObjectID) { delete(f.lateBinders, obj) }

// --- reordering hooks --------------------------------------------------

// reresolve is called by Graph.computeDSPOrder after every reorder: it
// notifies late binders and reports a one-time CANNOT_FIND_OBJECT
// notice for any delay reader whose writer is still missing.
func (f *RoutingFabric) reresolve(g *Graph) {
	for _, lb := range f.lateBinders {
		lb.Rebind(f)
	}
	for sym, readers := range f.delayReaders {
		if len(readers) == 0 {
			continue
		}
		if _, ok := f.delayLines[sym]; ok {
			f.warnedUnresolved[sym] = false
			continue
		}
		if !f.warnedUnresolved[sym] && f.ctx != nil {
			f.warnedUnresolved[sym] = true
			f.ctx.callback(HostEvent{Tag: CannotFindObject, Str: "delwrite~ " + sym.String()})
		}
	}
}

// virtualOrderEdge is a same-block ordering constraint with no real
// graph edge behind it: the routing fabric, not a wire, is what makes
// "from" need to run before "to".
type virtualOrderEdge struct {
	from, to ObjectID
}

// virtualOrderEdges lists every delwrite~-before-delread~ and
// throw~-before-catch~ constraint for the Graph's topological sort to
// fold in alongside its real signal edges: delwrite~/delread~ and
// throw~/catch~ pairs share no direct connection, so without this the
// sort would have no reason to order them at all.
func (f *RoutingFabric) virtualOrderEdges() []virtualOrderEdge {
	var edges []virtualOrderEdge
	for sym, writer := range f.delayWriters {
		for _, reader := range f.delayReaders[sym] {
			edges = append(edges, virtualOrderEdge{from: writer, to: reader})
		}
	}
	for sym, throwerIDs := range f.throwers {
		for _, thrower := range throwerIDs {
			for _, catcher := range f.catchers[sym] {
				edges = append(edges, virtualOrderEdge{from: thrower, to: catcher})
			}
		}
	}
	return edges
}
