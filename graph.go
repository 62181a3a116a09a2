package patchrt

import "sort"

const maxReentrantDepth = 128

// hasBase is implemented (via promotion) by every concrete object type
// that embeds ObjectBase; it gives the Graph package-private access to
// the mechanical bookkeeping fields without exposing them on the public
// Object interface.
type hasBase interface {
	base() *ObjectBase
}

func (b *ObjectBase) base() *ObjectBase { return b }

func baseOf(o Object) *ObjectBase {
	if hb, ok := o.(hasBase); ok {
		return hb.base()
	}
	return nil
}

type portKey struct {
	obj  ObjectID
	port int
}

// connection is an ordered edge (src_object, src_outlet) -> (dst_object, dst_inlet).
type connection struct {
	srcID, dstID     ObjectID
	srcPort, dstPort int
	ptype            PortType
}

// Graph owns a set of objects, the connections between them and the
// derived DSP execution order. It has no symbol table of its own:
// send/receive and the other routing namespaces live in the Context's
// RoutingFabric and are shared by every graph; there is no per-graph
// scoping of symbols.
type Graph struct {
	ctx *Context

	objects       map[ObjectID]Object
	creationOrder []ObjectID
	nextID        ObjectID

	conns []connection

	dspOrder      []ObjectID
	dspOrderStale bool

	// accumulators backs fan-in signal inlets: multiple incoming edges
	// are summed here before the consumer runs.
	accumulators map[portKey]Buffer
	// accumJobs[producerID] lists (accumulator, producerOutletBuffer)
	// pairs to add into right after that producer's ProcessBlock call.
	accumJobs map[ObjectID][]accumJob

	reentrantDepth int
}

type accumJob struct {
	acc Buffer
	src Buffer
}

// NewGraph creates an empty graph owned by ctx (may be nil for tests
// that exercise the graph in isolation).
func NewGraph(ctx *Context) *Graph {
	return &Graph{
		ctx:           ctx,
		objects:       map[ObjectID]Object{},
		accumulators:  map[portKey]Buffer{},
		accumJobs:     map[ObjectID][]accumJob{},
		dspOrderStale: true,
	}
}

// AddObject inserts obj into the graph and returns its stable ID.
func (g *Graph) AddObject(obj Object) ObjectID {
	id := g.nextID
	g.nextID++
	if b := baseOf(obj); b != nil {
		b.id = id
		b.graph = g
	}
	g.objects[id] = obj
	g.creationOrder = append(g.creationOrder, id)
	if aa, ok := obj.(afterAdder); ok {
		aa.AfterAdd()
	}
	g.invalidateDSPOrder()
	return id
}

// afterAdder is implemented by object types that need their own
// ObjectID or Graph before they can register with the routing fabric
// (receive, throw~, catch~, delwrite~, delread~, table, tabwrite~,
// tabread~): Graph.AddObject calls
// AfterAdd once the id and graph are bound.
type afterAdder interface {
	AfterAdd()
}

// RemoveObject destroys obj, purges its connections, and invalidates
// the DSP order.
func (g *Graph) RemoveObject(id ObjectID) {
	obj, ok := g.objects[id]
	if !ok {
		return
	}
	kept := g.conns[:0]
	for _, c := range g.conns {
		if c.srcID == id || c.dstID == id {
			continue
		}
		kept = append(kept, c)
	}
	g.conns = kept
	obj.Destroy()
	if g.ctx != nil {
		g.ctx.scheduler.purgeObject(id)
	}
	delete(g.objects, id)
	for i, cid := range g.creationOrder {
		if cid == id {
			g.creationOrder = append(g.creationOrder[:i], g.creationOrder[i+1:]...)
			break
		}
	}
	g.invalidateDSPOrder()
}

// Context returns the Context that owns this graph, or nil for graphs
// built in isolation (e.g. in tests).
func (g *Graph) Context() *Context { return g.ctx }

// Object looks up an object by ID.
func (g *Graph) Object(id ObjectID) (Object, bool) {
	o, ok := g.objects[id]
	return o, ok
}

// Connect wires (srcID, srcOutlet) to (dstID, dstInlet) with the given
// port type, validating that both ends declare a matching port.
func (g *Graph) Connect(srcID ObjectID, srcOutlet int, dstID ObjectID, dstInlet int, ptype PortType) error {
	src, ok := g.objects[srcID]
	if !ok {
		return ErrUnknownObject{"<removed src>"}
	}
	dst, ok := g.objects[dstID]
	if !ok {
		return ErrUnknownObject{"<removed dst>"}
	}
	if err := checkPort(src, srcOutlet, ptype, true); err != nil {
		return err
	}
	if err := checkPort(dst, dstInlet, ptype, false); err != nil {
		return err
	}
	g.conns = append(g.conns, connection{srcID, dstID, srcOutlet, dstInlet, ptype})
	if ptype == SignalPort {
		if db := baseOf(dst); db != nil {
			db.sigInConnected[dstInlet] = true
		}
		dst.OnInletConnectionUpdate(dstInlet)
		g.invalidateDSPOrder()
	}
	return nil
}

func checkPort(o Object, port int, ptype PortType, outlet bool) error {
	var n int
	switch {
	case ptype == MessagePort && outlet:
		n = o.NumMessageOutlets()
	case ptype == MessagePort && !outlet:
		n = o.NumMessageInlets()
	case ptype == SignalPort && outlet:
		n = o.NumSignalOutlets()
	case ptype == SignalPort && !outlet:
		n = o.NumSignalInlets()
	}
	if port < 0 || port >= n {
		return ErrTypeMismatch{o.TypeName(), "port out of range for type"}
	}
	return nil
}

// Disconnect removes a previously established connection.
func (g *Graph) Disconnect(srcID ObjectID, srcOutlet int, dstID ObjectID, dstInlet int, ptype PortType) {
	kept := g.conns[:0]
	for _, c := range g.conns {
		if c.srcID == srcID && c.srcPort == srcOutlet && c.dstID == dstID && c.dstPort == dstInlet && c.ptype == ptype {
			continue
		}
		kept = append(kept, c)
	}
	g.conns = kept
	if ptype == SignalPort {
		if dst, ok := g.objects[dstID]; ok {
			if !g.hasSignalConn(dstID, dstInlet) {
				if db := baseOf(dst); db != nil {
					db.sigInConnected[dstInlet] = false
				}
			}
			dst.OnInletConnectionUpdate(dstInlet)
		}
		g.invalidateDSPOrder()
	}
}

func (g *Graph) hasSignalConn(dstID ObjectID, dstInlet int) bool {
	for _, c := range g.conns {
		if c.ptype == SignalPort && c.dstID == dstID && c.dstPort == dstInlet {
			return true
		}
	}
	return false
}

// invalidateDSPOrder marks the cached DSP order stale: any structural
// change to the graph invalidates it.
func (g *Graph) invalidateDSPOrder() { g.dspOrderStale = true }

// EnsureOrdered recomputes the DSP order if it is stale.
func (g *Graph) EnsureOrdered() error {
	if !g.dspOrderStale {
		return nil
	}
	return g.computeDSPOrder()
}

// computeDSPOrder performs a deterministic topological sort over
// signal edges, tie-broken by object creation order.
func (g *Graph) computeDSPOrder() error {
	indegree := map[ObjectID]int{}
	outEdges := map[ObjectID][]connection{}
	participates := map[ObjectID]bool{}

	for id, o := range g.objects {
		if o.NumSignalInlets() > 0 || o.NumSignalOutlets() > 0 {
			participates[id] = true
			indegree[id] = 0
		}
	}
	for _, c := range g.conns {
		if c.ptype != SignalPort {
			continue
		}
		outEdges[c.srcID] = append(outEdges[c.srcID], c)
		indegree[c.dstID]++
	}

	// Fold routing-fabric same-block ordering constraints (delwrite~
	// before delread~, throw~ before catch~) in as virtual edges before
	// the sort runs, rather than shuffling the already-sorted order
	// afterward: a post-hoc shuffle can drag a writer/reader past a real
	// signal edge it has no knowledge of (e.g. a throw~'s own upstream
	// producer), so the constraint has to participate in the same
	// topological sort as everything else.
	//
	// A delay-line pair is also the one place a real feedback loop is
	// allowed to close (delread~ D -> ... -> delwrite~ D), and in that
	// topology the real edges already route from the reader back around
	// to the writer. Adding the writer-before-reader edge on top of that
	// would manufacture a cycle out of a legitimate feedback patch, so
	// any virtual edge whose reverse is already reachable through real
	// edges is dropped instead of folded in: the delay line itself is
	// what breaks the cycle at runtime, and the ordering pass doesn't
	// need to see it as one.
	var virtualOutEdges map[ObjectID][]ObjectID
	if g.ctx != nil {
		for _, ve := range g.ctx.routing.virtualOrderEdges() {
			if !participates[ve.from] || !participates[ve.to] {
				continue
			}
			if realEdgeReachable(ve.to, ve.from, outEdges) {
				continue
			}
			if virtualOutEdges == nil {
				virtualOutEdges = map[ObjectID][]ObjectID{}
			}
			virtualOutEdges[ve.from] = append(virtualOutEdges[ve.from], ve.to)
			indegree[ve.to]++
		}
	}

	creationIndex := map[ObjectID]int{}
	for i, id := range g.creationOrder {
		creationIndex[id] = i
	}

	ready := []ObjectID{}
	for id := range participates {
		if indegree[id] == 0 {
			ready = append(ready, id)
		}
	}
	sort.Slice(ready, func(i, j int) bool { return creationIndex[ready[i]] < creationIndex[ready[j]] })

	order := make([]ObjectID, 0, len(participates))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)
		next := []ObjectID{}
		for _, c := range outEdges[id] {
			indegree[c.dstID]--
			if indegree[c.dstID] == 0 {
				next = append(next, c.dstID)
			}
		}
		for _, dst := range virtualOutEdges[id] {
			indegree[dst]--
			if indegree[dst] == 0 {
				next = append(next, dst)
			}
		}
		sort.Slice(next, func(i, j int) bool { return creationIndex[next[i]] < creationIndex[next[j]] })
		ready = mergeSortedByCreation(ready, next, creationIndex)
	}

	if len(order) != len(participates) {
		return errCycle{}
	}

	g.dspOrder = order
	g.dspOrderStale = false
	g.resolveSignalBuffers()
	if g.ctx != nil {
		g.ctx.routing.reresolve(g)
	}
	return nil
}

// realEdgeReachable reports whether to is reachable from from following
// only real signal edges, used to detect when a virtual ordering edge
// would double back on an already-existing feedback path.
func realEdgeReachable(from, to ObjectID, outEdges map[ObjectID][]connection) bool {
	if from == to {
		return true
	}
	visited := map[ObjectID]bool{from: true}
	stack := []ObjectID{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range outEdges[id] {
			if c.dstID == to {
				return true
			}
			if !visited[c.dstID] {
				visited[c.dstID] = true
				stack = append(stack, c.dstID)
			}
		}
	}
	return false
}

func mergeSortedByCreation(a, b []ObjectID, idx map[ObjectID]int) []ObjectID {
	out := make([]ObjectID, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if idx[a[i]] <= idx[b[j]] {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

type errCycle struct{}

func (errCycle) Error() string {
	return "signal graph contains a cycle not broken by a delay line pair"
}

// resolveSignalBuffers assigns each signal inlet either a direct
// pointer to its sole producer's outlet buffer, or a fan-in
// accumulator summing every producer.
func (g *Graph) resolveSignalBuffers() {
	producers := map[portKey][]connection{}
	for _, c := range g.conns {
		if c.ptype != SignalPort {
			continue
		}
		producers[portKey{c.dstID, c.dstPort}] = append(producers[portKey{c.dstID, c.dstPort}], c)
	}

	g.accumJobs = map[ObjectID][]accumJob{}
	newAccumulators := map[portKey]Buffer{}

	// Allocate every outlet buffer before any inlet is resolved, so an
	// inlet never captures a producer's still-unallocated buffer.
	for _, obj := range g.objects {
		ob := baseOf(obj)
		if ob == nil {
			continue
		}
		for outlet := range ob.sigOutBuf {
			if ob.sigOutBuf[outlet] == nil && g.ctx != nil {
				ob.sigOutBuf[outlet] = g.ctx.pool.Get()
			}
		}
	}

	for id, obj := range g.objects {
		ob := baseOf(obj)
		if ob == nil {
			continue
		}
		for inlet := range ob.sigInBuf {
			key := portKey{id, inlet}
			edges := producers[key]
			switch len(edges) {
			case 0:
				ob.sigInBuf[inlet] = nil
			case 1:
				srcBase := baseOf(g.objects[edges[0].srcID])
				if srcBase != nil {
					ob.sigInBuf[inlet] = srcBase.sigOutBuf[edges[0].srcPort]
				}
			default:
				acc, ok := g.accumulators[key]
				if !ok {
					if g.ctx != nil {
						acc = g.ctx.pool.Get()
					}
				}
				newAccumulators[key] = acc
				ob.sigInBuf[inlet] = acc
				for _, e := range edges {
					srcBase := baseOf(g.objects[e.srcID])
					if srcBase == nil {
						continue
					}
					srcBuf := srcBase.sigOutBuf[e.srcPort]
					g.accumJobs[e.srcID] = append(g.accumJobs[e.srcID], accumJob{acc: acc, src: srcBuf})
				}
			}
		}
	}
	g.accumulators = newAccumulators
}

// fanoutMessage delivers a synchronously-sent message to every
// destination wired to (srcID, outlet), in connection-registration
// order, depth-first and reentrant. Reentrancy beyond
// maxReentrantDepth is treated as a message-domain cycle and dropped.
func (g *Graph) fanoutMessage(srcID ObjectID, outlet int, msg Message) {
	g.reentrantDepth++
	defer func() { g.reentrantDepth-- }()
	if g.reentrantDepth > maxReentrantDepth {
		if g.ctx != nil {
			g.ctx.callback(HostEvent{Tag: PrintErr, Str: "stack overflow"})
		}
		return
	}
	for _, c := range g.conns {
		if c.ptype != MessagePort || c.srcID != srcID || c.srcPort != outlet {
			continue
		}
		dst, ok := g.objects[c.dstID]
		if !ok {
			continue
		}
		dst.ReceiveMessage(c.dstPort, msg)
	}
}
