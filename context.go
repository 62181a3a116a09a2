package patchrt

// ObjectDecl names one object to construct when loading a patch, plus
// its init atoms, which arrive as a Message of atoms.
type ObjectDecl struct {
	Type string
	Args []Atom
}

// ConnDecl wires two already-declared objects by their index within a
// PatchSpec's Objects slice.
type ConnDecl struct {
	SrcIndex, SrcPort int
	DstIndex, DstPort int
	Type              PortType
}

// PatchSpec is the already-parsed patch the engine expects to receive:
// a flat list of object declarations and connections. Producing one
// from a patch file is an external collaborator's job.
type PatchSpec struct {
	Objects     []ObjectDecl
	Connections []ConnDecl
}

// Context is the top-level owner of a running engine: sample rate,
// block size, the logical clock (via its Scheduler), the host callback,
// every Graph it has loaded, the buffer pool and the routing
// namespaces.
type Context struct {
	SampleRate float64
	BlockSize  int

	pool      *BufferPool
	scheduler *Scheduler
	routing   *RoutingFabric
	registry  map[string]Constructor

	graphs []*Graph

	cb HostCallback

	external *spscRing

	ioInput  []float32
	ioOutput []float32
}

// NewContext builds a Context. cb may be nil, in which case events are
// discarded (see NopCallback).
func NewContext(sampleRate float64, blockSize int, cb HostCallback) *Context {
	if cb == nil {
		cb = NopCallback
	}
	ctx := &Context{
		SampleRate: sampleRate,
		BlockSize:  blockSize,
		pool:       NewBufferPool(blockSize),
		registry:   map[string]Constructor{},
		cb:         cb,
		external:   newSPSCRing(1024),
	}
	ctx.scheduler = NewScheduler(ctx)
	ctx.routing = NewRoutingFabric(ctx)
	root := NewGraph(ctx)
	ctx.graphs = append(ctx.graphs, root)
	return ctx
}

// Root returns the context's root graph.
func (ctx *Context) Root() *Graph { return ctx.graphs[0] }

// Routing exposes the symbol routing fabric to leaf-object
// implementations (send/receive, throw~/catch~, delwrite~/delread~,
// tabwrite~/tabread~ all register against it from their constructors).
func (ctx *Context) Routing() *RoutingFabric { return ctx.routing }

// Pool exposes the shared buffer pool.
func (ctx *Context) Pool() *BufferPool { return ctx.pool }

// Scheduler exposes the block scheduler, mainly so leaf objects like
// metro can call ScheduleMessage/CancelMessage.
func (ctx *Context) Scheduler() *Scheduler { return ctx.scheduler }

// callback funnels a HostEvent to the registered HostCallback.
func (ctx *Context) callback(e HostEvent) { ctx.cb(e) }

// Log is a convenience for objects to emit PRINT_STD/PRINT_ERR events.
func (ctx *Context) Log(err bool, s string) {
	tag := PrintStd
	if err {
		tag = PrintErr
	}
	ctx.cb(HostEvent{Tag: tag, Str: s})
}

// NewSubGraph creates and registers an additional graph owned by this
// context, for a subpatch object to embed.
func (ctx *Context) NewSubGraph() *Graph {
	g := NewGraph(ctx)
	ctx.graphs = append(ctx.graphs, g)
	return g
}

// LoadPatch constructs a fresh Graph from an already-parsed PatchSpec,
// dispatching each declaration through the object registry. Patch-file
// text parsing itself is out of scope.
func (ctx *Context) LoadPatch(spec PatchSpec) (*Graph, error) {
	g := NewGraph(ctx)
	ids := make([]ObjectID, len(spec.Objects))
	for i, od := range spec.Objects {
		ctor, ok := ctx.lookupObjectType(od.Type)
		if !ok {
			ctx.callback(HostEvent{Tag: CannotFindObject, Str: od.Type})
			return nil, ErrUnknownObject{od.Type}
		}
		obj := ctor(NewMessage(0, od.Args...), g)
		ids[i] = g.AddObject(obj)
	}
	for _, cd := range spec.Connections {
		if err := g.Connect(ids[cd.SrcIndex], cd.SrcPort, ids[cd.DstIndex], cd.DstPort, cd.Type); err != nil {
			return nil, err
		}
	}
	ctx.graphs = append(ctx.graphs, g)
	return g, nil
}

// SetRootGraph replaces the root graph (used by tests that build a
// Graph by hand, and by LoadPatch callers that want the freshly loaded
// graph to become the root rather than an additional subpatch).
func (ctx *Context) SetRootGraph(g *Graph) {
	g.ctx = ctx
	for i, existing := range ctx.graphs {
		if existing == g && i != 0 {
			ctx.graphs = append(ctx.graphs[:i], ctx.graphs[i+1:]...)
			break
		}
	}
	ctx.graphs[0] = g
}

// IOInput returns the current block's input frames, valid only while a
// call to Process is in progress.
func (ctx *Context) IOInput() []float32 { return ctx.ioInput }

// IOOutput returns the current block's output frames, valid only while
// a call to Process is in progress.
func (ctx *Context) IOOutput() []float32 { return ctx.ioOutput }

// Process advances the engine by exactly one audio block: it drains
// externally queued messages, drives the scheduler's hybrid
// message/signal loop over the root graph, and leaves output filled
// with this block's audio. input and output must both have length
// BlockSize; output is zeroed first so a patch with no signal edges
// produces silence.
func (ctx *Context) Process(input, output []float32) error {
	if len(input) != ctx.BlockSize || len(output) != ctx.BlockSize {
		return ErrInletOutOfRange{"Context.Process", len(output), ctx.BlockSize}
	}
	for i := range output {
		output[i] = 0
	}
	ctx.ioInput = input
	ctx.ioOutput = output
	ctx.drainExternal()
	return ctx.scheduler.RunBlock(ctx.Root(), ctx.BlockSize, ctx.SampleRate)
}

// drainExternal moves every host-thread-queued message into the
// scheduler's priority queue, preserving the timestamp the host
// attached to it rather than delivering at block origin, so a message
// stamped for the middle of this block still lands at the right split
// point.
func (ctx *Context) drainExternal() {
	ctx.external.Drain(func(m externalMessage) {
		ctx.scheduler.ScheduleSend(m.sym, m.msg)
	})
}

// SendToReceiver is the host-thread-safe entry point for injecting a
// message into the running patch: it behaves as though a `[send sym]`
// object fired inside the patch at msg.Timestamp, delivering to every
// `receive sym` endpoint and to the host callback if RegisterReceiver
// was called for sym. Safe to call from one host thread concurrently
// with Process; the external queue is single-producer, so concurrent
// callers must serialize their calls. The message is merged into the
// engine at the next Process call.
func (ctx *Context) SendToReceiver(sym string, msg Message) {
	ctx.external.Push(externalMessage{sym: Intern(sym), msg: msg.clone()})
}

// RegisterReceiver marks sym so that future sends land in the host
// callback as a ReceiverMessage event, in addition to any patch-side
// `receive sym` objects.
func (ctx *Context) RegisterReceiver(sym string) {
	ctx.routing.RegisterHostReceiver(Intern(sym))
}

// UnregisterReceiver reverses RegisterReceiver.
func (ctx *Context) UnregisterReceiver(sym string) {
	ctx.routing.UnregisterHostReceiver(Intern(sym))
}

// DestroyContext releases every graph's objects. The Go runtime
// reclaims memory; this exists to run object Destroy hooks (routing
// deregistration, etc.) deterministically as part of an explicit
// shutdown.
func DestroyContext(ctx *Context) {
	for _, g := range ctx.graphs {
		for id := range g.objects {
			g.RemoveObject(id)
		}
	}
}
