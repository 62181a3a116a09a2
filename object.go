package patchrt

// ObjectID is a stable arena index for an object within its owning
// Graph. Connections and scheduled deliveries reference objects by ID
// rather than by pointer so that graph-wide reordering never entangles
// object lifetimes with the ordering algorithm.
type ObjectID int

// PortType tags whether an inlet or outlet carries messages or signal.
type PortType uint8

const (
	// MessagePort carries discrete, timestamped events.
	MessagePort PortType = iota
	// SignalPort carries block-rate audio.
	SignalPort
)

// Object is the abstract node in the graph. Every concrete object type
// (oscillator, arithmetic, print, dac~, ...) implements this by
// embedding *ObjectBase and overriding the methods it needs; ObjectBase
// supplies safe no-op defaults for the rest, giving plain method
// overriding via embedding in place of a class hierarchy.
type Object interface {
	// ID returns the object's arena index within its Graph.
	ID() ObjectID
	// TypeName returns the registered object type, e.g. "osc~".
	TypeName() string

	NumMessageInlets() int
	NumSignalInlets() int
	NumMessageOutlets() int
	NumSignalOutlets() int

	// ReceiveMessage is the entry point for a message arriving on inlet.
	// The default ObjectBase implementation forwards to ProcessMessage,
	// which switches on inlet to apply the object's own hot/cold policy.
	ReceiveMessage(inlet int, msg Message)

	// ProcessBlock fills the object's signal outlet buffers for the
	// sub-range [from, to) of the current block. No-op for
	// message-only objects.
	ProcessBlock(from, to int)

	// OnInletConnectionUpdate is called by the Graph whenever a signal
	// inlet transitions between connected and disconnected, so an
	// object can switch between a scalar fast path and a wired path.
	OnInletConnectionUpdate(inlet int)

	// Destroy releases resources and revokes routing-fabric
	// registrations. Called exactly once, when the owning Graph
	// removes or destroys the object.
	Destroy()
}

// MessageProcessor is implemented by objects that accept messages.
// ObjectBase.ReceiveMessage forwards every inlet's arrivals to
// ProcessMessage, which is responsible for switching on inlet itself;
// by convention inlet 0 is the only one that should trigger output,
// other inlets latch state.
type MessageProcessor interface {
	ProcessMessage(inlet int, msg Message)
}

// Sender is implemented by ObjectBase and used by objects to emit from
// one of their own outlets. Kept as an interface so leaf objects can be
// exercised in isolation in tests with a fake Sender.
type Sender interface {
	SendMessage(outlet int, msg Message)
}

// ObjectBase implements the mechanical parts of Object: inlet/outlet
// bookkeeping, signal-buffer slots resolved by the Graph at ordering
// time, and the standard hot/cold message distribution policy. Leaf
// object types embed ObjectBase and implement ProcessMessage (for
// message objects) and/or ProcessBlock (for signal objects).
type ObjectBase struct {
	id       ObjectID
	typeName string
	graph    *Graph

	numMsgIn, numMsgOut int
	numSigIn, numSigOut int

	// sigInBuf[i] is the buffer this object reads signal inlet i from;
	// resolved by the Graph each time the DSP order is recomputed. Fan-in
	// inlets point at a per-inlet accumulator owned by the Graph.
	sigInBuf []Buffer
	// sigInConnected[i] reports whether inlet i currently has an
	// incoming signal edge; if false, sigInScalar[i] is used instead.
	sigInConnected []bool
	sigInScalar    []float32

	// sigOutBuf[o] is the buffer this object writes outlet o into; owned
	// by this object, borrowed read-only by fan-out consumers.
	sigOutBuf []Buffer

	// self is the embedding concrete type, used to reach ProcessMessage
	// without requiring every leaf type to redeclare ReceiveMessage.
	self any
}

// InitObjectBase wires up an ObjectBase. self must be the embedding
// object (typically the receiver itself, i.e. `s` inside NewFoo).
func InitObjectBase(self any, typeName string, numMsgIn, numSigIn, numMsgOut, numSigOut int) ObjectBase {
	return ObjectBase{
		typeName:       typeName,
		self:           self,
		numMsgIn:       numMsgIn,
		numMsgOut:      numMsgOut,
		numSigIn:       numSigIn,
		numSigOut:      numSigOut,
		sigInBuf:       make([]Buffer, numSigIn),
		sigInConnected: make([]bool, numSigIn),
		sigInScalar:    make([]float32, numSigIn),
		sigOutBuf:      make([]Buffer, numSigOut),
	}
}

// Graph returns the object's owning Graph, valid after it has been
// added via Graph.AddObject.
func (b *ObjectBase) Graph() *Graph { return b.graph }

func (b *ObjectBase) ID() ObjectID           { return b.id }
func (b *ObjectBase) TypeName() string       { return b.typeName }
func (b *ObjectBase) NumMessageInlets() int  { return b.numMsgIn }
func (b *ObjectBase) NumSignalInlets() int   { return b.numSigIn }
func (b *ObjectBase) NumMessageOutlets() int { return b.numMsgOut }
func (b *ObjectBase) NumSignalOutlets() int  { return b.numSigOut }

// ProcessBlock default: message-only objects produce no signal.
func (b *ObjectBase) ProcessBlock(from, to int) {}

// OnInletConnectionUpdate default: nothing to swap.
func (b *ObjectBase) OnInletConnectionUpdate(inlet int) {}

// Destroy default: nothing to release. Objects owning routing-fabric
// registrations (receive, throw~, delwrite~, ...) override this.
func (b *ObjectBase) Destroy() {}

// ReceiveMessage forwards inlet's arrival to ProcessMessage if the
// embedding type implements MessageProcessor. By the hot/cold
// convention, ProcessMessage implementations should only emit in
// response to inlet 0; other inlets are expected to latch state.
func (b *ObjectBase) ReceiveMessage(inlet int, msg Message) {
	mp, ok := b.self.(MessageProcessor)
	if !ok {
		return
	}
	mp.ProcessMessage(inlet, msg)
}

// SignalInlet returns the buffer to read signal inlet i from for the
// current block, and whether the inlet is scalar (disconnected).
func (b *ObjectBase) SignalInlet(i int) (buf Buffer, scalar float32, connected bool) {
	if i < 0 || i >= len(b.sigInBuf) {
		panic(ErrInletOutOfRange{b.typeName, i, len(b.sigInBuf)})
	}
	return b.sigInBuf[i], b.sigInScalar[i], b.sigInConnected[i]
}

// SetScalar stores the fallback value used for signal inlet i while it
// is disconnected (e.g. a cold-inlet message updating a "frequency"
// argument on an oscillator with no wired signal inlet).
func (b *ObjectBase) SetScalar(i int, v float32) {
	if i < 0 || i >= len(b.sigInScalar) {
		panic(ErrInletOutOfRange{b.typeName, i, len(b.sigInScalar)})
	}
	b.sigInScalar[i] = v
}

// SignalOutlet returns the buffer this object should write outlet o
// into for the current block.
func (b *ObjectBase) SignalOutlet(o int) Buffer {
	if o < 0 || o >= len(b.sigOutBuf) {
		panic(ErrInletOutOfRange{b.typeName, o, len(b.sigOutBuf)})
	}
	return b.sigOutBuf[o]
}

// SendMessage fans a message out to every destination connected to
// outlet, in connection-registration order, delivering synchronously
// and reentrantly.
func (b *ObjectBase) SendMessage(outlet int, msg Message) {
	if b.graph == nil {
		return
	}
	if outlet < 0 || outlet >= b.numMsgOut {
		panic(ErrInletOutOfRange{b.typeName, outlet, b.numMsgOut})
	}
	b.graph.fanoutMessage(b.id, outlet, msg)
}
