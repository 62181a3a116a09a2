package patchrt

// EventTag enumerates the narrow outward channel from engine to host.
// The callback is invoked synchronously from the audio thread and must
// not block.
type EventTag uint8

const (
	// PrintStd is an informational log line.
	PrintStd EventTag = iota
	// PrintErr is an error log line.
	PrintErr
	// DSPSuggest advises the host to start (On=true) or stop (On=false)
	// calling Process().
	DSPSuggest
	// ReceiverMessage reports that a send landed on a symbol the host
	// registered via Context.RegisterReceiver.
	ReceiverMessage
	// CannotFindObject reports an unresolved object/abstraction name.
	// It is a notice only: the engine does not accept a definition path
	// back from the host.
	CannotFindObject
)

// HostEvent is the payload passed to a HostCallback.
type HostEvent struct {
	Tag EventTag

	Str string  // PrintStd, PrintErr, CannotFindObject
	On  bool    // DSPSuggest
	Sym Symbol  // ReceiverMessage
	Msg Message // ReceiverMessage

	// Reply is an out-parameter slot. Every event the engine emits,
	// CannotFindObject included, carries a nil Reply, and the engine
	// never reads one back.
	Reply *string
}

// HostCallback is the engine's single narrow outward channel.
// Implementations must not block or allocate in a way that could stall
// the audio thread.
type HostCallback func(HostEvent)

// NopCallback discards every event; useful for tests that don't care
// about host-side observation.
func NopCallback(HostEvent) {}
