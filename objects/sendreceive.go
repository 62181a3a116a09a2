package objects

import "patchrt"

// Send forwards any message received on its inlet to every `receive`
// (and host receiver) registered under the same symbol, via the
// Context's RoutingFabric.
type Send struct {
	patchrt.ObjectBase
	sym patchrt.Symbol
}

// NewSend is a patchrt.Constructor for the "send" object type. init
// atom 0 names the target symbol.
func NewSend(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	s := &Send{sym: patchrt.Intern(symbolArg(init.Atoms, 0, ""))}
	s.ObjectBase = patchrt.InitObjectBase(s, "send", 1, 0, 0, 0)
	return s
}

// ProcessMessage implements patchrt.MessageProcessor.
func (s *Send) ProcessMessage(inlet int, msg patchrt.Message) {
	if s.Graph() == nil {
		return
	}
	s.Graph().Context().Routing().Send(s.Graph(), s.sym, msg)
}

// Receive registers itself with the routing fabric under sym and
// forwards every send landing on that symbol out its outlet.
type Receive struct {
	patchrt.ObjectBase
	sym patchrt.Symbol
}

// NewReceive is a patchrt.Constructor for the "receive" object type.
func NewReceive(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	r := &Receive{sym: patchrt.Intern(symbolArg(init.Atoms, 0, ""))}
	r.ObjectBase = patchrt.InitObjectBase(r, "receive", 0, 0, 1, 0)
	return r
}

// AfterAdd registers this receive endpoint once its ObjectID is known.
func (r *Receive) AfterAdd() {
	r.Graph().Context().Routing().RegisterReceive(r.sym, r.ID(), 0)
}

// ReceiveMessage overrides the default distribution because Receive
// has no message inlets of its own to distribute across; the routing
// fabric calls this directly by objectID/inlet exactly like any other
// destination, at inlet 0.
func (r *Receive) ReceiveMessage(inlet int, msg patchrt.Message) {
	r.SendMessage(0, msg)
}

// Destroy revokes the routing-fabric registration.
func (r *Receive) Destroy() {
	r.Graph().Context().Routing().UnregisterReceive(r.sym, r.ID(), 0)
}
