package objects

import "patchrt"

var metroTickSym = patchrt.Intern("__metro_tick__")

// Metro emits a bang on inlet 0/outlet 0 every periodMs milliseconds
// while running, starting immediately when triggered. It re-arms
// itself by scheduling a self-addressed tick message through the
// owning Context's Scheduler rather than counting samples directly.
type Metro struct {
	patchrt.ObjectBase

	periodMs float64
	running  bool
	handle   patchrt.Handle
	hasTick  bool
}

// NewMetro is a patchrt.Constructor for the "metro" object type.
// init atom 0 (optional) sets the period in ms, default 250.
func NewMetro(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	m := &Metro{periodMs: float64(floatArg(init.Atoms, 0, 250))}
	m.ObjectBase = patchrt.InitObjectBase(m, "metro", 2, 0, 1, 0)
	return m
}

// ProcessMessage implements patchrt.MessageProcessor.
func (m *Metro) ProcessMessage(inlet int, msg patchrt.Message) {
	switch inlet {
	case 1:
		if len(msg.Atoms) > 0 && msg.Atoms[0].Kind == patchrt.AtomFloat {
			m.periodMs = float64(msg.Atoms[0].Float)
		}
	case 0:
		if m.isTick(msg) {
			if !m.running {
				return
			}
			m.tick(msg.Timestamp)
			return
		}
		if triggers(msg) {
			m.start(msg.Timestamp)
		} else {
			m.stop()
		}
	}
}

func (m *Metro) isTick(msg patchrt.Message) bool {
	return len(msg.Atoms) == 1 && msg.Atoms[0].Kind == patchrt.AtomSymbol && msg.Atoms[0].Sym == metroTickSym
}

func (m *Metro) start(t float64) {
	m.running = true
	m.tick(t)
}

func (m *Metro) stop() {
	if m.running && m.hasTick {
		m.Graph().Context().Scheduler().CancelMessage(m.handle)
		m.hasTick = false
	}
	m.running = false
}

func (m *Metro) tick(t float64) {
	m.SendMessage(0, patchrt.NewMessage(t, patchrt.BangAtom()))
	if !m.running {
		return
	}
	next := t + m.periodMs
	m.handle = m.Graph().Context().Scheduler().ScheduleMessage(m.ID(), 0, patchrt.NewMessage(next, patchrt.Atom{Kind: patchrt.AtomSymbol, Sym: metroTickSym}))
	m.hasTick = true
}

// Destroy cancels any pending self-tick (the Scheduler also purges by
// object id on removal; this just avoids leaking the handle map entry
// a cycle early).
func (m *Metro) Destroy() {
	m.stop()
}
