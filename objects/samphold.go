package objects

import "patchrt"

// SampHold holds its signal inlet's value whenever the control inlet
// strictly decreases sample-to-sample, and repeats that held value
// otherwise. "Strictly decreases" (not "crosses zero" or "changes
// sign") is the resolved reading of an ambiguous control-trigger
// condition, matching the ramp-reset use this object exists for: a
// sawtooth control ramping up and dropping back to its start should
// trigger exactly once, at the drop.
type SampHold struct {
	patchrt.ObjectBase
	lastControl float32
	held        float32
	primed      bool
}

// NewSampHold is a patchrt.Constructor for the "samphold~" object type.
func NewSampHold(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	s := &SampHold{}
	s.ObjectBase = patchrt.InitObjectBase(s, "samphold~", 0, 2, 0, 1)
	return s
}

// ProcessBlock implements patchrt.Object.
func (s *SampHold) ProcessBlock(from, to int) {
	sigBuf, sigScalar, sigConn := s.SignalInlet(0)
	ctrlBuf, ctrlScalar, ctrlConn := s.SignalInlet(1)
	out := s.SignalOutlet(0)
	for i := from; i < to; i++ {
		sig := sigScalar
		if sigConn {
			sig = sigBuf[i]
		}
		ctrl := ctrlScalar
		if ctrlConn {
			ctrl = ctrlBuf[i]
		}
		if s.primed && ctrl < s.lastControl {
			s.held = sig
		}
		s.lastControl = ctrl
		s.primed = true
		out[i] = s.held
	}
}
