package objects

import "patchrt"

type polyVoice struct {
	active bool
	pitch  float32
	age    int64
}

// Poly allocates incoming [pitch velocity] note events across a fixed
// pool of voices, stealing the oldest active voice when all are busy
// (the resolved reading of an unspecified voice-stealing policy: oldest
// active gives the most musically predictable behavior, matching how a
// human player naturally releases the earliest-held note under a
// fixed-polyphony constraint). A velocity of 0 releases the voice
// currently holding the matching pitch, if any.
type Poly struct {
	patchrt.ObjectBase
	voices  []polyVoice
	nextAge int64
}

// NewPoly is a patchrt.Constructor for the "poly" object type. init
// atom 0 sets the voice count, minimum 1, default 4.
func NewPoly(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	n := int(floatArg(init.Atoms, 0, 4))
	if n < 1 {
		n = 1
	}
	p := &Poly{voices: make([]polyVoice, n)}
	p.ObjectBase = patchrt.InitObjectBase(p, "poly", 1, 0, 1, 0)
	return p
}

// ProcessMessage implements patchrt.MessageProcessor. msg carries
// [pitch, velocity] as its first two atoms.
func (p *Poly) ProcessMessage(inlet int, msg patchrt.Message) {
	if inlet != 0 || len(msg.Atoms) < 2 {
		return
	}
	pitch := floatArg(msg.Atoms, 0, 0)
	velocity := floatArg(msg.Atoms, 1, 0)
	if velocity == 0 {
		p.noteOff(msg.Timestamp, pitch)
		return
	}
	p.noteOn(msg.Timestamp, pitch, velocity)
}

func (p *Poly) noteOn(t float64, pitch, velocity float32) {
	idx := p.freeVoice()
	if idx < 0 {
		idx = p.oldestActiveVoice()
	}
	p.nextAge++
	p.voices[idx] = polyVoice{active: true, pitch: pitch, age: p.nextAge}
	p.emit(t, pitch, velocity, idx)
}

func (p *Poly) noteOff(t float64, pitch float32) {
	for i := range p.voices {
		if p.voices[i].active && p.voices[i].pitch == pitch {
			p.voices[i].active = false
			p.emit(t, pitch, 0, i)
			return
		}
	}
}

func (p *Poly) freeVoice() int {
	for i, v := range p.voices {
		if !v.active {
			return i
		}
	}
	return -1
}

func (p *Poly) oldestActiveVoice() int {
	oldest := 0
	for i, v := range p.voices {
		if v.age < p.voices[oldest].age {
			oldest = i
		}
	}
	return oldest
}

func (p *Poly) emit(t float64, pitch, velocity float32, voice int) {
	p.SendMessage(0, patchrt.NewMessage(t, patchrt.ListAtom(
		patchrt.FloatAtom(pitch),
		patchrt.FloatAtom(velocity),
		patchrt.FloatAtom(float32(voice)),
	)))
}
