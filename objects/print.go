package objects

import (
	"fmt"
	"strings"

	"patchrt"
)

// Print logs every message it receives through the host callback's
// PRINT_STD channel, prefixed with an optional label taken from its
// init atom.
type Print struct {
	patchrt.ObjectBase
	label string
}

// NewPrint is a patchrt.Constructor for the "print" object type.
func NewPrint(init patchrt.Message, g *patchrt.Graph) patchrt.Object {
	p := &Print{label: symbolArg(init.Atoms, 0, "print")}
	p.ObjectBase = patchrt.InitObjectBase(p, "print", 1, 0, 0, 0)
	return p
}

// ProcessMessage implements patchrt.MessageProcessor.
func (p *Print) ProcessMessage(inlet int, msg patchrt.Message) {
	if p.Graph() == nil || p.Graph().Context() == nil {
		return
	}
	p.Graph().Context().Log(false, p.label+": "+formatAtoms(msg.Atoms))
}

func formatAtoms(atoms []patchrt.Atom) string {
	parts := make([]string, len(atoms))
	for i, a := range atoms {
		switch a.Kind {
		case patchrt.AtomFloat:
			parts[i] = trimFloat(a.Float)
		case patchrt.AtomSymbol:
			parts[i] = a.Sym.String()
		case patchrt.AtomBang:
			parts[i] = "bang"
		case patchrt.AtomList:
			parts[i] = "(" + formatAtoms(a.Nested) + ")"
		}
	}
	return strings.Join(parts, " ")
}

func trimFloat(f float32) string {
	s := fmt.Sprintf("%g", f)
	return s
}
