package objects

import "patchrt"

func floatArg(atoms []patchrt.Atom, i int, def float32) float32 {
	if i < 0 || i >= len(atoms) || atoms[i].Kind != patchrt.AtomFloat {
		return def
	}
	return atoms[i].Float
}

func symbolArg(atoms []patchrt.Atom, i int, def string) string {
	if i < 0 || i >= len(atoms) || atoms[i].Kind != patchrt.AtomSymbol {
		return def
	}
	return atoms[i].Sym.String()
}

// triggers reports whether msg should be treated as "fire": a Bang
// atom, or a nonzero Float atom.
func triggers(msg patchrt.Message) bool {
	if len(msg.Atoms) == 0 {
		return false
	}
	switch msg.Atoms[0].Kind {
	case patchrt.AtomBang:
		return true
	case patchrt.AtomFloat:
		return msg.Atoms[0].Float != 0
	}
	return false
}

func firstFloat(msg patchrt.Message, def float32) float32 {
	return floatArg(msg.Atoms, 0, def)
}
