package patchrt

// Table is a named, random-access shared audio array, distinct from a
// DelayLine's circular addressing.
type Table struct {
	Name Symbol
	Data []float32
}

// NewTable allocates a table of length samples, initially silent.
func NewTable(name Symbol, length int) *Table {
	if length < 1 {
		length = 1
	}
	return &Table{Name: name, Data: make([]float32, length)}
}

// At returns the sample at a fractional index using linear
// interpolation, clamped to the table's bounds.
func (t *Table) At(index float64) float32 {
	n := len(t.Data)
	if index < 0 {
		index = 0
	}
	if index > float64(n-1) {
		index = float64(n - 1)
	}
	i0 := int(index)
	i1 := i0 + 1
	if i1 >= n {
		i1 = n - 1
	}
	frac := float32(index - float64(i0))
	a, b := t.Data[i0], t.Data[i1]
	return a + frac*(b-a)
}

// Set writes v at the given integer sample index, ignoring
// out-of-range writes rather than panicking on the audio path.
func (t *Table) Set(index int, v float32) {
	if index < 0 || index >= len(t.Data) {
		return
	}
	t.Data[index] = v
}
