package patchrt

// ProcessRange evaluates every DSP object in the precomputed order for
// the sub-range [from, to) of the current block. Callers must have
// called EnsureOrdered first; the Scheduler does this once per block
// before its loop begins.
func (g *Graph) ProcessRange(from, to int) {
	if from >= to {
		return
	}
	for _, acc := range g.accumulators {
		for s := from; s < to; s++ {
			acc[s] = 0
		}
	}
	for _, id := range g.dspOrder {
		obj := g.objects[id]
		obj.ProcessBlock(from, to)
		for _, job := range g.accumJobs[id] {
			if job.acc == nil || job.src == nil {
				continue
			}
			for s := from; s < to; s++ {
				job.acc[s] += job.src[s]
			}
		}
	}
}
