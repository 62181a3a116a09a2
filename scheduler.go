package patchrt

import (
	"container/heap"
	"math"
)

// Handle identifies a previously scheduled message so it can be
// canceled before delivery (e.g. metro's next tick, on stop).
type Handle uint64

type pendingEntry struct {
	timestamp float64
	seq       uint64
	destObj   ObjectID
	destInlet int
	sym       Symbol
	toSymbol  bool // true for a routed send (sym), false for a direct inlet delivery (destObj/destInlet)
	msg       Message
	handle    Handle
	canceled  bool
	index     int // heap index, maintained by container/heap
}

type pendingQueue []*pendingEntry

func (q pendingQueue) Len() int { return len(q) }
func (q pendingQueue) Less(i, j int) bool {
	if q[i].timestamp != q[j].timestamp {
		return q[i].timestamp < q[j].timestamp
	}
	return q[i].seq < q[j].seq
}
func (q pendingQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}
func (q *pendingQueue) Push(x any) {
	e := x.(*pendingEntry)
	e.index = len(*q)
	*q = append(*q, e)
}
func (q *pendingQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// Scheduler owns the pending-message priority queue and the logical
// clock, interleaving timestamped message delivery with block-rate
// signal dispatch.
type Scheduler struct {
	ctx *Context

	pq          pendingQueue
	byHandle    map[Handle]*pendingEntry
	seqCounter  uint64
	nextHandle  Handle

	currentTimeMs float64
	blockOriginMs float64
}

// NewScheduler creates a scheduler with its clock at t=0.
func NewScheduler(ctx *Context) *Scheduler {
	return &Scheduler{
		ctx:      ctx,
		byHandle: map[Handle]*pendingEntry{},
	}
}

// CurrentTimeMs reports the scheduler's logical clock.
func (s *Scheduler) CurrentTimeMs() float64 { return s.currentTimeMs }

// ScheduleMessage enqueues msg for delivery to (destObj, destInlet) at
// msg.Timestamp. Timestamps in the past are clamped to the current
// time at dequeue, not at enqueue, so ordering among simultaneously
// scheduled late messages still follows insertion order.
func (s *Scheduler) ScheduleMessage(destObj ObjectID, destInlet int, msg Message) Handle {
	s.seqCounter++
	s.nextHandle++
	e := &pendingEntry{
		timestamp: msg.Timestamp,
		seq:       s.seqCounter,
		destObj:   destObj,
		destInlet: destInlet,
		msg:       msg.clone(),
		handle:    s.nextHandle,
	}
	heap.Push(&s.pq, e)
	s.byHandle[e.handle] = e
	return e.handle
}

// ScheduleSend enqueues msg for routed delivery to every receiver
// registered under sym at msg.Timestamp, exactly as if a `[send sym]`
// object had fired inside the patch at that time.
func (s *Scheduler) ScheduleSend(sym Symbol, msg Message) Handle {
	s.seqCounter++
	s.nextHandle++
	e := &pendingEntry{
		timestamp: msg.Timestamp,
		seq:       s.seqCounter,
		sym:       sym,
		toSymbol:  true,
		msg:       msg.clone(),
		handle:    s.nextHandle,
	}
	heap.Push(&s.pq, e)
	s.byHandle[e.handle] = e
	return e.handle
}

// CancelMessage removes a previously scheduled message. Canceling an
// already-delivered or unknown handle is a no-op.
func (s *Scheduler) CancelMessage(h Handle) {
	e, ok := s.byHandle[h]
	if !ok {
		return
	}
	e.canceled = true
	delete(s.byHandle, h)
}

// RunBlock advances the scheduler's clock by one block on g, draining
// all pending messages whose timestamps fall within the block and
// invoking signal dispatch on the sub-ranges between them.
func (s *Scheduler) RunBlock(g *Graph, blockSize int, sampleRate float64) error {
	if err := g.EnsureOrdered(); err != nil {
		return err
	}
	blockDurationMs := float64(blockSize) / sampleRate * 1000
	sampleDurationMs := blockDurationMs / float64(blockSize)
	blockEnd := s.currentTimeMs + blockDurationMs
	lastProcessed := 0

	for {
		if s.pq.Len() == 0 {
			break
		}
		head := s.pq[0]
		if head.timestamp >= blockEnd {
			break
		}
		headTS := head.timestamp
		t := headTS
		if t < s.currentTimeMs {
			t = s.currentTimeMs
		}
		splitRaw := (t - s.blockOriginMs) / blockDurationMs * float64(blockSize)
		splitSample := int(math.Round(splitRaw))
		if splitSample < 0 {
			splitSample = 0
		}
		if splitSample > blockSize {
			splitSample = blockSize
		}
		if splitSample > lastProcessed {
			g.ProcessRange(lastProcessed, splitSample)
			lastProcessed = splitSample
		}

		for s.pq.Len() > 0 && math.Abs(s.pq[0].timestamp-headTS) <= sampleDurationMs+1e-9 {
			e := heap.Pop(&s.pq).(*pendingEntry)
			delete(s.byHandle, e.handle)
			if e.canceled {
				continue
			}
			s.deliver(g, e)
		}
		s.currentTimeMs = t
	}

	if lastProcessed < blockSize {
		g.ProcessRange(lastProcessed, blockSize)
	}

	s.currentTimeMs = blockEnd
	s.blockOriginMs = blockEnd
	return nil
}

func (s *Scheduler) deliver(g *Graph, e *pendingEntry) {
	if e.toSymbol {
		s.ctx.routing.Send(g, e.sym, e.msg)
		return
	}
	obj, ok := g.objects[e.destObj]
	if !ok {
		return // destroyed object; discard at dequeue time
	}
	obj.ReceiveMessage(e.destInlet, e.msg)
}

// purgeObject removes all pending deliveries addressed to id, called
// when an object is destroyed.
func (s *Scheduler) purgeObject(id ObjectID) {
	for h, e := range s.byHandle {
		if !e.toSymbol && e.destObj == id {
			e.canceled = true
			delete(s.byHandle, h)
		}
	}
}
