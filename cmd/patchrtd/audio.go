package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pa "github.com/gordonklaus/portaudio"

	"patchrt"
)

// audioStream owns the portaudio duplex stream and drives one
// Context.Process call per hardware buffer.
type audioStream struct {
	ctx    *patchrt.Context
	stream *pa.Stream
	in     []float32
	out    []float32
	mon    *monitor
}

// openAudioStream opens a duplex stream sized to ctx's block size and
// sample rate. mon may be nil (--novideo).
func openAudioStream(ctx *patchrt.Context, mon *monitor) (*audioStream, error) {
	if err := pa.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}
	a := &audioStream{
		ctx: ctx,
		in:  make([]float32, ctx.BlockSize),
		out: make([]float32, ctx.BlockSize),
		mon: mon,
	}
	stream, err := pa.OpenDefaultStream(
		1, 1,
		ctx.SampleRate,
		ctx.BlockSize,
		a.callback,
	)
	if err != nil {
		pa.Terminate()
		return nil, fmt.Errorf("portaudio open default stream: %w", err)
	}
	a.stream = stream
	return a, nil
}

// callback is invoked by portaudio on its own thread once per block.
// It allocates nothing itself; Context.Process allocates only for
// messages it queues (each scheduled or drained message is copied
// into a heap-allocated queue entry).
func (a *audioStream) callback(in, out []float32) {
	copy(a.in, in)
	if err := a.ctx.Process(a.in, a.out); err != nil {
		for i := range out {
			out[i] = 0
		}
		return
	}
	copy(out, a.out)
	if a.mon != nil {
		a.mon.push(a.out)
	}
}

// run starts the stream and blocks until interrupted; the actual
// per-block work happens on portaudio's own callback thread.
func (a *audioStream) run() error {
	if err := a.stream.Start(); err != nil {
		return fmt.Errorf("portaudio start: %w", err)
	}
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}

func (a *audioStream) close() {
	if a.stream != nil {
		a.stream.Stop()
		a.stream.Close()
	}
	pa.Terminate()
}
