package main

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	monitorWidth  = 640
	monitorHeight = 200
)

// monitor is an optional SDL2 window that plots the most recent output
// block as a scrolling waveform: init, push a block per callback, tear
// down.
type monitor struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	blockLen int
}

// newMonitor opens an SDL2 window sized independently of blockLen; the
// waveform is rescaled to the window width each push.
func newMonitor(blockLen int) (*monitor, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}
	window, err := sdl.CreateWindow("patchrtd monitor",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		monitorWidth, monitorHeight, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl create window: %w", err)
	}
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdl create renderer: %w", err)
	}
	return &monitor{window: window, renderer: renderer, blockLen: blockLen}, nil
}

// push draws block as a scrolling waveform. Safe to call from the
// audio callback thread only if the SDL renderer backend is; on
// platforms where it isn't, run push from the main goroutine instead
// via a channel — left as a caller concern since this demo host is
// single-purpose.
func (m *monitor) push(block []float32) {
	m.renderer.SetDrawColor(0, 0, 0, 255)
	m.renderer.Clear()
	m.renderer.SetDrawColor(0, 255, 0, 255)

	n := len(block)
	if n < 2 {
		m.renderer.Present()
		return
	}
	midY := int32(monitorHeight / 2)
	prevX, prevY := int32(0), midY-int32(block[0]*float32(monitorHeight/2))
	for i := 1; i < n; i++ {
		x := int32(i * monitorWidth / n)
		y := midY - int32(block[i]*float32(monitorHeight/2))
		m.renderer.DrawLine(prevX, prevY, x, y)
		prevX, prevY = x, y
	}
	m.renderer.Present()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch event.(type) {
		case *sdl.QuitEvent:
			return
		}
	}
}

func (m *monitor) close() {
	m.renderer.Destroy()
	m.window.Destroy()
	sdl.Quit()
}
