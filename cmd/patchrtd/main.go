// Command patchrtd is a demo host for the patchrt engine: it owns a
// portaudio duplex stream, drives Context.Process once per hardware
// callback, optionally opens an SDL2 waveform monitor, and optionally
// exposes a websocket bridge for external send_to_receiver traffic.
package main

import (
	"encoding/json"
	"os"

	"github.com/docopt/docopt-go"
	"github.com/golang/glog"

	"patchrt"
	"patchrt/objects"
)

const patchrtdVersion = "0.1.0"

func main() {
	usage := `patchrtd - demo host for the patchrt dataflow audio engine.

Usage:
    patchrtd [--patch=<path>] [--rate=<hz>] [--block=<n>] [--bridge=<addr>] [--novideo]
    patchrtd -h | --help
    patchrtd --version

Options:
    -h --help          Show this screen.
    --version          Show version.
    --patch=<path>      JSON-encoded PatchSpec to load at startup.
    --rate=<hz>         Sample rate in Hz [default: 44100].
    --block=<n>         Block size in frames [default: 256].
    --bridge=<addr>     Listen address for the websocket receiver bridge, e.g. :8080.
    --novideo           Disable the SDL2 waveform monitor.
`

	opts, err := docopt.ParseArgs(usage, os.Args[1:], patchrtdVersion)
	if err != nil {
		glog.Exitf("[patchrtd]arg parse error: %s", err)
	}

	sampleRate, _ := opts.Float64("--rate")
	blockSize, _ := opts.Int("--block")
	novideo, _ := opts.Bool("--novideo")
	patchPath, _ := opts.String("--patch")
	bridgeAddr, _ := opts.String("--bridge")

	ctx := patchrt.NewContext(sampleRate, blockSize, hostCallback)
	objects.RegisterAll(ctx)

	if patchPath != "" {
		if err := loadPatchFile(ctx, patchPath); err != nil {
			glog.Exitf("[patchrtd]failed to load patch %s: %s", patchPath, err)
		}
		glog.Infof("[patchrtd]loaded patch from %s", patchPath)
	}

	if bridgeAddr != "" {
		go runBridge(ctx, bridgeAddr)
	}

	var mon *monitor
	if !novideo {
		var err error
		mon, err = newMonitor(blockSize)
		if err != nil {
			glog.Warningf("[patchrtd]monitor disabled: %s", err)
			mon = nil
		} else {
			defer mon.close()
		}
	}

	stream, err := openAudioStream(ctx, mon)
	if err != nil {
		glog.Exitf("[patchrtd]failed to open audio stream: %s", err)
	}
	defer stream.close()

	glog.Infof("[patchrtd]running: rate=%.0f block=%d bridge=%q video=%v",
		sampleRate, blockSize, bridgeAddr, mon != nil)

	if err := stream.run(); err != nil {
		glog.Exitf("[patchrtd]stream error: %s", err)
	}
}

// hostCallback is the engine's narrow outward channel; it must never
// block, so it only ever formats a short glog line.
func hostCallback(e patchrt.HostEvent) {
	switch e.Tag {
	case patchrt.PrintStd:
		glog.Infof("[patch]%s", e.Str)
	case patchrt.PrintErr:
		glog.Warningf("[patch]%s", e.Str)
	case patchrt.DSPSuggest:
		glog.Infof("[patch]dsp suggest on=%v", e.On)
	case patchrt.ReceiverMessage:
		glog.V(2).Infof("[patch]receiver %s <- %v", e.Sym, e.Msg)
	case patchrt.CannotFindObject:
		glog.Warningf("[patch]cannot find object %q", e.Str)
	}
}

// jsonAtom and jsonPatchSpec mirror patchrt.PatchSpec in a form
// encoding/json can decode; parsing an actual patch-file text format
// remains an external collaborator's job.
type jsonAtom struct {
	Kind   string  `json:"kind"`
	Float  float32 `json:"float,omitempty"`
	Symbol string  `json:"symbol,omitempty"`
}

type jsonConn struct {
	SrcIndex, SrcPort int
	DstIndex, DstPort int
	Signal            bool
}

type jsonObject struct {
	Type string
	Args []jsonAtom
}

type jsonPatchSpec struct {
	Objects     []jsonObject
	Connections []jsonConn
}

func loadPatchFile(ctx *patchrt.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jp jsonPatchSpec
	if err := json.Unmarshal(data, &jp); err != nil {
		return err
	}
	spec := patchrt.PatchSpec{Objects: make([]patchrt.ObjectDecl, len(jp.Objects))}
	for i, jo := range jp.Objects {
		args := make([]patchrt.Atom, len(jo.Args))
		for j, ja := range jo.Args {
			args[j] = toAtom(ja)
		}
		spec.Objects[i] = patchrt.ObjectDecl{Type: jo.Type, Args: args}
	}
	for _, jc := range jp.Connections {
		ptype := patchrt.MessagePort
		if jc.Signal {
			ptype = patchrt.SignalPort
		}
		spec.Connections = append(spec.Connections, patchrt.ConnDecl{
			SrcIndex: jc.SrcIndex, SrcPort: jc.SrcPort,
			DstIndex: jc.DstIndex, DstPort: jc.DstPort,
			Type: ptype,
		})
	}
	g, err := ctx.LoadPatch(spec)
	if err != nil {
		return err
	}
	ctx.SetRootGraph(g)
	return nil
}

func toAtom(ja jsonAtom) patchrt.Atom {
	switch ja.Kind {
	case "symbol":
		return patchrt.SymbolAtom(ja.Symbol)
	case "bang":
		return patchrt.BangAtom()
	default:
		return patchrt.FloatAtom(ja.Float)
	}
}
