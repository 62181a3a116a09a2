package objects

import "patchrt"

// RegisterAll registers every leaf object type this package provides
// with ctx's object registry (patchrt's C11 registry component), so a
// PatchSpec naming any of these types resolves at LoadPatch time.
func RegisterAll(ctx *patchrt.Context) {
	ctx.RegisterObject("bang", NewBang)
	ctx.RegisterObject("metro", NewMetro)
	ctx.RegisterObject("counter", NewCounter)
	ctx.RegisterObject("print", NewPrint)
	ctx.RegisterObject("send", NewSend)
	ctx.RegisterObject("receive", NewReceive)
	ctx.RegisterObject("+", NewAdd)
	ctx.RegisterObject("-", NewSub)
	ctx.RegisterObject("*", NewMul)
	ctx.RegisterObject("/", NewDiv)
	ctx.RegisterObject("wrap", NewWrap)
	ctx.RegisterObject("max", NewMax)
	ctx.RegisterObject("pack", NewPack)
	ctx.RegisterObject("unpack", NewUnpack)
	ctx.RegisterObject("poly", NewPoly)

	ctx.RegisterObject("osc~", NewOsc)
	ctx.RegisterObject("dac~", NewDac)
	ctx.RegisterObject("adc~", NewAdc)
	ctx.RegisterObject("+~", NewSigAdd)
	ctx.RegisterObject("*~", NewSigMul)
	ctx.RegisterObject("throw~", NewThrow)
	ctx.RegisterObject("catch~", NewCatch)
	ctx.RegisterObject("delwrite~", NewDelWrite)
	ctx.RegisterObject("delread~", NewDelRead)
	ctx.RegisterObject("samphold~", NewSampHold)

	ctx.RegisterObject("table", NewTableDecl)
	ctx.RegisterObject("tabwrite~", NewTabWrite)
	ctx.RegisterObject("tabread~", NewTabRead)
}
