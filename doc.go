// Package patchrt is an embeddable runtime for a dataflow patch
// language used in interactive music and sound synthesis, in the
// lineage of Pure Data / Max-style visual audio programming.
//
// A patch is a directed graph of Objects (Graph, Object) connected by
// message and signal wires. Context owns the sample rate, block size,
// logical clock and host callback, and drives one audio block per call
// to Process. Scheduler interleaves a time-ordered message queue with
// block-rate signal dispatch (see scheduler.go, dispatch.go);
// RoutingFabric implements the send/receive, throw/catch,
// delwrite~/delread~ and tabwrite~/tabread~ global symbol namespaces
// that create data dependencies outside the explicit graph edges.
//
// Leaf objects (oscillators, arithmetic, print, dac~/adc~, ...) are
// not part of this package; see patchrt/objects for a reference
// library and RegisterObject for wiring custom object types.
package patchrt
