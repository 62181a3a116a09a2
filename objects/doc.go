// Package objects supplies a reference library of leaf objects for
// patchrt: the concrete oscillators, arithmetic, control and routing
// objects that plug into the core engine through the Object interface.
// Call RegisterAll to wire every object type in this package into a
// Context's registry.
package objects
