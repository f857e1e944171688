// Package dialogue executes the events attached to dialogue nodes.
//
// Two event kinds exist. A BuiltinEvent carries a closed EventType
// discriminator and a small typed payload; calling it either notifies the
// target Participant through its capability methods or mutates a named
// variable on the participant through an injected VariableAccessor. A
// CustomEvent owns an open CustomEventObject supplied by extension code and
// forwards to it.
//
// This package is responsible for:
//   - validating the target before any mutation and absorbing recoverable
//     failures into the Logger,
//   - equality with a fixed float tolerance,
//   - the fixed-order binary encoding of both kinds (see package archive).
//
// Calls are synchronous and must be serialized by the caller.
package dialogue
