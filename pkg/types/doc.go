// Package types defines the Planner interface, the Timeline, Layer, and
// Block entity types, the duration rule table, and standard error values
// for the Lifeline storage system. It is the interface layer every other
// package imports and carries no storage dependencies of its own.
package types
