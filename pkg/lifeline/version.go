// Package lifeline holds module-level metadata.
package lifeline

// Version is the current lifeline release.
const Version = "0.1.0"
