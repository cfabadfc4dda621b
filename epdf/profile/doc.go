// Package profile defines the value types flowing through the PDF pipeline:
// radially averaged diffraction profiles, reduced intensities, and real-space
// pair distribution functions.
//
// All types are plain immutable-by-convention values. Pipeline stages never
// mutate their inputs; each stage returns a fresh value, so re-running an
// earlier stage is always a safe way to recover from a bad parameter choice
// further down the chain.
package profile
