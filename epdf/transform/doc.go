// Package transform computes the real-space pair distribution function from
// reduced intensity via a finite-range sine Fourier transform:
//
//	G(r) = (2/pi) * integral from sMin to sMax of phi(s) * sin(s*r) * s ds
//
// The reference path evaluates the integral by trapezoidal quadrature on the
// uniform s grid. An optional FFT path computes the same sums through an
// FFT backend and interpolates onto the requested r grid; it applies only to
// grids aligned with the s origin and falls back to the direct evaluation
// otherwise.
//
// Callers who applied Lorch damping upstream must pass the same cutoff as
// sMax here; the transform cannot see which damping was applied, and a
// mismatch reintroduces the truncation ringing the window was meant to
// remove.
package transform
