// Package damping provides multiplicative window functions applied to
// reduced intensity before the real-space transform: exponential decay,
// the Lorch truncation window, and a low-angle erfc taper.
//
// Operations compose by multiplication and are order-insensitive in value,
// but each application compounds. There is no undo: to reset an over-damped
// signal, re-derive the reduced intensity from the raw profile.
//
// When Lorch damping is used, the real-space transform should be truncated
// at the same s_max the window was built with. A mismatch is not detectable
// here and shows up as spurious ringing in the PDF.
package damping
