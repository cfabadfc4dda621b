// Package scatter provides electron scattering-factor models and the
// background fit that anchors PDF reduction.
//
// A [Source] supplies per-element scattering-factor curves f(s). [Fit]
// estimates the scale N so that N * sum_i c_i f_i(s)^2 matches a measured
// intensity profile over a caller-chosen fit window, producing an immutable
// [Model] consumed by the reduced-intensity stage.
//
// The fit window matters: beam-stop shadows and detector saturation distort
// the low-angle samples and bias the fit. The expected workflow is iterative:
// fit, inspect the background and residuals carried on the Model, tighten
// the window, and fit again. Re-fitting always builds a new Model.
package scatter
