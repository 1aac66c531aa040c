// Package trace reads detector-simulation event files and optional
// response templates for the fitting engine.
//
// An event file is JSON: a detector name plus a list of events, each
// carrying one shared bin axis (microseconds, t=0 at the trigger) and
// per-channel traces with sensor-specific scalar metadata: baseline
// current and phonon energy for TES channels, collected charge for
// FET channels.
//
// Templates are plain CSV, one sample per row, named
// {detector}_{sensor}_ch{N}.csv; a missing template is not an error.
package trace
