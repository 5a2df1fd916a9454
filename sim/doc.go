// Package sim simulates shared consumption of multi-dose medication vials.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - dosage.go: roster resolution (dose rate x interval, 2-decimal cutoff) and validation
//   - vial.go: VialState, the injection attempt and the vial-replacement policy
//   - simulator.go: the day-stepping loop and trial results
//
// # Model
//
// A trial fixes one (dosage, frequency) assignment per person and advances
// day by day. Each due injection draws from the leftover fragment of a
// retired vial first, then from the open vial; when neither covers a dose,
// the open vial is retired (its remainder becoming waste or the new
// leftover fragment) and a fresh one is opened. The trial ends once the
// target number of vials has been opened, reporting cumulative waste and
// the elapsed days.
//
// All volumes are shopspring/decimal values, so the bookkeeping invariant
// holds exactly at every step:
//
//	waste + injected + open remainder + active leftover = vials opened x vial volume
//
// Trials are pure functions of their inputs and share no state. sweep.go
// builds on that: it enumerates the Cartesian product of per-person dose
// grids and frequency lists, runs one trial per combination (optionally on
// a worker pool), and ranks the unique outcomes by waste.
package sim
