// Package schedule provides the delivery planning side of the domain:
// courier runs with departure and return times, shift bounds and an explicit
// run lifecycle.
package schedule
