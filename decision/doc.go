// Package decision holds the pure time arithmetic behind departure alerts:
// when the rider must leave, when the alert should fire, which departures
// are worth evaluating, and how large a schedule slippage is.
package decision
