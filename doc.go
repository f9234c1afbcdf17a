// Package transitpings orchestrates one departure-alert poll cycle.
//
// A run fans configured routes through a feed source, classifies each
// departure against the decision calculator and the tracking store, and
// emits two output batches: one composed "time to head out" alert and
// individual delay follow-ups. The pause flag and the active monitoring
// window gate the run before any decision logic executes.
package transitpings
