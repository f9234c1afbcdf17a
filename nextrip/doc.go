// Package nextrip is an HTTP client for NexTrip-style departure APIs.
//
// Feed records are converted to strongly-typed departure observations at
// this boundary; anything without a parseable departure instant is dropped
// here rather than propagated into the decision layer.
package nextrip
