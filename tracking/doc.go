// Package tracking is the durable bookkeeping behind alert deduplication.
//
// It persists one record per (route, trip, stop) key once an initial alert
// has been recorded, remembers the first-observed departure time so delay
// detection compares against the original baseline, and prunes records past
// a retention cutoff. The whole store is rewritten to a single JSON file on
// every mutation; record counts stay small under the retention policy.
//
// Losing this state is deliberately cheap: a corrupt or missing file
// degrades to an empty store, which risks a duplicate alert but never a
// missed one.
package tracking
