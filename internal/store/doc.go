// Package store provides durable storage for the aid-exchange record
// sets: needs, offers, the node registry, and the append-only trust
// event log.
//
// The store is a snapshot supplier, not a computation layer. The match
// engine, ranker, and route estimator read an immutable snapshot per
// call; only trust-event appends mutate shared state, and each event
// is a discrete, independently committed row so concurrent appends are
// never lost or interleaved.
//
// Reads are ordered by (seq ASC, id ASC) so that replaying a node's
// history is deterministic. Only per-node order matters for the score
// fold; no global ordering across nodes is promised.
package store
