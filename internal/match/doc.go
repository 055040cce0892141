// Package match implements the matching and scoring engine.
//
// Compute evaluates a query (a list of needed items plus requester
// hints) against every offer in a snapshot and produces one scored
// MatchResult per offer with at least one matched item. Rank orders
// results by descending score with stable ties.
//
// Both functions are pure: they take their inputs by value, perform no
// I/O, and produce identical output for identical input. Concurrent
// evaluations over the same snapshot need no locking.
package match
