// Package record defines the data model shared by the matching engine,
// trust ledger, route estimator, and record store.
//
// Records are value types: once stored they are never mutated in place.
// A node updates its published needs or offers by submitting a new record
// that supersedes the previous one. Trust events are append-only.
//
// All item-name comparison in the system goes through ItemKey so that
// "Insulin" and "insulin" refer to the same item.
package record
