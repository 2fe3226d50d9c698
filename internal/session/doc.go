// Package session holds per-conversation state for the process lifetime.
//
// A [Session] is an ordered, append-only sequence of conversation turns
// guarded by a read-write mutex. The [Store] maps session IDs to sessions
// with thread-safe insert-if-absent and a configurable LRU capacity bound,
// so long-running deployments cannot grow without limit.
//
// # Concurrency
//
// Two generate calls on different session IDs are fully independent. Calls
// on the same ID serialize their appends: [Session.AppendExchange] writes
// the (user, assistant) pair in a single critical section, so concurrent
// callers always produce adjacent, correctly ordered pairs. Readers observe
// a prefix consistent with some total order of completed appends.
package session
