// Package ledger keeps the high-score table.
//
// The table holds the best N scores, each with three-letter initials and
// the date it was set, sorted by score with ties kept in insertion order.
// Entries are hash chained the way blocks in a blockchain are: every entry
// carries the hash of the one before it, so a table edited outside the game
// fails Verify and is refused on load.
//
// Persistence goes through a Store. FileStore keeps the table as JSON,
// PGStore in PostgreSQL and MemoryStore in process.
package ledger
