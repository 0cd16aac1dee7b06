// Package store provides SQLite-backed storage for the message board.
//
// Messages are append-only. Each one gets a UUIDv7 id, a creation timestamp
// and a seq assigned by SQLite; listing always orders by seq so readers see
// messages in insertion order regardless of clock skew.
//
// Text is normalized to Unicode NFC before it is written, so visually
// identical messages typed on different platforms compare equal.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
