// Package stm implements a software transactional memory core: a
// concurrency primitive that groups reads and writes of shared TVars
// into atomic, optimistically-committed transactions.
//
// A caller wraps a closure in Atomically; the closure reads and writes
// TVars through the *Transaction it is handed, and Atomically commits
// the whole effect or retries the closure with a fresh view until it
// does. TVars are grouped into Spaces: a Space owns one monotonic
// version counter, so transactions touching many TVars in the same
// Space validate and bump a single counter at commit time instead of
// one per variable. A TVar created without an explicit Space gets its
// own private, anonymous one, so it never contends with any other
// TVar's commits.
//
// The commit protocol is single-version optimistic concurrency
// control with per-Space granularity: validate every Space a
// transaction read from, lock every Space it read from or wrote to
// in one global total order (preventing deadlock across concurrent
// commits with overlapping Space sets), publish all writes, then bump
// the version of every Space that was locked for writing.
//
// This package has no blocking retry semantics (it polls, not waits),
// no nested transactions, and no persistence — it is in-process only.
package stm
