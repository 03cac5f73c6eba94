package stm

// CommitIntent is what a closure passed to Atomically returns: either
// a successful result, or an explicit request to abort and retry —
// spec.md §6's `CommitIntent<R> = Ok(R) | Abort`.
type CommitIntent[T any] struct {
	value   T
	aborted bool
}

// Ok wraps a successful result for return from an Atomically closure.
func Ok[T any](value T) CommitIntent[T] {
	return CommitIntent[T]{value: value}
}

// Abort requests that the current attempt be discarded and the closure
// re-run with a fresh Transaction — the "explicit retry" hook from
// spec.md §4.4.6, handled identically to a version conflict.
func Abort[T any]() CommitIntent[T] {
	var zero T
	return CommitIntent[T]{value: zero, aborted: true}
}

// Atomically runs f under the illusion of uncontended serial
// execution: f reads and writes TVars through the
// Transaction it is given, and Atomically retries it, from scratch,
// until a Transaction built from one run of f commits cleanly. There is
// no bounded retry count — progress depends only on the non-blocking,
// optimistic commit protocol and the closure's own forward progress,
// per spec.md §4.4.3.
//
// f must be free of side effects outside the Transaction it is given:
// it may be invoked more than once, and only the run backing the
// transaction that finally commits has any externally visible effect
// through TVar state. This module does not and cannot enforce that
// beyond this contract.
func Atomically[T any](f func(tx *Transaction) CommitIntent[T]) T {
	for {
		tx := newTransaction()
		intent := f(tx)
		if intent.aborted {
			packageLogger().Debug("stm: transaction aborted by closure, retrying")
			continue
		}
		if tx.commit() {
			tx.flushJournal()
			return intent.value
		}
		packageLogger().Debug("stm: commit failed validation, retrying")
	}
}
