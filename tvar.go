package stm

import "fmt"

// TVar[T] is a typed, cheaply clonable handle over a shared Cell. All
// reads and writes made through a TVar during a transaction are routed
// through that Transaction's log; TVar itself holds no mutable state
// beyond the pointer to its Cell.
type TVar[T any] struct {
	c *cell
}

// NewTVar creates a TVar holding value, bound to a fresh anonymous
// Space private to this TVar.
func NewTVar[T any](value T) *TVar[T] {
	return &TVar[T]{c: newCell(newAnonymousSpace(), value)}
}

// NewTVarIn creates a TVar bound to the given (typically shared) Space.
func NewTVarIn[T any](space *Space, value T) *TVar[T] {
	if space == nil {
		fatal(KindSpaceIDInvalid, "stm: NewTVarIn called with a nil Space")
	}
	return &TVar[T]{c: newCell(space, value)}
}

// Read returns the value tx sees for this TVar: a pending local write
// if one was staged, otherwise the most recent committed value observed
// under the owning Space's read lock. Read never itself returns an
// error — a stale read is only ever discovered later, at commit.
func (v *TVar[T]) Read(tx *Transaction) T {
	raw := tx.readCell(v.c)
	t, ok := raw.(T)
	if !ok {
		fatal(KindTypeMismatch, fmt.Sprintf("stm: TVar[%T] read a cell holding %T", t, raw))
	}
	return t
}

// Write stages value to be published if and when tx commits. It always
// succeeds locally; conflicts are only possible at commit time.
func (v *TVar[T]) Write(tx *Transaction, value T) {
	tx.writeCell(v.c, value)
}
