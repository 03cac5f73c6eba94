package stm

// cell is the value-bearing interior of a TVar[T]. It is bound to
// exactly one Space for its entire lifetime and is mutated only during
// commit, under that Space's write lock (invariant CE-1). Its identity
// is its pointer; its position in canonical order is (space.seq, seq).
type cell struct {
	space *Space
	seq   uint64 // per-Space monotonic order key

	value any
}

func newCell(space *Space, value any) *cell {
	return &cell{space: space, seq: space.nextCellSeq(), value: value}
}

// get/set are unsafe direct access used only by the commit engine,
// under the correct lock on the owning Space — exactly the contract
// teacher documents for Var.val.
func (c *cell) get() any  { return c.value }
func (c *cell) set(v any) { c.value = v }

// cellLess defines the canonical total order: Space order first (by seq,
// which is assigned in construction order and is stable for the life
// of the process), then Cell order within the Space.
func cellLess(a, b *cell) bool {
	if a.space != b.space {
		return a.space.seq < b.space.seq
	}
	return a.seq < b.seq
}
