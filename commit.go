package stm

import "log/slog"

// groupIntent is the per-Space classification from spec.md §4.4.4
// Phase A.
type groupIntent int

const (
	intentWriteOnly groupIntent = iota
	intentReadOnly
	intentReadWrite
)

type commitItem struct {
	cell  *cell
	entry *logEntry
}

// commitGroup is a contiguous run of log entries sharing one Space —
// spec.md's "Space group". Because the log is iterated in canonical
// order (Space order, then Cell order), a Space's entries are always
// contiguous, so grouping is a single linear pass.
type commitGroup struct {
	space            *Space
	items            []commitItem
	intent           groupIntent
	validatedVersion uint64
}

// classify implements Phase A for a single group: determine whether it
// is WriteOnly, ReadOnly, or ReadWrite, and, for the latter two,
// recover the single version every Read/ReadWrite entry in the group
// must agree on (invariant CM-1).
func (g *commitGroup) classify() bool {
	var haveVersion, sawWrite bool
	var version uint64

	for _, it := range g.items {
		switch it.entry.kind {
		case logWrite:
			sawWrite = true
		case logReadWrite:
			sawWrite = true
			fallthrough
		case logRead:
			if haveVersion && version != it.entry.observedVersion {
				return false // CM-1 violated: abort commit
			}
			haveVersion = true
			version = it.entry.observedVersion
		}
	}

	switch {
	case !haveVersion:
		g.intent = intentWriteOnly
	case sawWrite:
		g.intent = intentReadWrite
		g.validatedVersion = version
	default:
		g.intent = intentReadOnly
		g.validatedVersion = version
	}
	return true
}

// buildGroups partitions canonically-ordered cells into commitGroups.
func buildGroups(cells []*cell, entries map[*cell]*logEntry) []commitGroup {
	groups := make([]commitGroup, 0, len(cells))
	for _, c := range cells {
		item := commitItem{cell: c, entry: entries[c]}
		if n := len(groups); n > 0 && groups[n-1].space == c.space {
			groups[n-1].items = append(groups[n-1].items, item)
			continue
		}
		groups = append(groups, commitGroup{space: c.space, items: []commitItem{item}})
	}
	return groups
}

// commit runs the full Phase A-E protocol described in spec.md §4.4.4.
// It returns true iff every group's validation passed and every lock
// acquisition's version check (for ReadWrite/ReadOnly groups) matched.
func (tx *Transaction) commit() bool {
	tx.state = txCommitting

	cells := tx.orderedCells()
	if len(cells) == 0 {
		tx.state = txCommitted
		return true
	}
	groups := buildGroups(cells, tx.entries)

	// Phase A: classify every group before acquiring any lock.
	for i := range groups {
		if !groups[i].classify() {
			tx.state = txAborted
			return false
		}
	}

	var lockedWrite, lockedRead []*Space

	defer func() {
		if r := recover(); r != nil {
			for _, s := range lockedWrite {
				s.poisonAndUnlockWrite()
			}
			for _, s := range lockedRead {
				s.poisonAndUnlockRead()
			}
			panic(r)
		}
	}()

	abort := func() bool {
		for _, s := range lockedWrite {
			s.unlockWrite()
		}
		for _, s := range lockedRead {
			s.unlockRead()
		}
		tx.state = txAborted
		return false
	}

	// Phase B: acquire locks in canonical Space order. groups is already
	// in that order because cells was sorted before grouping.
	for i := range groups {
		g := &groups[i]
		switch g.intent {
		case intentWriteOnly:
			g.space.lockWrite()
			lockedWrite = append(lockedWrite, g.space)
		case intentReadWrite:
			g.space.lockWrite()
			lockedWrite = append(lockedWrite, g.space)
			if g.space.version != g.validatedVersion {
				return abort()
			}
		case intentReadOnly:
			g.space.lockRead()
			lockedRead = append(lockedRead, g.space)
			if g.space.version != g.validatedVersion {
				return abort()
			}
		}
	}

	// Phase C: publish every staged write, now that every touched Space
	// is locked and validated.
	for _, g := range groups {
		for _, it := range g.items {
			if it.entry.kind == logWrite || it.entry.kind == logReadWrite {
				it.cell.set(it.entry.pendingValue)
			}
		}
	}

	// Phase D: bump the version of every Space we hold a write lock on.
	for _, s := range lockedWrite {
		s.bumpVersion()
	}

	// Phase E: release everything.
	for _, s := range lockedWrite {
		s.unlockWrite()
	}
	for _, s := range lockedRead {
		s.unlockRead()
	}

	tx.state = txCommitted
	packageLogger().Debug("stm: commit succeeded",
		slog.Int("cells", len(cells)), slog.Int("groups", len(groups)))
	return true
}
