package stm

// logKind tags a transaction log entry the way spec.md's three cases
// do. Go has no payload-carrying enums, so this is a small tagged
// struct instead of the sum type the original Rust draft's LogVar used.
type logKind int

const (
	logRead logKind = iota
	logWrite
	logReadWrite
)

// logEntry is the per-Cell record kept in a Transaction's log.
//
//   - logRead:      observedValue/observedVersion set, pendingValue unused.
//   - logWrite:     pendingValue set, no observed version (never read).
//   - logReadWrite: all three set; observedVersion is the version seen
//     at the first read, preserved across subsequent writes.
type logEntry struct {
	kind logKind

	observedValue   any
	observedVersion uint64

	pendingValue any
}

// current returns the value tx currently sees for this entry: the
// local pending write if any, otherwise the observed read.
func (e *logEntry) current() any {
	switch e.kind {
	case logWrite, logReadWrite:
		return e.pendingValue
	default:
		return e.observedValue
	}
}

// applyWrite turns a Read into a ReadWrite (preserving the observed
// version) or simply replaces the staged value of a Write/ReadWrite,
// per spec.md §4.4.2.
func (e *logEntry) applyWrite(value any) {
	switch e.kind {
	case logRead:
		e.kind = logReadWrite
		e.pendingValue = value
	case logReadWrite, logWrite:
		e.pendingValue = value
	}
}
