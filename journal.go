package stm

import (
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// journalMessage is one entry queued via Transaction.Log, waiting to
// find out whether its transaction commits.
type journalMessage struct {
	msg  string
	args []any
}

// JournalEntry is a message that survived to a successful commit, in
// the external shape handed to a JournalSink.
type JournalEntry struct {
	Msg  string
	Args []any
}

// JournalSink receives the messages of every committed transaction, in
// queued order, batched across any transactions whose flushes the
// package happened to coalesce. Implement this to route STM-level
// diagnostics somewhere other than the package logger.
type JournalSink interface {
	Publish(entries []JournalEntry)
}

// defaultJournalSink logs each entry through the package logger at
// Info level, the same shape Jekaa's MVCCMap logs commits with.
type defaultJournalSink struct{}

func (defaultJournalSink) Publish(entries []JournalEntry) {
	logger := packageLogger()
	for _, e := range entries {
		logger.Info(e.Msg, e.Args...)
	}
}

var (
	journalSink atomic.Value // holds JournalSink

	journalMu      sync.Mutex
	journalPending []JournalEntry
	journalGen     atomic.Uint64
	journalGroup   singleflight.Group
)

func init() {
	journalSink.Store(JournalSink(defaultJournalSink{}))
}

// SetJournalSink installs a custom sink for the committed-transaction
// message journal described in spec.md §6. Passing nil restores the
// default sink (logging through the package logger). Safe to call
// while transactions are in flight.
func SetJournalSink(sink JournalSink) {
	if sink == nil {
		sink = defaultJournalSink{}
	}
	journalSink.Store(sink)
}

// flushJournal is invoked by Atomically immediately after a successful
// commit: it hands the transaction's queued messages to the journal,
// in order, and requests a flush. A transaction that aborted never
// calls this — its queue was simply discarded with the rest of its log.
func (tx *Transaction) flushJournal() {
	if len(tx.journal) == 0 {
		return
	}
	journalMu.Lock()
	for _, m := range tx.journal {
		journalPending = append(journalPending, JournalEntry{Msg: m.msg, Args: m.args})
	}
	journalMu.Unlock()
	requestJournalFlush()
}

// requestJournalFlush coalesces concurrent flush requests with
// golang.org/x/sync/singleflight, adapted from the coalesced-fetch
// pattern in
// _examples/SeleniaProject-Orizon/internal/packagemanager/httpregistry.go.
// Many transactions committing in the same scheduling burst each
// append to journalPending and ask for a flush, but only one goroutine
// per generation actually drains the buffer and calls the sink; the
// rest simply wait on the shared result. No message is ever dropped: a
// message that arrives after a drain has already started belongs to
// the next generation and is picked up by the next flush.
func requestJournalFlush() {
	key := strconv.FormatUint(journalGen.Load(), 10)
	journalGroup.Do(key, func() (any, error) {
		journalMu.Lock()
		pending := journalPending
		journalPending = nil
		journalGen.Add(1)
		journalMu.Unlock()

		if len(pending) > 0 {
			if sink, ok := journalSink.Load().(JournalSink); ok {
				sink.Publish(pending)
			}
		}
		return nil, nil
	})
}
