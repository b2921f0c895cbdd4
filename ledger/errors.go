package ledger

import "errors"

var (
	// ErrJournalClosed indicates an append or replay on a closed journal.
	ErrJournalClosed = errors.New("ledger: journal closed")

	// ErrCorruptEntry indicates a stored entry could not be decoded.
	ErrCorruptEntry = errors.New("ledger: corrupt entry")
)
