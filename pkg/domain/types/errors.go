package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify run failures. Every tag aborts the run; classification
// ambiguity is not an error (it degrades to VersionUnknown instead).
var (
	// ErrTagFetch marks upstream index failures: unreachable endpoint,
	// timeout, or a malformed response body.
	ErrTagFetch = goerr.NewTag("fetch")

	// ErrTagPersistence marks ledger read/write failures.
	ErrTagPersistence = goerr.NewTag("persistence")

	// ErrTagConfig marks invalid generator or store configuration,
	// detected at startup before any run state is touched.
	ErrTagConfig = goerr.NewTag("config")
)
