package attendance

import (
	"context"
	"fmt"
)

// Sink receives entries after they are written to the local log.
type Sink interface {
	Name() string
	Append(ctx context.Context, entry Entry) error
}

// SyncError reports an entry that a remote sink failed to accept.
// It is recoverable: the local log already holds the entry.
type SyncError struct {
	Sink    string
	EntryID string
	Err     error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("syncing entry %s to %s: %v", e.EntryID, e.Sink, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
