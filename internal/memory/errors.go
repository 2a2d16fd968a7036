package memory

import "errors"

// ErrWrite indicates the durable write to the memory store failed.
// Check with errors.Is(); the wrapped error carries the store detail.
var ErrWrite = errors.New("memory write failed")
