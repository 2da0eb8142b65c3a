package state

import "errors"

// ErrManualOffline is recorded as the error when a fetch is skipped because
// the user switched the app offline.
var ErrManualOffline = errors.New("Manual offline mode enabled")
