package window

import "errors"

// ErrUnknownWindow is returned by Parse for names that match no window type.
var ErrUnknownWindow = errors.New("unknown window")
